package out

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type SessionGateway interface {
	CurrentSession(ctx context.Context, account string) (domain.UserSession, error)
	BreakNeeded(ctx context.Context, account string) (bool, error)
}

// BreakStore keeps the locally scheduled break end. LoadBreak returns
// apperrors.ErrNoBreakScheduled when none is stored.
type BreakStore interface {
	SaveBreak(ctx context.Context, target domain.BreakTarget) error
	LoadBreak(ctx context.Context) (domain.BreakTarget, error)
	ClearBreak(ctx context.Context) error
}

type Transactions interface {
	New() *tx.Lifecycle
}
