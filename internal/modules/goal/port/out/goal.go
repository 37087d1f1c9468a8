package out

import (
	"context"
	"math/big"

	"github.com/hara-desu/ForestOnchain/internal/modules/goal/domain"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type GoalGateway interface {
	ActivityTypes(ctx context.Context, account string) ([]string, error)
	// ReadGoals returns 3 slots per activity, in order. The error is a
	// transport failure of the whole read.
	ReadGoals(ctx context.Context, account string, activityTypes []string) ([]domain.Slot, error)
	CostPerTree(ctx context.Context) (*big.Int, error)
}

// Transactions hands out a fresh lifecycle per write.
type Transactions interface {
	New() *tx.Lifecycle
}
