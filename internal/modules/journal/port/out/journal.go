package out

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/domain"
)

// AttemptProjector persists the latest state of each attempt.
type AttemptProjector interface {
	Upsert(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context, limit int) ([]domain.Entry, error)
}
