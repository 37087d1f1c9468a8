package in

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/dto"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type Usecase interface {
	Record(ctx context.Context, ev tx.Event) error
	List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
}
