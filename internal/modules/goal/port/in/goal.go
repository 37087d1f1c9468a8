package in

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
)

type Usecase interface {
	ListGoals(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
	CreateGoal(ctx context.Context, input dto.CreateInput) (dto.TxOutput, error)
	ClaimStake(ctx context.Context, input dto.ClaimInput) (dto.TxOutput, error)
	Quote(ctx context.Context, numTrees string) (dto.QuoteOutput, error)
}
