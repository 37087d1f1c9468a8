package in

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/admin/dto"
)

type Usecase interface {
	Overview(ctx context.Context, input dto.OverviewInput) (dto.OverviewOutput, error)
	ChangeCost(ctx context.Context, input dto.ChangeCostInput) (dto.TxOutput, error)
	Withdraw(ctx context.Context, input dto.WithdrawInput) (dto.TxOutput, error)
}
