package in

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
)

type Usecase interface {
	Status(ctx context.Context, input dto.StatusInput) (dto.StatusOutput, error)
	StartSession(ctx context.Context, input dto.StartInput) (dto.TxOutput, error)
	ScheduleBreak(ctx context.Context, input dto.BreakInput) (dto.BreakOutput, error)
	EndBreak(ctx context.Context, input dto.EndBreakInput) (dto.TxOutput, error)
}
