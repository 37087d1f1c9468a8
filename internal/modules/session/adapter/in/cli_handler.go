package in

import (
	"context"

	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	sessionin "github.com/hara-desu/ForestOnchain/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context, account string) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx, sessiondto.StatusInput{Account: account})
}

func (h CLIHandler) Start(ctx context.Context, account, activity, minutes string) (sessiondto.TxOutput, error) {
	return h.usecase.StartSession(ctx, sessiondto.StartInput{Account: account, ActivityType: activity, Minutes: minutes})
}

func (h CLIHandler) ScheduleBreak(ctx context.Context, minutes string) (sessiondto.BreakOutput, error) {
	return h.usecase.ScheduleBreak(ctx, sessiondto.BreakInput{Minutes: minutes})
}

func (h CLIHandler) EndBreak(ctx context.Context, account string) (sessiondto.TxOutput, error) {
	return h.usecase.EndBreak(ctx, sessiondto.EndBreakInput{Account: account})
}
