package in

import (
	"context"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	goalin "github.com/hara-desu/ForestOnchain/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, account string, sessionOnly bool) (goaldto.ListOutput, error) {
	view := goaldto.ViewListing
	if sessionOnly {
		view = goaldto.ViewSession
	}
	return h.usecase.ListGoals(ctx, goaldto.ListInput{Account: account, View: view})
}

func (h CLIHandler) Create(ctx context.Context, account, activity, days, trees string) (goaldto.TxOutput, error) {
	return h.usecase.CreateGoal(ctx, goaldto.CreateInput{Account: account, ActivityType: activity, DurationDays: days, NumTrees: trees})
}

func (h CLIHandler) Claim(ctx context.Context, account, activity string) (goaldto.TxOutput, error) {
	return h.usecase.ClaimStake(ctx, goaldto.ClaimInput{Account: account, ActivityType: activity})
}

func (h CLIHandler) Quote(ctx context.Context, trees string) (goaldto.QuoteOutput, error) {
	return h.usecase.Quote(ctx, trees)
}
