package in

import (
	"context"

	admindto "github.com/hara-desu/ForestOnchain/internal/modules/admin/dto"
	adminin "github.com/hara-desu/ForestOnchain/internal/modules/admin/port/in"
)

type CLIHandler struct {
	usecase adminin.Usecase
}

func NewCLIHandler(usecase adminin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, account string) (admindto.OverviewOutput, error) {
	return h.usecase.Overview(ctx, admindto.OverviewInput{Account: account})
}

func (h CLIHandler) SetCost(ctx context.Context, account, ether string) (admindto.TxOutput, error) {
	return h.usecase.ChangeCost(ctx, admindto.ChangeCostInput{Account: account, NewCost: ether})
}

func (h CLIHandler) Withdraw(ctx context.Context, account, to, ether string) (admindto.TxOutput, error) {
	return h.usecase.Withdraw(ctx, admindto.WithdrawInput{Account: account, To: to, Amount: ether})
}
