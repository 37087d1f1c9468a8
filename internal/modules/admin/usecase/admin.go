package usecase

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/admin/domain"
	admindto "github.com/hara-desu/ForestOnchain/internal/modules/admin/dto"
	adminin "github.com/hara-desu/ForestOnchain/internal/modules/admin/port/in"
	adminout "github.com/hara-desu/ForestOnchain/internal/modules/admin/port/out"
	"github.com/hara-desu/ForestOnchain/internal/modules/admin/service"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type Interactor struct {
	svc *service.AdminService
	txs adminout.Transactions
}

func NewInteractor(svc *service.AdminService, txs adminout.Transactions) adminin.Usecase {
	return &Interactor{svc: svc, txs: txs}
}

func (i *Interactor) Overview(ctx context.Context, input admindto.OverviewInput) (admindto.OverviewOutput, error) {
	overview, err := i.svc.Overview(ctx)
	if err != nil {
		return admindto.OverviewOutput{}, err
	}
	return admindto.OverviewOutput{
		Account:        input.Account,
		Owner:          overview.Owner,
		IsOwner:        domain.IsOwner(input.Account, overview.Owner),
		CostPerTreeWei: overview.CostPerTree,
		BalanceWei:     overview.Balance,
	}, nil
}

func (i *Interactor) ChangeCost(ctx context.Context, input admindto.ChangeCostInput) (admindto.TxOutput, error) {
	receipt, err := i.txs.New().Submit(ctx, func() (tx.Request, error) {
		if err := i.requireOwner(ctx, input.Account); err != nil {
			return tx.Request{}, err
		}
		wei, err := domain.ParseCost(input.NewCost)
		if err != nil {
			return tx.Request{}, err
		}
		return tx.Request{Call: tx.Call{Method: "changeCostPerTree", Args: []any{wei}}}, nil
	})
	if err != nil {
		return admindto.TxOutput{}, err
	}
	return admindto.TxOutput{AttemptID: receipt.AttemptID, Method: receipt.Method, Hash: receipt.Hash}, nil
}

func (i *Interactor) Withdraw(ctx context.Context, input admindto.WithdrawInput) (admindto.TxOutput, error) {
	var withdrawal domain.Withdrawal
	receipt, err := i.txs.New().Submit(ctx, func() (tx.Request, error) {
		if err := i.requireOwner(ctx, input.Account); err != nil {
			return tx.Request{}, err
		}
		w, err := domain.ParseWithdrawal(input.To, input.Amount, i.svc.IsAddress)
		if err != nil {
			return tx.Request{}, err
		}
		withdrawal = w
		return tx.Request{Call: tx.Call{Method: "withdraw", Args: []any{w.To, w.Amount}}}, nil
	})
	if err != nil {
		return admindto.TxOutput{}, err
	}
	return admindto.TxOutput{AttemptID: receipt.AttemptID, Method: receipt.Method, Hash: receipt.Hash, ValueWei: withdrawal.Amount}, nil
}

func (i *Interactor) requireOwner(ctx context.Context, account string) error {
	if account == "" {
		return apperrors.Invalid("account", "Please connect your wallet to access admin functions.")
	}
	return i.svc.RequireOwner(ctx, account)
}
