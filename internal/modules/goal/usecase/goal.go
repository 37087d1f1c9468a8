package usecase

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hara-desu/ForestOnchain/internal/modules/goal/domain"
	"github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	goalin "github.com/hara-desu/ForestOnchain/internal/modules/goal/port/in"
	goalout "github.com/hara-desu/ForestOnchain/internal/modules/goal/port/out"
	"github.com/hara-desu/ForestOnchain/internal/modules/goal/service"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

const notClaimableMessage = "You can only claim when all trees are completed and the goal is not expired."

type Interactor struct {
	svc    *service.GoalService
	txs    goalout.Transactions
	logger hclog.Logger
}

func NewInteractor(svc *service.GoalService, txs goalout.Transactions, logger hclog.Logger) goalin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{svc: svc, txs: txs, logger: logger.Named("goal")}
}

func (i *Interactor) ListGoals(ctx context.Context, input dto.ListInput) (dto.ListOutput, error) {
	keep := domain.Listing
	if input.View == dto.ViewSession {
		keep = domain.SessionSelection
	}
	goals, batch, err := i.svc.Goals(ctx, input.Account, keep)
	if err != nil {
		return dto.ListOutput{}, err
	}
	now := i.svc.Now()
	out := dto.ListOutput{
		Account:      input.Account,
		Goals:        make([]dto.GoalOutput, 0, len(goals)),
		MissingSlots: domain.MissingSlots(batch),
		AsOf:         time.Unix(now, 0),
	}
	for _, g := range goals {
		out.Goals = append(out.Goals, toOutput(g, now))
	}
	return out, nil
}

// Quote returns the stake a goal of numTrees trees would lock.
func (i *Interactor) Quote(ctx context.Context, numTrees string) (dto.QuoteOutput, error) {
	cost, err := i.svc.CostPerTree(ctx)
	if err != nil {
		return dto.QuoteOutput{}, err
	}
	return dto.QuoteOutput{CostPerTreeWei: cost, StakeWei: domain.StakeFor(numTrees, cost)}, nil
}

func (i *Interactor) CreateGoal(ctx context.Context, input dto.CreateInput) (dto.TxOutput, error) {
	cost, err := i.svc.CostPerTree(ctx)
	if err != nil {
		// Unknown cost reads as zero so validation blocks the submission.
		i.logger.Warn("cost per tree unavailable", "error", err)
		cost = new(big.Int)
	}
	var stake *big.Int
	lifecycle := i.txs.New()
	receipt, err := lifecycle.Submit(ctx, func() (tx.Request, error) {
		goal, err := domain.ValidateNewGoal(domain.NewGoalForm{
			Account:      input.Account,
			ActivityType: input.ActivityType,
			DurationDays: input.DurationDays,
			NumTrees:     input.NumTrees,
			CostPerTree:  cost,
		})
		if err != nil {
			return tx.Request{}, err
		}
		stake = goal.Stake
		return tx.Request{
			Call:  tx.Call{Method: "startGoal", Args: []any{goal.ActivityType, goal.DurationSeconds, goal.NumTrees}},
			Value: goal.Stake,
		}, nil
	})
	if err != nil {
		return dto.TxOutput{}, err
	}
	return dto.TxOutput{AttemptID: receipt.AttemptID, Method: receipt.Method, Hash: receipt.Hash, ValueWei: stake}, nil
}

func (i *Interactor) ClaimStake(ctx context.Context, input dto.ClaimInput) (dto.TxOutput, error) {
	lifecycle := i.txs.New()
	receipt, err := lifecycle.Submit(ctx, func() (tx.Request, error) {
		if input.Account == "" {
			return tx.Request{}, apperrors.Invalid("account", "Please connect your wallet first.")
		}
		goals, _, err := i.svc.Goals(ctx, input.Account, nil)
		if err != nil {
			return tx.Request{}, err
		}
		goal, ok := domain.Find(goals, input.ActivityType)
		if !ok {
			return tx.Request{}, fmt.Errorf("goal %q: %w", input.ActivityType, apperrors.ErrNotFound)
		}
		if !domain.Claimable(goal, i.svc.Now()) {
			return tx.Request{}, apperrors.Invalid("activityType", notClaimableMessage)
		}
		return tx.Request{Call: tx.Call{Method: "claimStake", Args: []any{goal.ActivityType}}}, nil
	})
	if err != nil {
		return dto.TxOutput{}, err
	}
	return dto.TxOutput{AttemptID: receipt.AttemptID, Method: receipt.Method, Hash: receipt.Hash}, nil
}

func toOutput(g domain.Goal, now int64) dto.GoalOutput {
	return dto.GoalOutput{
		ActivityType:   g.ActivityType,
		TreesRemaining: g.TreesRemaining,
		EndTime:        g.EndTime,
		StakedWei:      g.StakedAmount,
		Claimable:      domain.Claimable(g, now),
		Expired:        domain.Expired(g, now),
	}
}
