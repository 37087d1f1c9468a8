package usecase

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	goalin "github.com/hara-desu/ForestOnchain/internal/modules/goal/port/in"
	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	sessionin "github.com/hara-desu/ForestOnchain/internal/modules/session/port/in"
	sessionout "github.com/hara-desu/ForestOnchain/internal/modules/session/port/out"
	"github.com/hara-desu/ForestOnchain/internal/modules/session/service"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type Interactor struct {
	svc    *service.SessionService
	goals  goalin.Usecase
	txs    sessionout.Transactions
	logger hclog.Logger
}

func NewInteractor(svc *service.SessionService, goals goalin.Usecase, txs sessionout.Transactions, logger hclog.Logger) sessionin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{svc: svc, goals: goals, txs: txs, logger: logger.Named("session")}
}

type snapshot struct {
	session     domain.UserSession
	breakNeeded bool
	goals       []goaldto.GoalOutput
}

// read issues the goal, session and break reads concurrently.
func (i *Interactor) read(ctx context.Context, account string) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := i.goals.ListGoals(gctx, goaldto.ListInput{Account: account, View: goaldto.ViewSession})
		if err != nil {
			return err
		}
		snap.goals = out.Goals
		return nil
	})
	g.Go(func() error {
		session, err := i.svc.CurrentSession(gctx, account)
		snap.session = session
		return err
	})
	g.Go(func() error {
		needed, err := i.svc.BreakNeeded(gctx, account)
		snap.breakNeeded = needed
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (i *Interactor) Status(ctx context.Context, input sessiondto.StatusInput) (sessiondto.StatusOutput, error) {
	snap, err := i.read(ctx, input.Account)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	view := domain.Resolve(snap.session, snap.breakNeeded, snap.goals, i.svc.BreakTarget(ctx, snap.session))
	now := i.svc.Now()
	out := sessiondto.StatusOutput{
		Session: sessiondto.SessionOutput{
			ActivityType: view.Session.ActivityType,
			StartTime:    view.Session.StartTime,
			EndTime:      view.Session.EndTime,
			Active:       view.Session.Active,
			Owner:        view.Session.Owner,
		},
		HasActiveSession: view.HasActiveSession,
		MatchedGoal:      view.MatchedGoal,
		Goals:            snap.goals,
		BreakNeeded:      view.BreakNeeded,
		HasCountdown:     view.Countdown.Valid,
		Deadline:         view.Countdown.Deadline,
		AsOf:             time.Unix(now, 0),
	}
	if view.Countdown.Valid && view.Countdown.Deadline > now {
		out.Remaining = view.Countdown.Deadline - now
	}
	return out, nil
}

func (i *Interactor) StartSession(ctx context.Context, input sessiondto.StartInput) (sessiondto.TxOutput, error) {
	lifecycle := i.txs.New()
	receipt, err := lifecycle.Submit(ctx, func() (tx.Request, error) {
		activity := strings.TrimSpace(input.ActivityType)
		if activity == "" {
			return tx.Request{}, apperrors.Invalid("activityType", "Please select an activity/goal.")
		}
		if input.Account == "" {
			return tx.Request{}, apperrors.Invalid("account", "Please connect your wallet first.")
		}
		snap, err := i.read(ctx, input.Account)
		if err != nil {
			return tx.Request{}, err
		}
		if snap.session.Active {
			return tx.Request{}, apperrors.Rejected(apperrors.ErrActiveSessionExists, "session", "You already have an active session.")
		}
		if snap.breakNeeded {
			return tx.Request{}, apperrors.Rejected(apperrors.ErrBreakNeeded, "session", "A break is required before starting a new session. Take a break first.")
		}
		seconds, err := domain.SessionSeconds(input.Minutes)
		if err != nil {
			return tx.Request{}, err
		}
		return tx.Request{Call: tx.Call{Method: "startFocusSession", Args: []any{activity, big.NewInt(seconds)}}}, nil
	})
	if err != nil {
		return sessiondto.TxOutput{}, err
	}
	return sessiondto.TxOutput{AttemptID: receipt.AttemptID, Method: receipt.Method, Hash: receipt.Hash}, nil
}

func (i *Interactor) ScheduleBreak(ctx context.Context, input sessiondto.BreakInput) (sessiondto.BreakOutput, error) {
	seconds, err := domain.BreakSeconds(input.Minutes)
	if err != nil {
		return sessiondto.BreakOutput{}, err
	}
	target, err := i.svc.ScheduleBreak(ctx, seconds)
	if err != nil {
		return sessiondto.BreakOutput{}, err
	}
	i.logger.Debug("break scheduled", "ends_at", target.EndsAt)
	return sessiondto.BreakOutput{EndsAt: target.EndsAt}, nil
}

// EndBreak sends takeBreak, which clears the contract's break flag, then
// drops the local break deadline.
func (i *Interactor) EndBreak(ctx context.Context, input sessiondto.EndBreakInput) (sessiondto.TxOutput, error) {
	lifecycle := i.txs.New()
	receipt, err := lifecycle.Submit(ctx, func() (tx.Request, error) {
		if input.Account == "" {
			return tx.Request{}, apperrors.Invalid("account", "Please connect your wallet first.")
		}
		return tx.Request{Call: tx.Call{Method: "takeBreak"}}, nil
	})
	if err != nil {
		return sessiondto.TxOutput{}, err
	}
	if err := i.svc.ClearBreak(ctx); err != nil {
		i.logger.Warn("clear break target", "error", err)
	}
	return sessiondto.TxOutput{AttemptID: receipt.AttemptID, Method: receipt.Method, Hash: receipt.Hash}, nil
}
