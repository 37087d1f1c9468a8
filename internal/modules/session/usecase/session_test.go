package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"sync"
	"testing"
	"time"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	sessionout "github.com/hara-desu/ForestOnchain/internal/modules/session/adapter/out"
	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	sessionin "github.com/hara-desu/ForestOnchain/internal/modules/session/port/in"
	"github.com/hara-desu/ForestOnchain/internal/modules/session/service"
	"github.com/hara-desu/ForestOnchain/internal/modules/session/usecase"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

const account = "0x00000000000000000000000000000000000000bb"

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

func (c fakeClock) NewTicker(time.Duration) clock.Ticker { return nil }

type fakeGoals struct {
	goals []goaldto.GoalOutput
	view  goaldto.View
	err   error
}

func (f *fakeGoals) ListGoals(_ context.Context, input goaldto.ListInput) (goaldto.ListOutput, error) {
	f.view = input.View
	return goaldto.ListOutput{Goals: f.goals}, f.err
}

func (f *fakeGoals) CreateGoal(context.Context, goaldto.CreateInput) (goaldto.TxOutput, error) {
	return goaldto.TxOutput{}, nil
}

func (f *fakeGoals) ClaimStake(context.Context, goaldto.ClaimInput) (goaldto.TxOutput, error) {
	return goaldto.TxOutput{}, nil
}

func (f *fakeGoals) Quote(context.Context, string) (goaldto.QuoteOutput, error) {
	return goaldto.QuoteOutput{}, nil
}

type fakeGateway struct {
	session     domain.UserSession
	breakNeeded bool
	err         error
}

func (f *fakeGateway) CurrentSession(context.Context, string) (domain.UserSession, error) {
	return f.session, f.err
}

func (f *fakeGateway) BreakNeeded(context.Context, string) (bool, error) {
	return f.breakNeeded, nil
}

type fakeSubmitter struct {
	mu   sync.Mutex
	sent []tx.Request
}

func (s *fakeSubmitter) Submit(_ context.Context, req tx.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	return "0xhash", nil
}

func (s *fakeSubmitter) WaitConfirmed(context.Context, string) error { return nil }

type fixedID struct{}

func (fixedID) New() string { return "attempt-1" }

type fixture struct {
	uc     sessionin.Usecase
	goals  *fakeGoals
	gw     *fakeGateway
	sub    *fakeSubmitter
	breaks string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clk := fakeClock{now: time.Unix(1_000, 0)}
	f := fixture{
		goals:  &fakeGoals{goals: []goaldto.GoalOutput{{ActivityType: "Study", TreesRemaining: 2, EndTime: 90_000}}},
		gw:     &fakeGateway{},
		sub:    &fakeSubmitter{},
		breaks: filepath.Join(t.TempDir(), "break.json"),
	}
	svc := service.NewSessionService(clk, f.gw, sessionout.NewFileBreakStore(f.breaks), nil)
	f.uc = usecase.NewInteractor(svc, f.goals, tx.NewFactory(f.sub, clk, fixedID{}), nil)
	return f
}

func TestStatusResolvesActiveSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gw.session = domain.UserSession{ActivityType: "Study", EndTime: 2_500, Active: true}
	out, err := f.uc.Status(context.Background(), sessiondto.StatusInput{Account: account})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if f.goals.view != goaldto.ViewSession {
		t.Fatalf("expected session-selection goals")
	}
	if !out.HasActiveSession || out.MatchedGoal == nil || out.MatchedGoal.ActivityType != "Study" {
		t.Fatalf("expected matched Study session, got %+v", out)
	}
	if !out.HasCountdown || out.Deadline != 2_500 || out.Remaining != 1_500 {
		t.Fatalf("expected 1500s remaining, got %+v", out)
	}
}

func TestStatusPropagatesReadFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gw.err = errors.New("node down")
	if _, err := f.uc.Status(context.Background(), sessiondto.StatusInput{Account: account}); err == nil {
		t.Fatalf("expected session read failure")
	}
}

func TestScheduleBreakDrivesBreakCountdown(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gw.breakNeeded = true
	if _, err := f.uc.ScheduleBreak(context.Background(), sessiondto.BreakInput{Minutes: "0"}); apperrors.UserMessage(err) != "Break length must be a positive number." {
		t.Fatalf("expected break validation, got %v", err)
	}
	scheduled, err := f.uc.ScheduleBreak(context.Background(), sessiondto.BreakInput{Minutes: "5"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if scheduled.EndsAt != 1_300 {
		t.Fatalf("expected break to end at 1300, got %d", scheduled.EndsAt)
	}
	out, err := f.uc.Status(context.Background(), sessiondto.StatusInput{Account: account})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !out.BreakNeeded || out.Deadline != 1_300 || out.Remaining != 300 {
		t.Fatalf("expected break countdown, got %+v", out)
	}
}

func TestStartSessionValidationOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.StartSession(ctx, sessiondto.StartInput{Account: account, Minutes: "25"}); apperrors.UserMessage(err) != "Please select an activity/goal." {
		t.Fatalf("expected activity required, got %v", err)
	}
	f.gw.session = domain.UserSession{ActivityType: "Study", Active: true}
	f.gw.breakNeeded = true
	if _, err := f.uc.StartSession(ctx, sessiondto.StartInput{Account: account, ActivityType: "Study", Minutes: "25"}); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected active session rejection, got %v", err)
	}
	f.gw.session = domain.UserSession{}
	if _, err := f.uc.StartSession(ctx, sessiondto.StartInput{Account: account, ActivityType: "Study", Minutes: "25"}); !errors.Is(err, apperrors.ErrBreakNeeded) {
		t.Fatalf("expected break needed rejection, got %v", err)
	}
	f.gw.breakNeeded = false
	if _, err := f.uc.StartSession(ctx, sessiondto.StartInput{Account: account, ActivityType: "Study", Minutes: "90"}); apperrors.UserMessage(err) != "Session length must be between 20 and 60 minutes." {
		t.Fatalf("expected minutes validation, got %v", err)
	}
	if len(f.sub.sent) != 0 {
		t.Fatalf("expected nothing sent while invalid")
	}
	out, err := f.uc.StartSession(ctx, sessiondto.StartInput{Account: account, ActivityType: "Study", Minutes: "25"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	req := f.sub.sent[0]
	if out.Method != "startFocusSession" || req.Call.Args[0] != "Study" || req.Call.Args[1].(*big.Int).Int64() != 1_500 {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestEndBreakSendsTakeBreakAndClearsTarget(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.uc.ScheduleBreak(ctx, sessiondto.BreakInput{Minutes: "10"}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	out, err := f.uc.EndBreak(ctx, sessiondto.EndBreakInput{Account: account})
	if err != nil {
		t.Fatalf("end break: %v", err)
	}
	if out.Method != "takeBreak" || len(f.sub.sent) != 1 {
		t.Fatalf("expected takeBreak sent, got %+v", out)
	}
	if _, err := sessionout.NewFileBreakStore(f.breaks).LoadBreak(ctx); !errors.Is(err, apperrors.ErrNoBreakScheduled) {
		t.Fatalf("expected break target cleared, got %v", err)
	}
}

func TestStatusIgnoresBreakScheduledBeforeLastSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.uc.ScheduleBreak(ctx, sessiondto.BreakInput{Minutes: "5"}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	// Another session ran and ended after the stored break was scheduled.
	f.gw.session = domain.UserSession{ActivityType: "Study", StartTime: 1_100, EndTime: 1_500}
	f.gw.breakNeeded = true
	out, err := f.uc.Status(ctx, sessiondto.StatusInput{Account: account})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !out.BreakNeeded || out.HasCountdown {
		t.Fatalf("expected a required break without a deadline, got %+v", out)
	}
}
