package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	journaldto "github.com/hara-desu/ForestOnchain/internal/modules/journal/dto"
	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
	"github.com/hara-desu/ForestOnchain/internal/ui/components"
)

type stubGoals struct{ claims atomic.Int32 }

func (s *stubGoals) List(context.Context, string, bool) (goaldto.ListOutput, error) {
	return goaldto.ListOutput{}, nil
}

func (s *stubGoals) Create(context.Context, string, string, string, string) (goaldto.TxOutput, error) {
	return goaldto.TxOutput{}, nil
}

func (s *stubGoals) Claim(context.Context, string, string) (goaldto.TxOutput, error) {
	s.claims.Add(1)
	return goaldto.TxOutput{}, nil
}

func (s *stubGoals) Quote(context.Context, string) (goaldto.QuoteOutput, error) {
	return goaldto.QuoteOutput{}, nil
}

type stubSession struct{}

func (stubSession) Status(context.Context, string) (sessiondto.StatusOutput, error) {
	return sessiondto.StatusOutput{}, nil
}

func (stubSession) Start(context.Context, string, string, string) (sessiondto.TxOutput, error) {
	return sessiondto.TxOutput{}, nil
}

func (stubSession) ScheduleBreak(context.Context, string) (sessiondto.BreakOutput, error) {
	return sessiondto.BreakOutput{}, nil
}

func (stubSession) EndBreak(context.Context, string) (sessiondto.TxOutput, error) {
	return sessiondto.TxOutput{}, nil
}

type stubJournal struct{}

func (stubJournal) List(context.Context, int) (journaldto.ListOutput, error) {
	return journaldto.ListOutput{}, nil
}

type switchTransactions struct{ submitting atomic.Bool }

func (s *switchTransactions) Submitting() bool { return s.submitting.Load() }

func newTestModel(txs *switchTransactions, succeeded chan tx.Receipt) (Model, *stubGoals) {
	goals := &stubGoals{}
	return NewModel(Deps{
		Account:        "0x00000000000000000000000000000000000000bb",
		Goals:          goals,
		Session:        stubSession{},
		Journal:        stubJournal{},
		Clock:          clock.SystemClock{},
		Transactions:   txs,
		Succeeded:      succeeded,
		RequestTimeout: time.Second,
		WriteTimeout:   time.Second,
	}), goals
}

func submit(m Model, input string) (Model, tea.Cmd) {
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	return next.(Model), cmd
}

func TestWriteRefusedWhileLifecycleIsSubmitting(t *testing.T) {
	t.Parallel()
	txs := &switchTransactions{}
	txs.submitting.Store(true)
	m, goals := newTestModel(txs, nil)

	m, cmd := submit(m, "goal:claim Study")
	if cmd != nil || m.status != "a transaction is already in progress" {
		t.Fatalf("expected claim to be refused, got status %q", m.status)
	}

	txs.submitting.Store(false)
	m, cmd = submit(m, "goal:claim Study")
	if cmd == nil || !m.pending {
		t.Fatalf("expected claim to start")
	}
	done, ok := cmd().(actionDoneMsg)
	if !ok || goals.claims.Load() != 1 {
		t.Fatalf("expected one claim, got %+v", done)
	}
	if _, cmd = submit(m, "goal:claim Study"); cmd != nil {
		t.Fatalf("expected a second write to wait for the first")
	}
	next, _ := m.Update(done)
	if next.(Model).pending {
		t.Fatalf("expected pending to clear when the write returns")
	}
}

func TestWriteResultReachesModelWhilePaletteIsOpen(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(&switchTransactions{}, nil)
	m.pending = true
	m.palette.Open()
	next, _ := m.Update(actionDoneMsg{label: "stake claimed: Study", write: true})
	got := next.(Model)
	if got.pending || got.status != "stake claimed: Study" {
		t.Fatalf("expected the write result to land, got pending=%v status=%q", got.pending, got.status)
	}
	if !got.palette.Visible() {
		t.Fatalf("expected the palette to stay open")
	}
}

func TestSucceededReceiptRearmsListener(t *testing.T) {
	t.Parallel()
	succeeded := make(chan tx.Receipt, 1)
	m, _ := newTestModel(&switchTransactions{}, succeeded)
	succeeded <- tx.Receipt{AttemptID: "a1", Method: "claimStake", Hash: "0xfeed"}
	msg, ok := m.listenSucceeded()().(txSucceededMsg)
	if !ok || msg.receipt.Hash != "0xfeed" {
		t.Fatalf("expected the succeeded receipt, got %+v", msg)
	}
	if _, cmd := m.Update(msg); cmd == nil {
		t.Fatalf("expected refetch commands after a confirmed write")
	}
}
