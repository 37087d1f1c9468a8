// Package tx drives one contract write from local validation through
// confirmation. A Lifecycle is single use: once it reaches succeeded or
// failed a retry needs a new instance from the Factory.
package tx

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/id"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateConfirming
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateConfirming:
		return "confirming"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

var (
	ErrLifecycleTerminal = errors.New("transaction lifecycle already finished")
	ErrLifecycleBusy     = errors.New("transaction already in flight")
)

// Call describes a contract method invocation.
type Call struct {
	Method string
	Args   []any
}

// Request is a call plus the wei value sent with it.
type Request struct {
	Call  Call
	Value *big.Int
}

// Submitter is the write boundary: send a request, then wait for inclusion.
type Submitter interface {
	Submit(ctx context.Context, req Request) (string, error)
	WaitConfirmed(ctx context.Context, hash string) error
}

// Event is published to observers on every state transition.
type Event struct {
	AttemptID string
	Method    string
	State     State
	Hash      string
	Err       error
	At        time.Time
}

type Observer func(Event)

// Receipt is returned by a successful Submit.
type Receipt struct {
	AttemptID string
	Method    string
	Hash      string
}

type Lifecycle struct {
	submitter Submitter
	clock     clock.Clock
	attemptID string

	mu        sync.Mutex
	state     State
	method    string
	hash      string
	err       error
	observers []Observer
}

func New(submitter Submitter, clk clock.Clock, attemptID string) *Lifecycle {
	return &Lifecycle{submitter: submitter, clock: clk, attemptID: attemptID}
}

// Observe registers fn for every later transition.
func (l *Lifecycle) Observe(fn Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// OnSucceeded registers fn for the succeeded transition only. This is the
// hook owners use to refetch dependent reads.
func (l *Lifecycle) OnSucceeded(fn func(Receipt)) {
	l.Observe(func(ev Event) {
		if ev.State == StateSucceeded {
			fn(Receipt{AttemptID: ev.AttemptID, Method: ev.Method, Hash: ev.Hash})
		}
	})
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err is the failure reason once the lifecycle has failed.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// IsSubmitting is true from submitting through confirming inclusive.
func (l *Lifecycle) IsSubmitting() bool {
	s := l.State()
	return s == StateSubmitting || s == StateConfirming
}

// Submit validates and builds the request through prepare, sends it and
// waits for confirmation. A prepare error returns the lifecycle to idle and
// nothing is sent.
func (l *Lifecycle) Submit(ctx context.Context, prepare func() (Request, error)) (Receipt, error) {
	l.mu.Lock()
	switch {
	case l.state.Terminal():
		l.mu.Unlock()
		return Receipt{}, ErrLifecycleTerminal
	case l.state != StateIdle:
		l.mu.Unlock()
		return Receipt{}, ErrLifecycleBusy
	}
	l.state = StateValidating
	l.mu.Unlock()

	req, err := prepare()
	if err != nil {
		l.transition(StateIdle, "", nil)
		return Receipt{}, err
	}
	l.setMethod(req.Call.Method)

	l.transition(StateSubmitting, "", nil)
	hash, err := l.submitter.Submit(ctx, req)
	if err != nil {
		failure := &apperrors.SubmissionError{Method: req.Call.Method, Cause: err}
		l.transition(StateFailed, "", failure)
		return Receipt{}, failure
	}

	l.transition(StateConfirming, hash, nil)
	if err := l.submitter.WaitConfirmed(ctx, hash); err != nil {
		failure := &apperrors.ConfirmationFailure{Method: req.Call.Method, Hash: hash, Cause: err}
		l.transition(StateFailed, hash, failure)
		return Receipt{}, failure
	}

	l.transition(StateSucceeded, hash, nil)
	return Receipt{AttemptID: l.attemptID, Method: req.Call.Method, Hash: hash}, nil
}

func (l *Lifecycle) setMethod(method string) {
	l.mu.Lock()
	l.method = method
	l.mu.Unlock()
}

func (l *Lifecycle) transition(next State, hash string, err error) {
	l.mu.Lock()
	l.state = next
	if hash != "" {
		l.hash = hash
	}
	if err != nil {
		l.err = err
	}
	ev := Event{
		AttemptID: l.attemptID,
		Method:    l.method,
		State:     next,
		Hash:      l.hash,
		Err:       err,
		At:        l.clock.Now(),
	}
	observers := append([]Observer(nil), l.observers...)
	l.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
}

// Factory hands out fresh lifecycles that share the same submitter and
// observers.
type Factory struct {
	submitter Submitter
	clock     clock.Clock
	ids       id.Generator

	mu        sync.Mutex
	observers []Observer
	succeeded []func(Receipt)
	latest    *Lifecycle
}

func NewFactory(submitter Submitter, clk clock.Clock, ids id.Generator, observers ...Observer) *Factory {
	return &Factory{submitter: submitter, clock: clk, ids: ids, observers: observers}
}

// Observe attaches fn to every lifecycle created after the call.
func (f *Factory) Observe(fn Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

// OnSucceeded attaches fn to the succeeded transition of every lifecycle
// created after the call.
func (f *Factory) OnSucceeded(fn func(Receipt)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.succeeded = append(f.succeeded, fn)
}

func (f *Factory) New() *Lifecycle {
	l := New(f.submitter, f.clock, f.ids.New())
	f.mu.Lock()
	observers := append([]Observer(nil), f.observers...)
	succeeded := append(([]func(Receipt))(nil), f.succeeded...)
	f.latest = l
	f.mu.Unlock()
	for _, fn := range observers {
		l.Observe(fn)
	}
	for _, fn := range succeeded {
		l.OnSucceeded(fn)
	}
	return l
}

// Submitting reports whether the most recently created lifecycle is between
// submission and confirmation.
func (f *Factory) Submitting() bool {
	f.mu.Lock()
	latest := f.latest
	f.mu.Unlock()
	return latest != nil && latest.IsSubmitting()
}

// LogObserver writes each transition to logger. Failures log at warn.
func LogObserver(logger hclog.Logger) Observer {
	logger = logger.Named("tx")
	return func(ev Event) {
		args := []any{"attempt", ev.AttemptID, "method", ev.Method, "state", ev.State.String()}
		if ev.Hash != "" {
			args = append(args, "hash", ev.Hash)
		}
		if ev.Err != nil {
			logger.Warn("transaction failed", append(args, "error", ev.Err)...)
			return
		}
		logger.Debug("transaction transition", args...)
	}
}
