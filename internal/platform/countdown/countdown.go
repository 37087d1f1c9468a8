// Package countdown runs a once-per-second countdown towards an absolute
// deadline. Remaining time is recomputed from the clock on every tick so
// suspended processes and slow ticks never accumulate drift.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
)

// Target is an absolute deadline in Unix seconds, or none.
type Target struct {
	Deadline int64
	Valid    bool
}

var None = Target{}

func At(deadline int64) Target {
	return Target{Deadline: deadline, Valid: true}
}

// Update is one observation of the countdown. Completed is set on exactly
// one update per episode.
type Update struct {
	Episode   uint64
	Remaining int64
	Completed bool
}

type Timer struct {
	clock    clock.Clock
	interval time.Duration
	updates  chan Update

	// ctl serializes Set and Stop so two episodes never overlap.
	ctl sync.Mutex

	mu       sync.Mutex
	episode  uint64
	running  bool
	snapshot Update
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(clk clock.Clock) *Timer {
	return &Timer{clock: clk, interval: time.Second, updates: make(chan Update, 1)}
}

// Updates delivers ticks of the current episode. Sends are abandoned when the
// episode is cancelled, so a slow reader never blocks Set or Stop.
func (t *Timer) Updates() <-chan Update {
	return t.updates
}

// Set cancels any running episode, waits for it to exit and starts a new one
// for target. A none target leaves the timer idle with zero remaining.
func (t *Timer) Set(target Target) Update {
	t.ctl.Lock()
	defer t.ctl.Unlock()
	t.stopLocked()

	t.mu.Lock()
	t.episode++
	episode := t.episode
	if !target.Valid {
		t.snapshot = Update{Episode: episode}
		t.running = false
		t.mu.Unlock()
		return t.snapshot
	}
	remaining := t.remaining(target.Deadline)
	first := Update{Episode: episode, Remaining: remaining, Completed: remaining == 0}
	t.snapshot = first
	if first.Completed {
		// Already past: complete immediately, no periodic work needed.
		t.running = false
		t.mu.Unlock()
		select {
		case t.updates <- first:
		default:
		}
		return first
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done
	t.running = true
	t.mu.Unlock()

	go t.run(ctx, done, episode, target.Deadline)
	return first
}

// Stop cancels the running episode and waits for it to exit.
func (t *Timer) Stop() {
	t.ctl.Lock()
	defer t.ctl.Unlock()
	t.stopLocked()
}

// Running reports whether periodic work is scheduled.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Snapshot is the latest computed update.
func (t *Timer) Snapshot() Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

func (t *Timer) stopLocked() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.running = false
	t.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
	// Drop an update of the previous episode nobody picked up.
	select {
	case <-t.updates:
	default:
	}
}

func (t *Timer) run(ctx context.Context, done chan struct{}, episode uint64, deadline int64) {
	defer close(done)
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}
		remaining := t.remaining(deadline)
		update := Update{Episode: episode, Remaining: remaining, Completed: remaining == 0}
		t.mu.Lock()
		if t.episode != episode {
			t.mu.Unlock()
			return
		}
		t.snapshot = update
		if update.Completed {
			t.running = false
		}
		t.mu.Unlock()
		if !t.deliver(ctx, update) || update.Completed {
			return
		}
	}
}

func (t *Timer) deliver(ctx context.Context, update Update) bool {
	select {
	case t.updates <- update:
		return true
	case <-ctx.Done():
		return false
	}
}

func (t *Timer) remaining(deadline int64) int64 {
	left := deadline - clock.Unix(t.clock)
	if left < 0 {
		return 0
	}
	return left
}

// Format renders seconds as MM:SS. Minutes are not wrapped at 60.
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
