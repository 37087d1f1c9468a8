package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

func TestFromEventSkipsTransitionsThatNeverReachedTheNode(t *testing.T) {
	t.Parallel()
	for _, state := range []tx.State{tx.StateIdle, tx.StateValidating} {
		if _, ok := FromEvent(tx.Event{AttemptID: "a1", State: state}); ok {
			t.Fatalf("expected %s to be skipped", state)
		}
	}
}

func TestFromEventTranslatesFailures(t *testing.T) {
	t.Parallel()
	at := time.Unix(1700000000, 0)
	failure := &apperrors.SubmissionError{
		Method: "startGoal",
		Cause:  &apperrors.RemoteError{ShortMessage: "reverted", Details: "GoalAlreadyExists()"},
	}
	entry, ok := FromEvent(tx.Event{AttemptID: "a1", Method: "startGoal", State: tx.StateFailed, Err: failure, At: at})
	if !ok {
		t.Fatalf("expected failed event to be recorded")
	}
	if entry.State != "failed" || entry.Reason != "duplicate_goal" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Message != "You already have an active goal with this activity type." {
		t.Fatalf("unexpected message %q", entry.Message)
	}
	if !entry.CreatedAt.Equal(at) {
		t.Fatalf("expected created at %s, got %s", at, entry.CreatedAt)
	}

	generic, _ := FromEvent(tx.Event{AttemptID: "a2", State: tx.StateFailed, Err: errors.New("node down")})
	if generic.Reason != "generic" || generic.Message != "node down" {
		t.Fatalf("unexpected generic entry %+v", generic)
	}
}
