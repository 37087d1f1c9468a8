package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestTranslateKnownRevertsRegardlessOfSurroundingText(t *testing.T) {
	t.Parallel()
	cases := []struct {
		details string
		want    Reason
	}{
		{"execution reverted: custom error GoalAlreadyExists() at 0xabc", ReasonDuplicateGoal},
		{"IncorrectStakeSent()", ReasonIncorrectStakeAmount},
		{"reverted with GoalDurationShouldBeMoreThan60Minutes", ReasonDurationTooShort},
	}
	for _, tc := range cases {
		got := Translate(&RemoteError{ShortMessage: "The contract function reverted.", Details: tc.details})
		if got.Reason != tc.want {
			t.Fatalf("details %q: expected %s, got %s", tc.details, tc.want, got.Reason)
		}
	}
}

func TestTranslateMatchesThroughWrapping(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("send startGoal: %w", &RemoteError{Details: "GoalAlreadyExists()"})
	if got := Translate(err); got.Reason != ReasonDuplicateGoal {
		t.Fatalf("expected duplicate goal, got %s (%s)", got.Reason, got.Message)
	}
}

func TestTranslateFallsBackToMostSpecificMessage(t *testing.T) {
	t.Parallel()
	got := Translate(&RemoteError{ShortMessage: "User rejected the request.", Message: "long message", Details: "nothing known"})
	if got.Reason != ReasonGeneric || got.Message != "User rejected the request." {
		t.Fatalf("expected short message fallback, got %+v", got)
	}
	got = Translate(&RemoteError{Message: "long message"})
	if got.Message != "long message" {
		t.Fatalf("expected message fallback, got %+v", got)
	}
	got = Translate(&RemoteError{})
	if got.Message != genericFailure {
		t.Fatalf("expected generic failure string, got %+v", got)
	}
}

func TestTranslatePlainAndNilErrors(t *testing.T) {
	t.Parallel()
	if got := Translate(nil); got.Message != unknownFailure {
		t.Fatalf("expected unknown failure for nil, got %+v", got)
	}
	if got := Translate(errors.New("dial tcp: connection refused")); got.Message != "dial tcp: connection refused" {
		t.Fatalf("expected plain error text, got %+v", got)
	}
	if got := Translate(errors.New("IncorrectStakeSent")); got.Reason != ReasonIncorrectStakeAmount {
		t.Fatalf("expected plain error text to be matched, got %+v", got)
	}
}

func TestUserMessageUnwrapsTaxonomy(t *testing.T) {
	t.Parallel()
	if got := UserMessage(Invalid("numTrees", "Number of trees must be at least 1.")); got != "Number of trees must be at least 1." {
		t.Fatalf("unexpected validation message %q", got)
	}
	sub := &SubmissionError{Method: "startGoal", Cause: &RemoteError{Details: "GoalAlreadyExists()"}}
	if got := UserMessage(sub); got != "You already have an active goal with this activity type." {
		t.Fatalf("unexpected submission message %q", got)
	}
	if !errors.Is(Invalid("x", "y"), ErrInvalidInput) {
		t.Fatalf("validation errors must match ErrInvalidInput")
	}
}

func TestRejectedMatchesBothSentinels(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("start session: %w", Rejected(ErrBreakNeeded, "session", "A break is required before starting a new session. Take a break first."))
	if !errors.Is(err, ErrBreakNeeded) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected both sentinels to match, got %v", err)
	}
	if got := UserMessage(err); got != "A break is required before starting a new session. Take a break first." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestStaleReadErrorUnwrapsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("batch timeout")
	err := fmt.Errorf("read goals: %w", &StaleReadError{Missing: 6, Total: 6, Cause: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	var stale *StaleReadError
	if !errors.As(err, &stale) || stale.Missing != 6 {
		t.Fatalf("expected stale read error, got %v", err)
	}
}
