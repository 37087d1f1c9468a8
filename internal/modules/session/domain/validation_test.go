package domain

import (
	"errors"
	"testing"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

func TestSessionSecondsBounds(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]int64{"20": 1_200, "60": 3_600, " 25 ": 1_500} {
		got, err := SessionSeconds(in)
		if err != nil || got != want {
			t.Fatalf("session %q: expected %d, got %d (%v)", in, want, got, err)
		}
	}
	for _, in := range []string{"19", "61", "", "abc", "25.5", "-30"} {
		if _, err := SessionSeconds(in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("session %q: expected validation error, got %v", in, err)
		}
	}
}

func TestBreakSeconds(t *testing.T) {
	t.Parallel()
	if got, err := BreakSeconds("5"); err != nil || got != 300 {
		t.Fatalf("expected 300, got %d (%v)", got, err)
	}
	if got, err := BreakSeconds("0.5"); err != nil || got != 30 {
		t.Fatalf("expected 30, got %d (%v)", got, err)
	}
	for _, in := range []string{"0", "-1", "", "NaN", "x"} {
		if _, err := BreakSeconds(in); apperrors.UserMessage(err) != "Break length must be a positive number." {
			t.Fatalf("break %q: expected validation message, got %v", in, err)
		}
	}
}
