package domain

import (
	"math"
	"strconv"
	"strings"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

// SessionSeconds parses a focus session length in whole minutes and returns
// it in seconds, within [1200, 3600].
func SessionSeconds(minutes string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(minutes), 10, 64)
	if err != nil || n < MinSessionMinutes || n > MaxSessionMinutes {
		return 0, apperrors.Invalid("minutes", "Session length must be between 20 and 60 minutes.")
	}
	return n * 60, nil
}

// BreakSeconds parses a positive break length in minutes. Fractions are
// allowed and rounded to the nearest second.
func BreakSeconds(minutes string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(minutes), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, apperrors.Invalid("minutes", "Break length must be a positive number.")
	}
	secs := int64(math.Round(f * 60))
	if secs < 1 {
		secs = 1
	}
	return secs, nil
}
