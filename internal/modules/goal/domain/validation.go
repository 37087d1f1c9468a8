package domain

import (
	"math/big"
	"strconv"
	"strings"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

const (
	SecondsPerDay = 24 * 60 * 60
	// MinGoalSeconds mirrors the contract's lower bound on goal duration.
	MinGoalSeconds = 60 * 60
)

// NewGoalForm is the raw input of a goal creation.
type NewGoalForm struct {
	Account      string
	ActivityType string
	DurationDays string
	NumTrees     string
	CostPerTree  *big.Int
}

// NewGoal is a validated startGoal request.
type NewGoal struct {
	ActivityType    string
	DurationSeconds *big.Int
	NumTrees        *big.Int
	Stake           *big.Int
}

// ValidateNewGoal checks the form in the order a user fixes it and returns
// the first failure as a ValidationError.
func ValidateNewGoal(form NewGoalForm) (NewGoal, error) {
	if strings.TrimSpace(form.Account) == "" {
		return NewGoal{}, apperrors.Invalid("account", "Please connect your wallet first.")
	}
	if strings.TrimSpace(form.ActivityType) == "" {
		return NewGoal{}, apperrors.Invalid("activityType", "Activity type is required.")
	}
	if len(form.ActivityType) > MaxActivityTypeLen {
		return NewGoal{}, apperrors.Invalid("activityType", "Activity type must be 32 characters or fewer.")
	}
	days, ok := positiveInt(form.DurationDays)
	if !ok {
		return NewGoal{}, apperrors.Invalid("durationDays", "Duration must be a positive number of days.")
	}
	seconds := new(big.Int).Mul(days, big.NewInt(SecondsPerDay))
	if seconds.Cmp(big.NewInt(MinGoalSeconds)) <= 0 {
		return NewGoal{}, apperrors.Invalid("durationDays", "Goal duration must be at least 60 minutes total.")
	}
	trees, ok := positiveInt(form.NumTrees)
	if !ok {
		return NewGoal{}, apperrors.Invalid("numTrees", "Number of trees must be at least 1.")
	}
	if form.CostPerTree == nil || form.CostPerTree.Sign() == 0 {
		return NewGoal{}, apperrors.Invalid("costPerTree", "Cost per tree cannot be 0.")
	}
	return NewGoal{
		ActivityType:    form.ActivityType,
		DurationSeconds: seconds,
		NumTrees:        trees,
		Stake:           new(big.Int).Mul(trees, form.CostPerTree),
	}, nil
}

// StakeFor is the value sent with startGoal: numTrees × cost, or 0 when
// numTrees does not parse to a positive integer or cost is not loaded.
func StakeFor(numTrees string, cost *big.Int) *big.Int {
	trees, ok := positiveInt(numTrees)
	if !ok || cost == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(trees, cost)
}

func positiveInt(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return nil, false
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() <= 0 {
		return nil, false
	}
	return n, true
}
