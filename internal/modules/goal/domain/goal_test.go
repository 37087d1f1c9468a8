package domain

import (
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

func ok(v int64) Slot { return Slot{OK: true, Value: big.NewInt(v)} }

var failed = Slot{Err: errors.New("reverted")}

func TestAggregateListingVersusSessionSelection(t *testing.T) {
	t.Parallel()
	stake, _ := new(big.Int).SetString("5000000000000000000", 10)
	batch := Batch{
		ActivityTypes: []string{"Study"},
		Slots:         []Slot{ok(3), ok(0), {OK: true, Value: stake}},
	}
	listed := Aggregate(batch, Listing, 1_000)
	if len(listed) != 1 || listed[0].TreesRemaining != 3 || listed[0].StakedAmount.Cmp(stake) != 0 {
		t.Fatalf("expected one listed goal, got %+v", listed)
	}
	if got := Aggregate(batch, SessionSelection, 1_000); len(got) != 0 {
		t.Fatalf("expected unset end time to be excluded from session selection, got %+v", got)
	}
	batch.Slots[1] = ok(2_000)
	if got := Aggregate(batch, SessionSelection, 1_000); len(got) != 1 {
		t.Fatalf("expected future goal in session selection, got %+v", got)
	}
	if got := Aggregate(batch, SessionSelection, 2_000); len(got) != 0 {
		t.Fatalf("expected end time equal to now to be excluded, got %+v", got)
	}
}

func TestAggregateMissingAndFailedSlotsReadAsZero(t *testing.T) {
	t.Parallel()
	batch := Batch{
		ActivityTypes: []string{"Run", "Read"},
		Slots:         []Slot{ok(4), failed, ok(9), ok(1)},
	}
	goals := Aggregate(batch, nil, 0)
	if len(goals) != 2 {
		t.Fatalf("expected two goals, got %d", len(goals))
	}
	if goals[0].EndTime != 0 || goals[0].StakedAmount.Int64() != 9 {
		t.Fatalf("expected failed end time to read as zero, got %+v", goals[0])
	}
	if goals[1].TreesRemaining != 1 || goals[1].EndTime != 0 || goals[1].StakedAmount.Sign() != 0 {
		t.Fatalf("expected missing slots to read as zero, got %+v", goals[1])
	}
	if got := MissingSlots(batch); got != 3 {
		t.Fatalf("expected 3 missing slots, got %d", got)
	}
}

func TestAggregateCorrelatesByIdentifier(t *testing.T) {
	t.Parallel()
	batch := Batch{
		ActivityTypes: []string{"Read", "Study", "Read"},
		Slots:         []Slot{ok(1), ok(10), ok(1), ok(2), ok(20), ok(2), ok(3), ok(30), ok(3)},
	}
	goals := Aggregate(batch, Listing, 0)
	if len(goals) != 2 {
		t.Fatalf("expected duplicates collapsed to 2 goals, got %d", len(goals))
	}
	read, found := Find(goals, "Read")
	if !found || read.TreesRemaining != 1 || read.EndTime != 10 {
		t.Fatalf("expected first occurrence of Read, got %+v", read)
	}
	study, _ := Find(goals, "Study")
	if study.TreesRemaining != 2 || study.EndTime != 20 {
		t.Fatalf("expected Study triple from its own position, got %+v", study)
	}
}

func TestAggregateSaturatesOversizedValues(t *testing.T) {
	t.Parallel()
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	goals := Aggregate(Batch{ActivityTypes: []string{"X"}, Slots: []Slot{{OK: true, Value: huge}, {OK: true, Value: huge}, ok(0)}}, nil, 0)
	if goals[0].TreesRemaining != ^uint64(0) || goals[0].EndTime <= 0 {
		t.Fatalf("expected saturated values, got %+v", goals[0])
	}
}

func TestClaimable(t *testing.T) {
	t.Parallel()
	now := int64(1_000)
	cases := []struct {
		goal Goal
		want bool
	}{
		{Goal{TreesRemaining: 0, EndTime: 0}, true},
		{Goal{TreesRemaining: 0, EndTime: 1_001}, true},
		{Goal{TreesRemaining: 0, EndTime: 1_000}, false},
		{Goal{TreesRemaining: 0, EndTime: 999}, false},
		{Goal{TreesRemaining: 1, EndTime: 0}, false},
		{Goal{TreesRemaining: 2, EndTime: 5_000}, false},
	}
	for _, tc := range cases {
		if got := Claimable(tc.goal, now); got != tc.want {
			t.Fatalf("claimable(%+v): expected %v, got %v", tc.goal, tc.want, got)
		}
	}
	if !Expired(Goal{EndTime: 999}, now) || Expired(Goal{}, now) {
		t.Fatalf("unexpected expiry")
	}
}

func TestValidateNewGoalOrderAndStake(t *testing.T) {
	t.Parallel()
	cost, _ := new(big.Int).SetString("1000000000000000000", 10)
	valid := NewGoalForm{Account: "0xabc", ActivityType: "Study", DurationDays: "7", NumTrees: "3", CostPerTree: cost}
	goal, err := ValidateNewGoal(valid)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if goal.DurationSeconds.Int64() != 7*SecondsPerDay || goal.Stake.String() != "3000000000000000000" {
		t.Fatalf("unexpected goal %+v", goal)
	}

	cases := []struct {
		mutate func(*NewGoalForm)
		want   string
	}{
		{func(f *NewGoalForm) { f.Account = "" }, "Please connect your wallet first."},
		{func(f *NewGoalForm) { f.ActivityType = "   " }, "Activity type is required."},
		{func(f *NewGoalForm) { f.ActivityType = "abcdefghijklmnopqrstuvwxyz0123456" }, "Activity type must be 32 characters or fewer."},
		{func(f *NewGoalForm) { f.DurationDays = "1.5" }, "Duration must be a positive number of days."},
		{func(f *NewGoalForm) { f.DurationDays = "0" }, "Duration must be a positive number of days."},
		{func(f *NewGoalForm) { f.NumTrees = "0" }, "Number of trees must be at least 1."},
		{func(f *NewGoalForm) { f.NumTrees = "-2" }, "Number of trees must be at least 1."},
		{func(f *NewGoalForm) { f.CostPerTree = big.NewInt(0) }, "Cost per tree cannot be 0."},
		{func(f *NewGoalForm) { f.CostPerTree = nil }, "Cost per tree cannot be 0."},
		{func(f *NewGoalForm) { f.Account = ""; f.NumTrees = "0" }, "Please connect your wallet first."},
	}
	for _, tc := range cases {
		form := valid
		tc.mutate(&form)
		_, err := ValidateNewGoal(form)
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected validation error for %q, got %v", tc.want, err)
		}
		if got := apperrors.UserMessage(err); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestStakeFor(t *testing.T) {
	t.Parallel()
	cost, _ := new(big.Int).SetString("1000000000000000000", 10)
	if got := StakeFor("3", cost); got.String() != "3000000000000000000" {
		t.Fatalf("expected 3e18, got %s", got)
	}
	for _, in := range []string{"0", "", "abc", "-1"} {
		if got := StakeFor(in, cost); got.Sign() != 0 {
			t.Fatalf("stake for %q: expected 0, got %s", in, got)
		}
	}
}
