package domain

import "math/big"

// MaxActivityTypeLen is the contract's limit on activity identifiers.
const MaxActivityTypeLen = 32

// ReadsPerActivity is the number of slots read for every activity:
// getGoal, getEndTime, getStakedAmount, in that order.
const ReadsPerActivity = 3

// Goal is one activity's snapshot. EndTime is Unix seconds, 0 when unset.
type Goal struct {
	ActivityType   string
	TreesRemaining uint64
	EndTime        int64
	StakedAmount   *big.Int
}

// Slot is one batched read result. A missing or failed slot reads as zero.
type Slot struct {
	OK    bool
	Value *big.Int
	Err   error
}

func (s Slot) value() *big.Int {
	if !s.OK || s.Value == nil {
		return new(big.Int)
	}
	return s.Value
}

// Batch pairs an activity list with the slots read for exactly that list.
type Batch struct {
	ActivityTypes []string
	Slots         []Slot
}

// Predicate decides whether an aggregated goal is shown. now is Unix seconds.
type Predicate func(g Goal, now int64) bool

// SessionSelection keeps goals with trees left that have not expired.
func SessionSelection(g Goal, now int64) bool {
	return g.TreesRemaining > 0 && g.EndTime > now
}

// Listing keeps goals with trees left regardless of expiry, so the overview
// still shows expired goals.
func Listing(g Goal, _ int64) bool {
	return g.TreesRemaining > 0
}

// Aggregate turns a batch into goals. The triple for position i sits at
// slots 3i..3i+2. Duplicate identifiers produce one goal, built from their
// first occurrence. It never fails.
func Aggregate(batch Batch, keep Predicate, now int64) []Goal {
	goals := make([]Goal, 0, len(batch.ActivityTypes))
	seen := make(map[string]struct{}, len(batch.ActivityTypes))
	for i, activity := range batch.ActivityTypes {
		if _, dup := seen[activity]; dup {
			continue
		}
		seen[activity] = struct{}{}
		base := i * ReadsPerActivity
		g := Goal{
			ActivityType:   activity,
			TreesRemaining: saturateUint64(slotAt(batch.Slots, base)),
			EndTime:        saturateInt64(slotAt(batch.Slots, base+1)),
			StakedAmount:   new(big.Int).Set(slotAt(batch.Slots, base+2)),
		}
		if keep == nil || keep(g, now) {
			goals = append(goals, g)
		}
	}
	return goals
}

// MissingSlots counts the slots that will read as zero.
func MissingSlots(batch Batch) int {
	want := len(batch.ActivityTypes) * ReadsPerActivity
	missing := 0
	for i := 0; i < want; i++ {
		if i >= len(batch.Slots) || !batch.Slots[i].OK {
			missing++
		}
	}
	return missing
}

// Find returns the first goal for activity.
func Find(goals []Goal, activity string) (Goal, bool) {
	for _, g := range goals {
		if g.ActivityType == activity {
			return g, true
		}
	}
	return Goal{}, false
}

// Claimable is true when every tree is done and the goal has not expired.
func Claimable(g Goal, now int64) bool {
	return g.TreesRemaining == 0 && (g.EndTime == 0 || g.EndTime > now)
}

// Expired is true once a set end time has passed.
func Expired(g Goal, now int64) bool {
	return g.EndTime != 0 && g.EndTime <= now
}

func slotAt(slots []Slot, i int) *big.Int {
	if i < 0 || i >= len(slots) {
		return new(big.Int)
	}
	return slots[i].value()
}

var (
	maxUint64 = new(big.Int).SetUint64(^uint64(0))
	maxInt64  = big.NewInt(int64(^uint64(0) >> 1))
)

func saturateUint64(v *big.Int) uint64 {
	if v.Sign() <= 0 {
		return 0
	}
	if v.Cmp(maxUint64) > 0 {
		return ^uint64(0)
	}
	return v.Uint64()
}

func saturateInt64(v *big.Int) int64 {
	if v.Sign() <= 0 {
		return 0
	}
	if v.Cmp(maxInt64) > 0 {
		return maxInt64.Int64()
	}
	return v.Int64()
}
