package dto

import (
	"math/big"
	"time"
)

// View selects which ongoing-goal rule a listing applies.
type View int

const (
	// ViewListing keeps every goal with trees left, expired or not.
	ViewListing View = iota
	// ViewSession keeps only goals a focus session can be started for.
	ViewSession
)

type ListInput struct {
	Account string
	View    View
}

type GoalOutput struct {
	ActivityType   string
	TreesRemaining uint64
	EndTime        int64
	StakedWei      *big.Int
	Claimable      bool
	Expired        bool
}

type ListOutput struct {
	Account      string
	Goals        []GoalOutput
	MissingSlots int
	AsOf         time.Time
}

type CreateInput struct {
	Account      string
	ActivityType string
	DurationDays string
	NumTrees     string
}

type ClaimInput struct {
	Account      string
	ActivityType string
}

// TxOutput is the result of a confirmed contract write.
type TxOutput struct {
	AttemptID string
	Method    string
	Hash      string
	ValueWei  *big.Int
}

type QuoteOutput struct {
	CostPerTreeWei *big.Int
	StakeWei       *big.Int
}
