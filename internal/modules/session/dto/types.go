package dto

import (
	"time"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
)

type StatusInput struct {
	Account string
}

type SessionOutput struct {
	ActivityType string
	StartTime    int64
	EndTime      int64
	Active       bool
	Owner        string
}

type StatusOutput struct {
	Session          SessionOutput
	HasActiveSession bool
	MatchedGoal      *goaldto.GoalOutput
	// Goals are the goals a session can be started for.
	Goals       []goaldto.GoalOutput
	BreakNeeded bool
	// HasCountdown is false when there is nothing to count down to.
	HasCountdown bool
	Deadline     int64
	Remaining    int64
	AsOf         time.Time
}

type StartInput struct {
	Account      string
	ActivityType string
	Minutes      string
}

type BreakInput struct {
	Minutes string
}

type BreakOutput struct {
	EndsAt int64
}

type EndBreakInput struct {
	Account string
}

type TxOutput struct {
	AttemptID string
	Method    string
	Hash      string
}
