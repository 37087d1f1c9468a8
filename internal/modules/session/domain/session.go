package domain

import (
	"time"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	"github.com/hara-desu/ForestOnchain/internal/platform/countdown"
)

const (
	MinSessionMinutes = 20
	MaxSessionMinutes = 60
)

// UserSession is the contract's record of a focus session. Times are Unix
// seconds. The zero value is "no session".
type UserSession struct {
	ActivityType string
	StartTime    int64
	EndTime      int64
	Active       bool
	Owner        string
}

// BreakTarget is the locally scheduled end of a break. The contract only
// tracks that a break is needed, so the deadline lives on this machine.
type BreakTarget struct {
	EndsAt      int64     `json:"ends_at"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// StaleFor reports whether the break was scheduled before session ended. Such
// a break was already taken, so a newly required break has no deadline yet.
func (b BreakTarget) StaleFor(session UserSession) bool {
	return session.EndTime > 0 && b.ScheduledAt.Unix() < session.EndTime
}

// View is the resolved session page state.
type View struct {
	Session          UserSession
	HasActiveSession bool
	MatchedGoal      *goaldto.GoalOutput
	BreakNeeded      bool
	Countdown        countdown.Target
}

// Resolve derives the view from one read of each source. goals must come
// from the session-selection rule; breakTarget may be none.
func Resolve(session UserSession, breakNeeded bool, goals []goaldto.GoalOutput, breakTarget countdown.Target) View {
	view := View{
		Session:          session,
		HasActiveSession: session.Active,
		BreakNeeded:      breakNeeded,
		Countdown:        countdown.None,
	}
	if session.Active {
		for i := range goals {
			if goals[i].ActivityType == session.ActivityType {
				matched := goals[i]
				view.MatchedGoal = &matched
				break
			}
		}
	}
	switch {
	case breakNeeded:
		view.Countdown = breakTarget
	case session.Active:
		view.Countdown = countdown.At(session.EndTime)
	}
	return view
}
