package domain

import (
	"time"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

const DefaultListLimit = 20

// Entry is the latest known state of one transaction attempt.
type Entry struct {
	ID        string
	Method    string
	State     string
	Hash      string
	Reason    string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromEvent projects a lifecycle event. Idle and validating transitions
// never reached the node and are not recorded.
func FromEvent(ev tx.Event) (Entry, bool) {
	if ev.State == tx.StateIdle || ev.State == tx.StateValidating || ev.AttemptID == "" {
		return Entry{}, false
	}
	entry := Entry{
		ID:        ev.AttemptID,
		Method:    ev.Method,
		State:     ev.State.String(),
		Hash:      ev.Hash,
		CreatedAt: ev.At,
		UpdatedAt: ev.At,
	}
	if ev.Err != nil {
		entry.Reason = apperrors.Translate(ev.Err).Reason.String()
		entry.Message = apperrors.UserMessage(ev.Err)
	}
	return entry, true
}
