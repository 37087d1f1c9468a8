package apperrors

import (
	"errors"
	"strings"
)

// Reason is the user-facing class of a failed remote call.
type Reason int

const (
	ReasonGeneric Reason = iota
	ReasonDuplicateGoal
	ReasonIncorrectStakeAmount
	ReasonDurationTooShort
)

func (r Reason) String() string {
	switch r {
	case ReasonDuplicateGoal:
		return "duplicate_goal"
	case ReasonIncorrectStakeAmount:
		return "incorrect_stake_amount"
	case ReasonDurationTooShort:
		return "duration_too_short"
	default:
		return "generic"
	}
}

type Translation struct {
	Reason  Reason
	Message string
}

const (
	unknownFailure = "Transaction failed for an unknown reason."
	genericFailure = "Transaction failed."
)

// Contract error identifiers, matched as substrings of the revert details.
var knownFailures = []struct {
	identifier string
	reason     Reason
	message    string
}{
	{"GoalAlreadyExists", ReasonDuplicateGoal, "You already have an active goal with this activity type."},
	{"IncorrectStakeSent", ReasonIncorrectStakeAmount, "The stake amount sent does not match the required stake."},
	{"GoalDurationShouldBeMoreThan60Minutes", ReasonDurationTooShort, "Goal duration must be at least 60 minutes total."},
}

// Translate maps a raw failure onto one of the known reasons. It never
// panics; unmatched errors keep their most specific message.
func Translate(err error) Translation {
	if err == nil {
		return Translation{Reason: ReasonGeneric, Message: unknownFailure}
	}

	var remote *RemoteError
	if errors.As(err, &remote) && remote != nil {
		if t, ok := match(remote.Details); ok {
			return t
		}
		for _, msg := range []string{remote.ShortMessage, remote.Message} {
			if strings.TrimSpace(msg) != "" {
				return Translation{Reason: ReasonGeneric, Message: msg}
			}
		}
		return Translation{Reason: ReasonGeneric, Message: genericFailure}
	}

	text := err.Error()
	if t, ok := match(text); ok {
		return t
	}
	if strings.TrimSpace(text) == "" {
		return Translation{Reason: ReasonGeneric, Message: genericFailure}
	}
	return Translation{Reason: ReasonGeneric, Message: text}
}

func match(details string) (Translation, bool) {
	if details == "" {
		return Translation{}, false
	}
	for _, known := range knownFailures {
		if strings.Contains(details, known.identifier) {
			return Translation{Reason: known.reason, Message: known.message}, true
		}
	}
	return Translation{}, false
}

// UserMessage renders any error from the core for display: validation errors
// keep their field message, remote failures go through Translate.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	var submission *SubmissionError
	if errors.As(err, &submission) {
		return Translate(submission.Cause).Message
	}
	var confirmation *ConfirmationFailure
	if errors.As(err, &confirmation) {
		return Translate(confirmation.Cause).Message
	}
	return Translate(err).Message
}
