package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrBreakNeeded         = errors.New("a break is required before starting a new session")
	ErrNoBreakScheduled    = errors.New("no break scheduled")
	ErrNotOwner            = errors.New("not the contract owner")
	ErrNotClaimable        = errors.New("goal is not claimable")
	ErrNoAccount           = errors.New("no account configured")
)

// ValidationError is a local, pre-submission failure. It never reaches the
// contract.
type ValidationError struct {
	Field   string
	Message string
	// Cause is an optional sentinel the failure also matches.
	Cause error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets callers test for ErrInvalidInput without caring about the field.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Rejected is a validation failure that also matches cause with errors.Is.
func Rejected(cause error, field, message string) error {
	return &ValidationError{Field: field, Message: message, Cause: cause}
}

// RemoteError carries the fields a node reports for a rejected call. Details
// holds the decoded revert (for example "GoalAlreadyExists()").
type RemoteError struct {
	ShortMessage string
	Details      string
	Message      string
	Cause        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.ShortMessage != "":
		return e.ShortMessage
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	}
	return "remote call failed"
}

func (e *RemoteError) Unwrap() error { return e.Cause }

// SubmissionError is a call rejected before inclusion.
type SubmissionError struct {
	Method string
	Cause  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s: %s", e.Method, Translate(e.Cause).Message)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// ConfirmationFailure is a transaction that was sent but reverted or was never
// confirmed.
type ConfirmationFailure struct {
	Method string
	Hash   string
	Cause  error
}

func (e *ConfirmationFailure) Error() string {
	return fmt.Sprintf("confirm %s (%s): %s", e.Method, e.Hash, Translate(e.Cause).Message)
}

func (e *ConfirmationFailure) Unwrap() error { return e.Cause }

// StaleReadError describes batched reads that came back missing. Callers log
// it and show zero values; it is never returned to the user.
type StaleReadError struct {
	Missing int
	Total   int
	Cause   error
}

func (e *StaleReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d of %d reads missing: %v", e.Missing, e.Total, e.Cause)
	}
	return fmt.Sprintf("%d of %d reads missing", e.Missing, e.Total)
}

func (e *StaleReadError) Unwrap() error { return e.Cause }
