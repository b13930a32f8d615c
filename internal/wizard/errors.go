package wizard

import (
	"errors"
	"strings"
)

// User-facing messages.
const (
	MsgRequiredFields   = "Please fill in all required fields"
	MsgTooFewStops      = "At least one pickup and one delivery stop required"
	MsgMissingStopTypes = "Both pickup and delivery stops are required"
	MsgSubmitFailed     = "Failed to create load"
	MsgSubmitError      = "An error occurred while creating the load"
)

var (
	ErrTerminalStep    = errors.New("wizard: already at the final step")
	ErrNotTerminalStep = errors.New("wizard: submit is only allowed at the review step")
	ErrSubmitInFlight  = errors.New("wizard: submission already in progress")
	ErrAlreadyDone     = errors.New("wizard: load already submitted")
	ErrStopIndex       = errors.New("wizard: stop index out of range")
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a local, non-fatal check failure. It never changes the
// wizard state.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// SubmissionError is returned when the Load service refused or could not be
// reached. The wizard stays at the review step and may be resubmitted.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SubmissionError) Unwrap() error { return e.Err }
