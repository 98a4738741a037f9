package workflow

import (
	"errors"
	"fmt"

	"github.com/abhisek/mentor/internal/roster"
)

// ErrEmptyRoster is returned by Analyze when no subjects were entered.
var ErrEmptyRoster = roster.ErrEmptyRoster

// ErrBusy is returned by Session.Apply while another event is in flight.
var ErrBusy = errors.New("another action is in progress")

// InvalidActionError reports an event that is not allowed in the current
// phase or carries bad arguments. The state is left unchanged.
type InvalidActionError struct {
	Event  string
	Phase  Phase
	Stage  Stage
	Reason string
	Err    error
}

func (e *InvalidActionError) Error() string {
	where := string(e.Phase)
	if e.Stage != StageNone {
		where += "/" + string(e.Stage)
	}
	msg := fmt.Sprintf("%s not allowed in %s", e.Event, where)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidActionError) Unwrap() error { return e.Err }

// GenerationFailure records a generator error that was recovered by falling
// back to empty or filler content.
type GenerationFailure struct {
	// Step names what was being generated, e.g. "diagnostic" or "plan".
	Step    string `json:"step"`
	Message string `json:"message"`
	err     error
}

func newGenerationFailure(step string, err error) *GenerationFailure {
	return &GenerationFailure{Step: step, Message: err.Error(), err: err}
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s generation failed: %s", e.Step, e.Message)
}

func (e *GenerationFailure) Unwrap() error { return e.err }
