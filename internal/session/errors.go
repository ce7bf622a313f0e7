package session

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an advancing action is dispatched while a
// previous one is still in flight. The busy flag is advisory within one
// session; it is not a cross-session lock.
var ErrBusy = errors.New("session busy: an action is already in flight")

// ErrNotFound is returned by the store for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// PreconditionError reports an operation dispatched in a phase that does
// not permit it, or with a required input missing. These are prevented at
// the interaction layer and never forwarded to a generator sub-step.
type PreconditionError struct {
	Op      string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed for %s: %s", e.Op, e.Message)
}
