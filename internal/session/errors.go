package session

import "fmt"

// ErrInvalidState is returned when an operation is called from a state
// that does not allow it. The state machine is never advanced.
type ErrInvalidState struct {
	Op    string
	State State
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("session: %s not allowed in state %s", e.Op, e.State)
}

// ErrOracle is returned when a scoring call fails after retry. The
// engine restores the state it was in before the call.
type ErrOracle struct {
	Op  string
	Err error
}

func (e *ErrOracle) Error() string {
	return fmt.Sprintf("session: %s oracle failed: %v", e.Op, e.Err)
}

func (e *ErrOracle) Unwrap() error {
	return e.Err
}

// ErrCoachingUnavailable is returned when the coaching call fails after
// retry. The attempt is still recorded, marked degraded.
type ErrCoachingUnavailable struct {
	Err error
}

func (e *ErrCoachingUnavailable) Error() string {
	return fmt.Sprintf("session: coaching unavailable: %v", e.Err)
}

func (e *ErrCoachingUnavailable) Unwrap() error {
	return e.Err
}
