package rubric

import "fmt"

// ErrValidation indicates a malformed rubric configuration. It is fatal
// at load time and never retried or coerced.
type ErrValidation struct {
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("invalid rubric: %s", e.Reason)
}

// ErrMissingDimension indicates a score set that does not match the
// rubric's dimensions exactly.
type ErrMissingDimension struct {
	Dimension string
}

func (e *ErrMissingDimension) Error() string {
	return fmt.Sprintf("score result missing dimension %q", e.Dimension)
}
