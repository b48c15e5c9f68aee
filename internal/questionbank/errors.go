package questionbank

import "fmt"

// ErrExhaustedPool indicates no question matches the requested
// difficulty once the excluded ids are removed. It is fatal to the
// session; the caller decides any fallback policy.
type ErrExhaustedPool struct {
	Difficulty Difficulty
}

func (e *ErrExhaustedPool) Error() string {
	return fmt.Sprintf("question pool exhausted at difficulty %s", e.Difficulty)
}

// ErrValidation indicates a malformed question record. A single bad
// record aborts the whole load; there is no partial corpus.
type ErrValidation struct {
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("invalid question corpus: %s", e.Reason)
}
