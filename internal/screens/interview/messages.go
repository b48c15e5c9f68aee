package interview

import (
	"time"

	"github.com/abhisek/skillbridge/internal/questionbank"
	sess "github.com/abhisek/skillbridge/internal/session"
)

// questionReadyMsg is sent when the next question has been drawn.
type questionReadyMsg struct {
	Question questionbank.Question
	Err      error
}

// turnDoneMsg is sent when scoring and coaching of a submission finished.
type turnDoneMsg struct {
	Turn *sess.Turn
	Err  error
}

// spinnerTickMsg animates the scoring indicator.
type spinnerTickMsg time.Time
