package session

import (
	"fmt"
	"time"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
)

// State is a step of the interview session flow.
type State string

const (
	StateLoading             State = "loading"
	StateAwaitingPermissions State = "awaiting_permissions"
	StateQuestionsGenerating State = "questions_generating"
	StateReady               State = "ready"
	StateRecording           State = "recording"
	StatePaused              State = "paused"
	StateAdvancing           State = "advancing"
	StateCompleted           State = "completed"
	StateFailed              State = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

const (
	CodeInvalidTransition = "INVALID_SESSION_TRANSITION"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
)

var (
	ErrInvalidTransition = apperrors.Conflict(CodeInvalidTransition, "Operation not allowed in the current session state")
	ErrSessionNotFound   = apperrors.NotFound(CodeSessionNotFound, "Session not found")
)

func invalidTransition(operation string, from State) error {
	return ErrInvalidTransition.Wrap(fmt.Errorf("cannot %s while %s", operation, from))
}

// DefaultAnswer is recorded when a question ends without a transcribed answer.
const DefaultAnswer = "User provided answer via voice recording"

// Clock abstracts time so countdowns can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }
