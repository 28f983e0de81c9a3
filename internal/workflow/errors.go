package workflow

import "errors"

// Engine errors are local, synchronous and non-retryable by the engine
// itself. ErrConflict is the one kind the calling layer may retry once.
// Callers match with errors.Is.
var (
	// ErrNotFound means the complaint id is unknown.
	ErrNotFound = errors.New("complaint not found")

	// ErrUnauthorized means the actor's role or department scope does not
	// allow the requested action. Never silently downgraded.
	ErrUnauthorized = errors.New("actor not authorized for this action")

	// ErrInvalidTransition means the action is not legal from the complaint's
	// current status; the wrapped message carries that status.
	ErrInvalidTransition = errors.New("action not allowed from current status")

	// ErrValidation means the payload is unusable (empty rejection reason,
	// evidence over the limit, ...); the wrapped message names the field.
	ErrValidation = errors.New("validation failed")

	// ErrConflict means a concurrent transition won the write; the caller may
	// re-read and retry once.
	ErrConflict = errors.New("concurrent transition detected")
)
