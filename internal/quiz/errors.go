package quiz

import "errors"

var (
	ErrNotFound = errors.New("quiz not found")

	// ErrInvalidState reports a session operation invoked from a state
	// that does not allow it, e.g. submitting after the last question.
	ErrInvalidState = errors.New("invalid session state")

	// ErrResultNotSaved reports that a finished session could not persist
	// its result. The score summary is still handed to the caller.
	ErrResultNotSaved = errors.New("result not saved")
)

// ValidationError rejects caller-supplied quiz data before it reaches
// storage. Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
