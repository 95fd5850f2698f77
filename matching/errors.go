package matching

import "errors"

// Error kinds surfaced by the matching core. Callers branch with errors.Is;
// the HTTP error middleware maps them to status codes.
var (
	// ErrNotFound: a referenced request or match id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed input, e.g. an active request without target
	// locations, or a transition to something other than accepted/rejected.
	ErrValidation = errors.New("validation failed")

	// ErrPermission: the acting user is not a participant of the match.
	ErrPermission = errors.New("user is not a participant")

	// ErrInvalidTransition: the match is already in a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict: a concurrent writer changed the match status between our
	// read and our conditional write. The caller may re-read and retry.
	ErrConflict = errors.New("concurrent status update conflict")
)
