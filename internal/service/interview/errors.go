package interview

import (
	"errors"

	"github.com/careerlift/resume-coach/backend/internal/service/session"
)

var (
	// ErrInvalidInput rejects missing or empty required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound covers unknown ids and sessions the sweeper
	// already reclaimed.
	ErrSessionNotFound = session.ErrNotFound

	// ErrAlreadyComplete rejects answers against a completed session.
	ErrAlreadyComplete = errors.New("interview already complete")

	// ErrConflict means another request mutated the session between
	// snapshot and commit; the caller can safely resubmit.
	ErrConflict = errors.New("session modified concurrently")

	// ErrGenerationFailed wraps completion or synthesis failures. The
	// session is left untouched, so retrying the same request is safe.
	ErrGenerationFailed = errors.New("generation failed")
)
