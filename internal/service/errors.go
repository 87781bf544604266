package service

import "errors"

var (
	// ErrAlreadyActive indicates a start call for a session identifier
	// that already has an open session. No state changes.
	ErrAlreadyActive = errors.New("session already active")

	// ErrNoActiveSession indicates a stop or resolve found no open
	// session for the identifier or folder.
	ErrNoActiveSession = errors.New("no active session")

	// ErrAmbiguousSession indicates folder fallback resolution found more
	// than one open session; the caller must name one explicitly. The
	// registry never guesses by recency.
	ErrAmbiguousSession = errors.New("multiple sessions active for folder")
)
