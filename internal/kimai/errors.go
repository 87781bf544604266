package kimai

import "errors"

var (
	// ErrUnavailable indicates the Kimai server is unreachable.
	ErrUnavailable = errors.New("kimai server unavailable")

	// ErrAPIFailure indicates the server answered with a non-2xx status.
	ErrAPIFailure = errors.New("kimai api failure")
)
