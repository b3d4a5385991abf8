package mlshell

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned for algorithm package/class pairs
	// that have no adapter in the shell.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrUnsupportedMode is returned by [New] for an unknown transport.
	ErrUnsupportedMode = errors.New("unsupported ml shell mode")

	// ErrShellFailed is returned when the shell ran but reported a failure.
	ErrShellFailed = errors.New("ml shell failed")

	// ErrShellUnavailable is returned while the circuit breaker is open.
	ErrShellUnavailable = errors.New("ml shell unavailable")

	// ErrEmptyModel is returned when a model artifact has no content.
	ErrEmptyModel = errors.New("empty model")
)
