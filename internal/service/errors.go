package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrDatabaseUnavailable   = errors.New("database is unavailable")

	// ErrNotResearcher is returned when a user outside the researcher group
	// asks to retrain a model.
	ErrNotResearcher = errors.New("user is not a researcher")

	// ErrInvalidSettings wraps a rejected research form.
	ErrInvalidSettings = errors.New("invalid algorithm settings")

	ErrEmptyTrainingData = errors.New("no training data provided")
	ErrEmptyUpload       = errors.New("uploaded file is empty")
	ErrUploadTooLarge    = errors.New("uploaded file is too large")

	// ErrInvalidSession is returned for a missing, forged or expired session
	// cookie. Callers start a fresh session.
	ErrInvalidSession = errors.New("invalid session")

	// ErrDefaultModelMissing is returned by the startup check when the
	// shared default model artifact does not exist.
	ErrDefaultModelMissing = errors.New("default model artifact is missing")
)
