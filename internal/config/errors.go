package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or inconsistent.
var (
	// ErrEnvConfig wraps a malformed environment variable, such as a
	// duration that does not parse.
	ErrEnvConfig = errors.New("malformed environment configuration")

	// ErrInvalidAppConfigs indicates invalid session or password settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid database, artifact or
	// session store settings (for example, s3 backend without a bucket).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidMLConfigs indicates invalid ML shell settings
	// (for example, http mode without a URL).
	ErrInvalidMLConfigs = errors.New("invalid ml shell configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
