// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// menu-predictor server. It is populated by merging defaults, environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds session and password hashing settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database, artifact and session store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// ML holds the settings of the external ML shell.
	ML ML `envPrefix:"ML_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// SessionSignKey signs the session cookie token.
	// Env: APP_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY" validate:"required"`

	// SessionIssuer is the "iss" claim of the session cookie token.
	// Env: APP_SESSION_ISSUER
	SessionIssuer string `env:"SESSION_ISSUER"`

	// SessionTTL is how long an idle session stays valid.
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL" validate:"gt=0"`

	// CookieName is the name of the session cookie.
	// Env: APP_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME" validate:"required"`

	// CookieSecure marks the session cookie Secure.
	// Env: APP_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// PasswordCost is the bcrypt cost used for new password hashes.
	// Env: APP_PASSWORD_COST
	PasswordCost int `env:"PASSWORD_COST" validate:"min=4,max=31"`

	// LogLevel is the minimum zerolog level emitted ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`

	// Version overrides the linker-injected build version on the health
	// endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound HTTP server.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" validate:"required"`

	// RequestTimeout bounds the handling time of one request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`

	// MaxUploadBytes caps the size of one uploaded file.
	// Env: SERVER_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" validate:"gt=0"`

	// RateLimitRequests is the per-IP request budget per RateLimitWindow.
	// Zero disables rate limiting.
	// Env: SERVER_RATE_LIMIT_REQUESTS
	RateLimitRequests int `env:"RATE_LIMIT_REQUESTS" validate:"min=0"`

	// Env: SERVER_RATE_LIMIT_WINDOW
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	DB       DB       `envPrefix:"DB_"`
	Files    Files    `envPrefix:"FILES_"`
	S3       S3       `envPrefix:"S3_"`
	Sessions Sessions `envPrefix:"SESSIONS_"`
}

// DB holds connection settings for the relational database.
type DB struct {
	// Driver is "postgres" or "sqlite".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER" validate:"oneof=postgres sqlite"`

	// DSN is the data source name passed to the driver.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI" validate:"required"`
}

// Files holds artifact store settings.
type Files struct {
	// Backend is "local" or "s3".
	// Env: STORAGE_FILES_BACKEND
	Backend string `env:"BACKEND" validate:"oneof=local s3"`

	// ArtifactDir is the root of the local artifact store.
	// Env: STORAGE_FILES_ARTIFACT_DIR
	ArtifactDir string `env:"ARTIFACT_DIR"`

	// DefaultModel is the artifact key of the model used by users without
	// a trained model of their own.
	// Env: STORAGE_FILES_DEFAULT_MODEL
	DefaultModel string `env:"DEFAULT_MODEL" validate:"required"`
}

// S3 holds the object storage settings used when Files.Backend is "s3".
type S3 struct {
	Endpoint        string `env:"ENDPOINT"`
	Region          string `env:"REGION"`
	Bucket          string `env:"BUCKET"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// Sessions holds session store settings.
type Sessions struct {
	// Store is "memory" or "badger".
	// Env: STORAGE_SESSIONS_STORE
	Store string `env:"STORE" validate:"oneof=memory badger"`

	// Dir is the Badger data directory.
	// Env: STORAGE_SESSIONS_DIR
	Dir string `env:"DIR"`
}

// ML holds the settings of the external ML shell.
type ML struct {
	// Mode is "exec" or "http".
	// Env: ML_MODE
	Mode string `env:"MODE" validate:"oneof=exec http"`

	// Command is the executable run per call in exec mode.
	// Env: ML_COMMAND
	Command string `env:"COMMAND"`

	// URL is the base URL of the shell in http mode.
	// Env: ML_URL
	URL string `env:"URL"`

	// Timeout bounds one shell call.
	// Env: ML_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" validate:"gt=0"`

	// MaxFailures is the number of consecutive failures that opens the
	// circuit breaker.
	// Env: ML_MAX_FAILURES
	MaxFailures uint32 `env:"MAX_FAILURES" validate:"gt=0"`

	// OpenTimeout is how long the breaker stays open.
	// Env: ML_OPEN_TIMEOUT
	OpenTimeout time.Duration `env:"OPEN_TIMEOUT" validate:"gt=0"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionCleanupInterval is the period of the expired session sweep.
	// Env: WORKERS_SESSION_CLEANUP_INTERVAL
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" validate:"gt=0"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
