package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrEmailAlreadyExists is returned when the email of a new user is
	// already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSettingsNotFound is returned when a user has no algorithm settings row.
	ErrSettingsNotFound = errors.New("algorithm settings were not found")

	// ErrResultNotSaved is returned when an INSERT into results returns no row.
	ErrResultNotSaved = errors.New("result was not saved")
)

// Artifact and session store errors.
var (
	// ErrArtifactNotFound is returned when no artifact exists under a key.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidArtifactKey is returned for keys that are empty, absolute or
	// escape the artifact root.
	ErrInvalidArtifactKey = errors.New("invalid artifact key")

	// ErrSessionNotFound is returned when no session exists under an ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the stored session is past its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnsupportedBackend is returned by the factories for unknown
	// driver, artifact backend or session store names.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
