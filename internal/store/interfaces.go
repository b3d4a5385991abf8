package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/menu-predictor/models"
)

// UserRepository persists accounts together with their algorithm settings.
type UserRepository interface {
	// CreateUserWithSettings inserts the user and its settings row in one
	// transaction and returns the stored user.
	CreateUserWithSettings(ctx context.Context, user models.User, settings models.AlgorithmSettings) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// SettingsRepository reads and updates per-user algorithm settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID int64) (models.AlgorithmSettings, error)
	// UpdateSettings stores the algorithm, parser and model path fields.
	// The secret question and answer are never changed.
	UpdateSettings(ctx context.Context, settings models.AlgorithmSettings) error
}

// ResultRepository records prediction runs.
type ResultRepository interface {
	SaveResult(ctx context.Context, result models.Result) (models.Result, error)
	ListResultsByUser(ctx context.Context, userID int64, limit uint64) ([]models.Result, error)
}

// ArtifactStorage stores opaque blobs under slash-separated keys such as
// "prediction/<hash>.csv". Writes to an existing key replace it.
type ArtifactStorage interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SessionStore keeps server-side session state.
type SessionStore interface {
	// Save creates or replaces the session.
	Save(ctx context.Context, session *models.Session) error
	// Get returns ErrSessionNotFound or ErrSessionExpired when the session
	// cannot be used.
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// CleanupExpired removes expired sessions and returns how many were removed.
	CleanupExpired(ctx context.Context) (int, error)
	Close() error
}
