package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
)

// Storages bundles every persistence component the services depend on.
type Storages struct {
	UserRepository     UserRepository
	SettingsRepository SettingsRepository
	ResultRepository   ResultRepository
	Artifacts          ArtifactStorage
	Sessions           SessionStore

	db *DB
}

// NewStorages connects to the database, applies migrations and builds the
// artifact and session stores selected by cfg.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	artifacts, err := NewArtifactStorage(ctx, cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessions, err := NewSessionStore(cfg.Sessions)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		SettingsRepository: NewSettingsRepository(db, log),
		ResultRepository:   NewResultRepository(db, log),
		Artifacts:          artifacts,
		Sessions:           sessions,
		db:                 db,
	}, nil
}

// NewArtifactStorage returns the artifact backend named by cfg.Files.Backend.
func NewArtifactStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (ArtifactStorage, error) {
	switch cfg.Files.Backend {
	case "local":
		return NewFileArtifactStorage(cfg.Files.ArtifactDir, log)
	case "s3":
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3ArtifactStorage(client, cfg.S3.Bucket, log), nil
	default:
		return nil, fmt.Errorf("%w: artifact backend %q", ErrUnsupportedBackend, cfg.Files.Backend)
	}
}

// NewSessionStore returns the session store named by cfg.Store.
func NewSessionStore(cfg config.Sessions) (SessionStore, error) {
	switch cfg.Store {
	case "", "memory":
		return NewMemorySessionStore(), nil
	case "badger":
		return OpenBadgerSessionStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("%w: session store %q", ErrUnsupportedBackend, cfg.Store)
	}
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the session store and the database connection.
func (s *Storages) Close() error {
	var errs []error
	if s.Sessions != nil {
		errs = append(errs, s.Sessions.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
