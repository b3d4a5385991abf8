package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingDefaultModelReleasesStorages(t *testing.T) {
	dir := t.TempDir()
	sessionsDir := filepath.Join(dir, "sessions")

	cfg := &config.StructuredConfig{
		App: config.App{
			SessionSignKey: "secret",
			SessionTTL:     time.Hour,
			CookieName:     "sessionid",
			PasswordCost:   4,
		},
		Server: config.Server{HTTPAddress: "127.0.0.1:0", MaxUploadBytes: 1 << 20},
		Storage: config.Storage{
			DB: config.DB{
				Driver: "sqlite",
				DSN:    "file:" + filepath.Join(dir, "predictor.db") + "?_foreign_keys=on",
			},
			Files:    config.Files{Backend: "local", ArtifactDir: filepath.Join(dir, "data"), DefaultModel: "models/default.mdl"},
			Sessions: config.Sessions{Store: "badger", Dir: sessionsDir},
		},
		ML: config.ML{Mode: "http", URL: "http://127.0.0.1:1", Timeout: time.Second, MaxFailures: 1},
	}

	err := run(models.NewAppBuildInfo("test", "", "").WithDefaults(), cfg, logger.Nop())

	require.ErrorIs(t, err, service.ErrDefaultModelMissing)

	// Badger holds a directory lock until closed.
	sessions, err := store.OpenBadgerSessionStore(sessionsDir)
	require.NoError(t, err)
	assert.NoError(t, sessions.Close())
}
