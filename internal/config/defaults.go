package config

import "time"

// defaultConfig returns the values used when no other source sets a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer: "menu-predictor",
			SessionTTL:    24 * time.Hour,
			CookieName:    "sessionid",
			PasswordCost:  10,
			LogLevel:      "debug",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  60 * time.Second,
			MaxUploadBytes:  10 << 20,
			RateLimitWindow: time.Minute,
		},
		Storage: Storage{
			DB: DB{
				Driver: "sqlite",
				DSN:    "file:predictor.db?_foreign_keys=on",
			},
			Files: Files{
				Backend:      "local",
				ArtifactDir:  "data",
				DefaultModel: "models/default.mdl",
			},
			Sessions: Sessions{
				Store: "memory",
			},
		},
		ML: ML{
			Mode:        "exec",
			Command:     "mlshell",
			Timeout:     5 * time.Minute,
			MaxFailures: 5,
			OpenTimeout: 30 * time.Second,
		},
		Workers: Workers{
			SessionCleanupInterval: 10 * time.Minute,
		},
	}
}
