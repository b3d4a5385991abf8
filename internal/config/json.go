package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files.
// Durations are written as strings such as "30s" or "1h".
type StructuredJSONConfig struct {
	App struct {
		SessionSignKey string   `json:"session_sign_key"`
		SessionIssuer  string   `json:"session_issuer"`
		SessionTTL     Duration `json:"session_ttl"`
		CookieName     string   `json:"cookie_name"`
		CookieSecure   bool     `json:"cookie_secure"`
		PasswordCost   int      `json:"password_cost"`
		LogLevel       string   `json:"log_level"`
		Version        string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Backend      string `json:"backend"`
			ArtifactDir  string `json:"artifact_dir"`
			DefaultModel string `json:"default_model"`
		} `json:"files,omitempty"`

		S3 struct {
			Endpoint        string `json:"endpoint"`
			Region          string `json:"region"`
			Bucket          string `json:"bucket"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
		} `json:"s3,omitempty"`

		Sessions struct {
			Store string `json:"store"`
			Dir   string `json:"dir"`
		} `json:"sessions,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		MaxUploadBytes    int64    `json:"max_upload_bytes"`
		RateLimitRequests int      `json:"rate_limit_requests"`
		RateLimitWindow   Duration `json:"rate_limit_window"`
	} `json:"server,omitempty"`

	ML struct {
		Mode        string   `json:"mode"`
		Command     string   `json:"command"`
		URL         string   `json:"url"`
		Timeout     Duration `json:"timeout"`
		MaxFailures uint32   `json:"max_failures"`
		OpenTimeout Duration `json:"open_timeout"`
	} `json:"ml,omitempty"`

	Workers struct {
		SessionCleanupInterval Duration `json:"session_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionSignKey: jsonCfg.App.SessionSignKey,
			SessionIssuer:  jsonCfg.App.SessionIssuer,
			SessionTTL:     time.Duration(jsonCfg.App.SessionTTL),
			CookieName:     jsonCfg.App.CookieName,
			CookieSecure:   jsonCfg.App.CookieSecure,
			PasswordCost:   jsonCfg.App.PasswordCost,
			LogLevel:       jsonCfg.App.LogLevel,
			Version:        jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				Backend:      jsonCfg.Storage.Files.Backend,
				ArtifactDir:  jsonCfg.Storage.Files.ArtifactDir,
				DefaultModel: jsonCfg.Storage.Files.DefaultModel,
			},
			S3: S3{
				Endpoint:        jsonCfg.Storage.S3.Endpoint,
				Region:          jsonCfg.Storage.S3.Region,
				Bucket:          jsonCfg.Storage.S3.Bucket,
				AccessKeyID:     jsonCfg.Storage.S3.AccessKeyID,
				SecretAccessKey: jsonCfg.Storage.S3.SecretAccessKey,
			},
			Sessions: Sessions{
				Store: jsonCfg.Storage.Sessions.Store,
				Dir:   jsonCfg.Storage.Sessions.Dir,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadBytes:    jsonCfg.Server.MaxUploadBytes,
			RateLimitRequests: jsonCfg.Server.RateLimitRequests,
			RateLimitWindow:   time.Duration(jsonCfg.Server.RateLimitWindow),
		},
		ML: ML{
			Mode:        jsonCfg.ML.Mode,
			Command:     jsonCfg.ML.Command,
			URL:         jsonCfg.ML.URL,
			Timeout:     time.Duration(jsonCfg.ML.Timeout),
			MaxFailures: jsonCfg.ML.MaxFailures,
			OpenTimeout: time.Duration(jsonCfg.ML.OpenTimeout),
		},
		Workers: Workers{
			SessionCleanupInterval: time.Duration(jsonCfg.Workers.SessionCleanupInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
