// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks that the final merged [StructuredConfig] is usable at
// startup. Field rules come from the validate tags; cross-field rules are
// checked here. The returned error wraps the sentinel of the first group
// that failed.
func (cfg *StructuredConfig) validate() error {
	if err := structValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed on %q", groupError(fe.Namespace()), fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("error validating config: %w", err)
	}

	if cfg.Storage.Files.Backend == "local" && cfg.Storage.Files.ArtifactDir == "" {
		return fmt.Errorf("%w: artifact dir is required for local backend", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Files.Backend == "s3" && cfg.Storage.S3.Bucket == "" {
		return fmt.Errorf("%w: bucket is required for s3 backend", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Sessions.Store == "badger" && cfg.Storage.Sessions.Dir == "" {
		return fmt.Errorf("%w: directory is required for badger session store", ErrInvalidStorageConfigs)
	}
	if cfg.ML.Mode == "exec" && cfg.ML.Command == "" {
		return fmt.Errorf("%w: command is required in exec mode", ErrInvalidMLConfigs)
	}
	if cfg.ML.Mode == "http" && cfg.ML.URL == "" {
		return fmt.Errorf("%w: url is required in http mode", ErrInvalidMLConfigs)
	}
	if cfg.Server.RateLimitRequests > 0 && cfg.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: rate limit window must be positive", ErrInvalidServerConfigs)
	}

	return nil
}

// groupError maps a validator namespace such as "StructuredConfig.ML.Timeout"
// to the sentinel error of its group.
func groupError(namespace string) error {
	parts := strings.SplitN(namespace, ".", 3)
	if len(parts) < 2 {
		return ErrInvalidAppConfigs
	}

	switch parts[1] {
	case "Server":
		return ErrInvalidServerConfigs
	case "Storage":
		return ErrInvalidStorageConfigs
	case "ML":
		return ErrInvalidMLConfigs
	case "Workers":
		return ErrInvalidWorkerConfigs
	default:
		return ErrInvalidAppConfigs
	}
}
