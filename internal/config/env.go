// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from APP_*, SERVER_*, STORAGE_*, ML_* and WORKERS_*
// variables. Unset variables leave fields at their zero value so the
// builder can merge them over the defaults.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrEnvConfig, err)
	}

	return nil
}
