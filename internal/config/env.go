// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Variable names come from
// the `envPrefix` of each section joined with the field's `env` tag, e.g.
// APP_MASTER_SECRET or STORAGE_LOCAL_QUEUE_PATH.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: environment: %w", ErrInvalidAppConfigs, err)
	}
	return nil
}
