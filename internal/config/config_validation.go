// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DataDir) == "" || strings.TrimSpace(cfg.Storage.UsersFile) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Scheduler.LeechThreshold < 1 {
		return ErrInvalidSchedulerConfigs
	}

	return nil
}
