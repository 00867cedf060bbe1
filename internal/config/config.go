// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "os"

// Default values applied after all sources are merged.
const (
	DefaultRole           = "recall"
	DefaultDataDir        = "./data"
	DefaultUsersFile      = "users.txt"
	DefaultLeechThreshold = 8
)

// StructuredConfig is the top-level configuration container for the
// go-recall-keeper client. It aggregates all sub-configurations and is
// populated by merging values from a JSON file, environment variables and
// command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as logging.
	App App `envPrefix:"APP_"`

	// Storage holds the locations of the credential file, the encrypted
	// containers and the optional scheduler state database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Scheduler holds review scheduling settings.
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// LogFile is the file the client logs to. Empty means stderr.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Role is attached to every log line.
	// Env: APP_ROLE
	Role string `env:"ROLE"`
}

// Storage groups the file-system locations used by the client.
type Storage struct {
	// DataDir is the directory holding the credential file and every
	// user's encrypted containers.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// UsersFile is the credential file name, relative to DataDir.
	// Env: STORAGE_USERS_FILE
	UsersFile string `env:"USERS_FILE"`

	// MetaDSN is the SQLite DSN for scheduler state. When empty the state
	// is rebuilt from item fields at the start of every session.
	// Env: STORAGE_META_DSN
	MetaDSN string `env:"META_DSN"`
}

// Scheduler holds review scheduling settings.
type Scheduler struct {
	// LeechThreshold is the number of lapses that flags an item as a leech.
	// Env: SCHEDULER_LEECH_THRESHOLD
	LeechThreshold int `env:"LEECH_THRESHOLD"`
}

// GetStructuredConfig loads, merges and validates the configuration from
// the JSON file, the environment and the process command line.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}

// applyDefaults fills every field still empty after merging.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Role == "" {
		cfg.App.Role = DefaultRole
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = DefaultDataDir
	}
	if cfg.Storage.UsersFile == "" {
		cfg.Storage.UsersFile = DefaultUsersFile
	}
	if cfg.Scheduler.LeechThreshold == 0 {
		cfg.Scheduler.LeechThreshold = DefaultLeechThreshold
	}
}
