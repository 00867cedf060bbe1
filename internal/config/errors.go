package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty data directory or credential file name).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSchedulerConfigs indicates invalid scheduler settings
	// (for example, a negative leech threshold).
	ErrInvalidSchedulerConfigs = errors.New("invalid scheduler configuration")
)
