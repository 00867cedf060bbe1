package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App:       App{Role: DefaultRole},
		Storage:   Storage{DataDir: DefaultDataDir, UsersFile: DefaultUsersFile},
		Scheduler: Scheduler{LeechThreshold: DefaultLeechThreshold},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs yields the
// defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterConfigsOverride verifies that non-zero fields of later
// configs win and zero fields keep earlier values.
func TestBuild_LaterConfigsOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DataDir: "first", UsersFile: "users-first.txt"}},
		&StructuredConfig{Storage: Storage{DataDir: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.Storage.DataDir)
	assert.Equal(t, "users-first.txt", cfg.Storage.UsersFile)
}

func TestBuild_ValidationFails(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Scheduler: Scheduler{LeechThreshold: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidSchedulerConfigs)
}

// ── withFlags / withEnv / withJSON ────────────────────────────────────────────

func TestWithFlags_Error(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-nope"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithEnv_AppendsConfig(t *testing.T) {
	setEnvVars(t, map[string]string{"STORAGE_DATA_DIR": "env-dir"})

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-dir", b.configs[0].Storage.DataDir)
}

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withFlags(nil).withJSON()
	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-c", "/definitely/not/here.json"}).withJSON()
	assert.Error(t, b.err)
}

// TestBuilder_Priority verifies JSON < env < flags.
func TestBuilder_Priority(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":       map[string]any{"log_file": "json.log", "role": "json-role"},
		"storage":   map[string]any{"data_dir": "json-dir", "users_file": "json-users", "meta_dsn": "json.db"},
		"scheduler": map[string]any{"leech_threshold": 4},
	})
	setEnvVars(t, map[string]string{
		"STORAGE_DATA_DIR":   "env-dir",
		"STORAGE_USERS_FILE": "env-users",
	})

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-data-dir", "flag-dir", "-config", path}).
		withJSON().
		build()
	require.NoError(t, err)

	assert.Equal(t, "flag-dir", cfg.Storage.DataDir)
	assert.Equal(t, "env-users", cfg.Storage.UsersFile)
	assert.Equal(t, "json.db", cfg.Storage.MetaDSN)
	assert.Equal(t, "json.log", cfg.App.LogFile)
	assert.Equal(t, "json-role", cfg.App.Role)
	assert.Equal(t, 4, cfg.Scheduler.LeechThreshold)
	assert.Equal(t, path, cfg.JSONFilePath)
}
