package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.DryRun, "dry-run stays on until disabled")
	assert.Equal(t, 480, cfg.DailyLimitMinutes)
	assert.Equal(t, 30, cfg.RoundToMinutes)
	assert.Equal(t, 12, cfg.MaxSessionHours)
	assert.False(t, cfg.ExpandShortDays)
	assert.Equal(t, "dev_applicatif", cfg.DefaultActivity)
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
dry_run: false
daily_limit_minutes: 420
expand_short_days: true
kimai:
  url: https://kimai.example.com
  auth_user: alice
  auth_token: s3cret
activity_mappings:
  dev_applicatif:
    id: 5
    name: Development
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.DryRun)
	assert.Equal(t, 420, cfg.DailyLimitMinutes)
	assert.True(t, cfg.ExpandShortDays)
	assert.Equal(t, 30, cfg.RoundToMinutes, "unset fields keep their defaults")
	assert.Equal(t, "https://kimai.example.com", cfg.Kimai.URL)

	id, ok := cfg.ActivityID("dev_applicatif")
	require.True(t, ok)
	assert.Equal(t, 5, id)

	_, ok = cfg.ActivityID("mystery")
	assert.False(t, ok)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "kimai: [broken")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_NonPositiveBudgetsReset(t *testing.T) {
	path := writeConfig(t, "daily_limit_minutes: -10\nround_to_minutes: 0\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.DailyLimitMinutes)
	assert.Equal(t, 30, cfg.RoundToMinutes)
}

func TestRequireKimai(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.RequireKimai(), ErrConfigMissing)

	cfg.Kimai.URL = "https://kimai.example.com"
	assert.ErrorIs(t, cfg.RequireKimai(), ErrConfigMissing)

	cfg.Kimai.AuthUser = "alice"
	cfg.Kimai.AuthToken = "s3cret"
	assert.NoError(t, cfg.RequireKimai())
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("NECTIME_CONFIG", "/tmp/custom.yaml")
	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}

func TestDBPath_EnvOverride(t *testing.T) {
	t.Setenv("NECTIME_DB", "/tmp/custom.db")
	path, err := DBPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}
