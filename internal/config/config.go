package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigMissing indicates required configuration is absent. Operations
// that need it abort before touching any state.
var ErrConfigMissing = errors.New("configuration missing")

// ActivityMapping ties a local activity key to an external activity id.
type ActivityMapping struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// AutoActivityRule scores an activity from prompt keywords and file
// extensions seen during a session.
type AutoActivityRule struct {
	Keywords   []string `yaml:"keywords"`
	Extensions []string `yaml:"extensions"`
}

// AutoActivity configures hook-driven activity estimation.
type AutoActivity struct {
	Enabled         bool                        `yaml:"enabled"`
	IntervalMinutes int                         `yaml:"interval_minutes"`
	AskBeforeChange bool                        `yaml:"ask_before_change"`
	Rules           map[string]AutoActivityRule `yaml:"rules"`
}

// Kimai holds the external tracker endpoint and its two static auth tokens.
type Kimai struct {
	URL       string `yaml:"url"`
	AuthUser  string `yaml:"auth_user"`
	AuthToken string `yaml:"auth_token"`
}

// Config is the on-disk configuration, loaded from ~/.nectime/config.yaml
// or the file named by NECTIME_CONFIG.
type Config struct {
	Kimai             Kimai                      `yaml:"kimai"`
	DryRun            bool                       `yaml:"dry_run"`
	DailyLimitMinutes int                        `yaml:"daily_limit_minutes"`
	RoundToMinutes    int                        `yaml:"round_to_minutes"`
	ExpandShortDays   bool                       `yaml:"expand_short_days"`
	DefaultActivity   string                     `yaml:"default_activity"`
	MaxSessionHours   int                        `yaml:"max_session_hours"`
	ActivityMappings  map[string]ActivityMapping `yaml:"activity_mappings"`
	AutoActivity      AutoActivity               `yaml:"auto_activity"`
}

// Default returns a Config with sensible defaults. Dry-run stays on until
// someone deliberately turns it off.
func Default() *Config {
	return &Config{
		DryRun:            true,
		DailyLimitMinutes: 480,
		RoundToMinutes:    30,
		ExpandShortDays:   false,
		DefaultActivity:   "dev_applicatif",
		MaxSessionHours:   12,
		ActivityMappings:  map[string]ActivityMapping{},
		AutoActivity: AutoActivity{
			IntervalMinutes: 15,
		},
	}
}

// Path returns the config file location: NECTIME_CONFIG if set, otherwise
// ~/.nectime/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("NECTIME_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".nectime", "config.yaml"), nil
}

// DBPath returns the database location: NECTIME_DB if set, otherwise
// ~/.nectime/nectime.db.
func DBPath() (string, error) {
	if p := os.Getenv("NECTIME_DB"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".nectime", "nectime.db"), nil
}

// Load reads the config file, merging it over defaults. A missing file
// yields the defaults; local-only commands work without any configuration.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a specific config file, merging it over defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DailyLimitMinutes <= 0 {
		cfg.DailyLimitMinutes = 480
	}
	if cfg.RoundToMinutes <= 0 {
		cfg.RoundToMinutes = 30
	}
	if cfg.MaxSessionHours <= 0 {
		cfg.MaxSessionHours = 12
	}
	return cfg, nil
}

// RequireKimai validates the fields needed for any network operation.
func (c *Config) RequireKimai() error {
	if c.Kimai.URL == "" {
		return fmt.Errorf("kimai.url: %w", ErrConfigMissing)
	}
	if c.Kimai.AuthUser == "" || c.Kimai.AuthToken == "" {
		return fmt.Errorf("kimai.auth_user/auth_token: %w", ErrConfigMissing)
	}
	return nil
}

// ActivityID resolves a local activity key to the external activity id.
func (c *Config) ActivityID(key string) (int, bool) {
	m, ok := c.ActivityMappings[key]
	if !ok {
		return 0, false
	}
	return m.ID, true
}
