// Package config loads fittrack configuration from a YAML file, an optional
// .env file and FITTRACK_* environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by Load.
const (
	EnvDatabasePath     = "FITTRACK_DB"
	EnvResetOnStartup   = "FITTRACK_RESET"
	EnvGoalsOwnerScoped = "FITTRACK_GOALS_OWNER_SCOPED"
	EnvLogLevel         = "FITTRACK_LOG_LEVEL"
	EnvLogFormat        = "FITTRACK_LOG_FORMAT"
	EnvLogFile          = "FITTRACK_LOG_FILE"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// DefaultDatabasePath matches the file name used by earlier releases.
const DefaultDatabasePath = "fitness_tracker.db"

// ValidLogLevels and ValidLogFormats bound LoggingConfig.
var (
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
	ValidLogFormats = []string{"console", "json"}
)

// Config holds all fittrack configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Goals    GoalsConfig    `yaml:"goals"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"` // file path or ":memory:"

	// ResetOnStartup discards the database file every time the program
	// starts, so each run begins with an empty store.
	ResetOnStartup bool `yaml:"reset_on_startup"`
}

// GoalsConfig configures goal ownership checks.
type GoalsConfig struct {
	// OwnerScoped restricts goal updates and deletes to the goal's owner.
	// When false, goals are addressed by id alone.
	OwnerScoped bool `yaml:"owner_scoped"`
}

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`   // empty means stderr
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:           DefaultDatabasePath,
			ResetOnStartup: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads configuration. An empty path or a missing file yields the
// defaults; environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path not configured")
	}
	if !oneOf(c.Logging.Level, ValidLogLevels) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !oneOf(c.Logging.Format, ValidLogFormats) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}

// loadDotEnv exports variables from file without overriding ones already set.
func loadDotEnv(file string) error {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(file); err != nil {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv(EnvDatabasePath); path != "" {
		c.Database.Path = path
	}
	if err := boolEnv(EnvResetOnStartup, &c.Database.ResetOnStartup); err != nil {
		return err
	}
	if err := boolEnv(EnvGoalsOwnerScoped, &c.Goals.OwnerScoped); err != nil {
		return err
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}
	if file := os.Getenv(EnvLogFile); file != "" {
		c.Logging.File = file
	}
	return nil
}

func boolEnv(key string, dst *bool) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	*dst = v
	return nil
}

func oneOf(v string, valid []string) bool {
	for _, s := range valid {
		if s == v {
			return true
		}
	}
	return false
}
