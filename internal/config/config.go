// Package config handles configuration loading from a TOML file and
// environment variables. Command-line flags are applied on top by the cli
// package.
//
// Priority: CLI flags > env vars > TOML file > defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roach88/gradebook/internal/store"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "gradebook.toml"

// Config holds all configuration settings.
type Config struct {
	Data    DataConfig    `toml:"data"`
	Display DisplayConfig `toml:"display"`
	Logging LoggingConfig `toml:"logging"`
}

// DataConfig holds persistence settings.
type DataConfig struct {
	File string `toml:"file"` // data file; format follows the extension
}

// DisplayConfig holds output settings.
type DisplayConfig struct {
	Sort   string `toml:"sort"`   // "id", "name", "average"
	Format string `toml:"format"` // "text", "json"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

var (
	validFormats = []string{"text", "json"}
	validLevels  = []string{"debug", "info", "warn", "error"}
)

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			File: "students.json",
		},
		Display: DisplayConfig{
			Sort:   string(store.ByID),
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the TOML file at path, and the
// environment.
//
// A missing file is ignored when required is false (the default path) and
// is an error when required is true (a path the user asked for).
func Load(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadTOML(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || required {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTOML loads configuration from a TOML file.
// Keys that do not map to a field are rejected to catch typos.
func (c *Config) loadTOML(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("GRADEBOOK_FILE"); v != "" {
		c.Data.File = v
	}
	if v := os.Getenv("GRADEBOOK_SORT"); v != "" {
		c.Display.Sort = v
	}
	if v := os.Getenv("GRADEBOOK_FORMAT"); v != "" {
		c.Display.Format = v
	}
	if v := os.Getenv("GRADEBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that every setting has an allowed value.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("data.file must not be empty")
	}
	if _, err := store.ParseCriterion(c.Display.Sort); err != nil {
		return fmt.Errorf("display.sort: %w", err)
	}
	if !slices.Contains(validFormats, c.Display.Format) {
		return fmt.Errorf("display.format %q: must be one of %v", c.Display.Format, validFormats)
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("logging.level %q: must be one of %v", c.Logging.Level, validLevels)
	}
	return nil
}

// SlogLevel converts the configured level for slog handlers.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
