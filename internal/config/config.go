package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/replkit/internal/lineedit"
)

// Error modes for [errors] mode.
const (
	ErrorModeContinue = "continue"
	ErrorModeAbort    = "abort"
)

// minHelpWidth is the narrowest help layout that still fits the command column.
const minHelpWidth = 20

// Config represents the main configuration
type Config struct {
	Name    string        `toml:"name" yaml:"name"`
	Prompt  string        `toml:"prompt" yaml:"prompt"`     // Empty means "<name>> "
	Banner  string        `toml:"banner" yaml:"banner"`     // Printed once when the session starts
	NoColor bool          `toml:"no_color" yaml:"no_color"` // Disable all styling
	History HistoryConfig `toml:"history" yaml:"history"`
	Help    HelpConfig    `toml:"help" yaml:"help"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Errors  ErrorsConfig  `toml:"errors" yaml:"errors"`
}

// HistoryConfig controls the persisted line history.
type HistoryConfig struct {
	File  string `toml:"file" yaml:"file"`   // Empty disables persistence
	Limit int    `toml:"limit" yaml:"limit"` // Maximum stored lines
}

// HelpConfig controls help rendering.
type HelpConfig struct {
	Width int `toml:"width" yaml:"width"` // 0 means terminal width
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn, error
	File  string `toml:"file" yaml:"file"`   // Empty discards logs
}

// ErrorsConfig selects what a runtime error does to the session.
type ErrorsConfig struct {
	Mode string `toml:"mode" yaml:"mode"` // continue or abort
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Name:   "replkit",
		Banner: "Welcome to replkit! Type 'help' to list commands.",
		History: HistoryConfig{
			File:  DefaultHistoryPath(),
			Limit: lineedit.DefaultHistoryLimit,
		},
		Log:    LogConfig{Level: "warn"},
		Errors: ErrorsConfig{Mode: ErrorModeContinue},
	}
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	if env := os.Getenv("REPLKIT_CONFIG"); env != "" {
		return ExpandHome(env)
	}
	return filepath.Join(configDir(), "config.toml")
}

// DefaultHistoryPath returns where history is kept when the config names no file.
func DefaultHistoryPath() string {
	return filepath.Join(configDir(), "history")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "replkit")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		// Fallback to /tmp when home directory is unavailable (e.g., containers)
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "replkit")
}

// Load reads the config at path over the defaults and applies environment
// overrides. A missing file is not an error. Paths ending in .yaml or .yml
// are decoded as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	// 1. Initialize with defaults
	cfg := Default()

	// 2. Read and unmarshal the file over defaults
	if data, err := os.ReadFile(path); err == nil {
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// 3. Apply Environment Variable Overrides (Env > file > Default)
	applyEnv(cfg)

	cfg.History.File = ExpandHome(cfg.History.File)
	cfg.Log.File = ExpandHome(cfg.Log.File)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

func applyEnv(cfg *Config) {
	if file := os.Getenv("REPLKIT_HISTORY_FILE"); file != "" {
		cfg.History.File = file
	}
	if level := os.Getenv("REPLKIT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if v := os.Getenv("REPLKIT_NO_COLOR"); v != "" && v != "0" {
		cfg.NoColor = true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
}

// ExpandHome expands ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	return path
}

// SlogLevel parses a log level name.
func SlogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", name)
	}
	return level, nil
}

// Validate checks the configuration and returns every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{fmt.Errorf("config is nil")}
	}

	var errs []error

	if strings.TrimSpace(cfg.Name) == "" {
		errs = append(errs, fmt.Errorf("name: must not be empty"))
	}
	if cfg.History.Limit <= 0 {
		errs = append(errs, fmt.Errorf("history.limit: must be positive, got %d", cfg.History.Limit))
	}
	if cfg.Help.Width != 0 && cfg.Help.Width < minHelpWidth {
		errs = append(errs, fmt.Errorf("help.width: must be 0 or at least %d, got %d", minHelpWidth, cfg.Help.Width))
	}
	if _, err := SlogLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch cfg.Errors.Mode {
	case ErrorModeContinue, ErrorModeAbort:
	default:
		errs = append(errs, fmt.Errorf("errors.mode: must be %q or %q, got %q", ErrorModeContinue, ErrorModeAbort, cfg.Errors.Mode))
	}

	return errs
}

// Print writes cfg as a commented TOML file.
func Print(cfg *Config, w io.Writer) error {
	fmt.Fprintln(w, "# replkit configuration")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "# Application name, shown in help and the default prompt")
	fmt.Fprintf(w, "name = %q\n", cfg.Name)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "# Prompt shown before each line (default: \"<name>> \")")
	if cfg.Prompt != "" {
		fmt.Fprintf(w, "prompt = %q\n", cfg.Prompt)
	} else {
		fmt.Fprintln(w, "# prompt = \"replkit> \"")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "# Printed once at startup")
	fmt.Fprintf(w, "banner = %q\n", cfg.Banner)
	fmt.Fprintf(w, "no_color = %t\n", cfg.NoColor)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[history]")
	fmt.Fprintln(w, "# Empty file disables persistence")
	fmt.Fprintf(w, "file = %q\n", cfg.History.File)
	fmt.Fprintf(w, "limit = %d\n", cfg.History.Limit)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[help]")
	fmt.Fprintln(w, "# 0 uses the terminal width")
	fmt.Fprintf(w, "width = %d\n", cfg.Help.Width)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[log]")
	fmt.Fprintln(w, "# debug, info, warn, error")
	fmt.Fprintf(w, "level = %q\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "file = %q\n", cfg.Log.File)
	} else {
		fmt.Fprintln(w, "# file = \"~/.config/replkit/replkit.log\"")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[errors]")
	fmt.Fprintln(w, "# continue: print the error and keep going; abort: end the session")
	_, err := fmt.Fprintf(w, "mode = %q\n", cfg.Errors.Mode)
	return err
}
