// Package config provides hierarchical configuration management for termkeys using koanf.
// Configuration is loaded with priority: CLI flag overrides > environment variables (TERMKEYS_*)
// > config file (--config, or ~/.config/termkeys/config.yml) > defaults. Config files may be
// YAML or JSON, selected by extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Output formats for run reports.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Configuration represents the termkeys configuration
type Configuration struct {
	// SettingsPath points at the Windows Terminal settings.json.
	// Empty means the platform default for Variant.
	SettingsPath string `koanf:"settings_path" yaml:"settings_path"`

	// Variant selects the Windows Terminal install: stable, preview or unpackaged.
	Variant string `koanf:"variant" yaml:"variant"`

	DryRun bool `koanf:"dry_run" yaml:"dry_run"`
	Backup bool `koanf:"backup" yaml:"backup"`
	Indent int  `koanf:"indent" yaml:"indent"`

	// FailOnWriteError makes a failed save end the process with a non-zero status.
	FailOnWriteError bool `koanf:"fail_on_write_error" yaml:"fail_on_write_error"`

	Output string `koanf:"output" yaml:"output"`
	Pause  bool   `koanf:"pause" yaml:"pause"`

	// WatchDebounce is the quiet period watch mode waits for after a change.
	WatchDebounce time.Duration `koanf:"watch_debounce" yaml:"watch_debounce"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set.
	// When empty the user config file is used if present.
	ConfigPath string
	// Overrides are applied last, keyed by config key (e.g. "dry_run").
	Overrides map[string]interface{}
}

// Load loads configuration from defaults, config file, environment and overrides.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadFileConfig(k, opts.ConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		k.Set(key, value)
	}

	return finalizeConfig(k, opts.ConfigPath)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// loadFileConfig loads the explicit config file, or the user config when present.
func loadFileConfig(k *koanf.Koanf, explicitPath string) error {
	if explicitPath != "" {
		if !fileExists(explicitPath) {
			return fmt.Errorf("config file not found: %s", explicitPath)
		}
		return loadConfigFile(k, explicitPath)
	}

	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	return loadConfigFile(k, userPath)
}

// loadConfigFile validates and loads a YAML or JSON config file
func loadConfigFile(k *koanf.Koanf, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("TERMKEYS_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if source == "" {
		source = "config"
	}
	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SettingsPath = expandHomePath(cfg.SettingsPath)

	return &cfg, nil
}

// ResolveSettingsPath returns the explicit settings path, or the default
// path of the configured variant on this platform.
func (c *Configuration) ResolveSettingsPath() (string, error) {
	if c.SettingsPath != "" {
		return c.SettingsPath, nil
	}
	return DefaultSettingsPath(runtime.GOOS, c.Variant, os.Getenv)
}

// IndentString returns the indentation unit used when rewriting settings.
func (c *Configuration) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: TERMKEYS_DRY_RUN -> dry_run
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "TERMKEYS_"))
}
