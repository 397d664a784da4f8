// Package config loads the optional .hookkit.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"hookkit/internal/tddtags"
)

// FileName is the project config file looked up by Find.
const FileName = ".hookkit.yaml"

// ErrInvalid marks a config that failed validation.
var ErrInvalid = errors.New("invalid config")

// Config is the project configuration.
type Config struct {
	LogLevel string      `yaml:"log_level"`
	Color    string      `yaml:"color"`
	TDD      TDDConfig   `yaml:"tdd"`
	Merge    MergeConfig `yaml:"merge"`
}

// TDDConfig configures the tag checker.
type TDDConfig struct {
	Namespace string   `yaml:"namespace"`
	Tags      []string `yaml:"tags"`
	Blocking  []string `yaml:"blocking"`
	Cache     bool     `yaml:"cache"`
}

// MergeConfig configures the config merger.
type MergeConfig struct {
	Type string `yaml:"type"`
}

// Default returns the built-in configuration.
func Default() *Config {
	rules := tddtags.DefaultRules()
	return &Config{
		LogLevel: "warn",
		Color:    "auto",
		TDD: TDDConfig{
			Namespace: rules.Namespace,
			Tags:      rules.Tags,
			Blocking:  rules.Blocking,
		},
		Merge: MergeConfig{Type: "auto"},
	}
}

// Load reads the config at path over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest project config, or returns defaults.
func Discover(startDir string) (*Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, "", cfg.Validate()
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Save writes the config as YAML, refusing to replace an existing file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Rules returns the tag checker rule set described by the config.
func (c *Config) Rules() tddtags.Rules {
	return tddtags.Rules{
		Namespace: c.TDD.Namespace,
		Tags:      append([]string(nil), c.TDD.Tags...),
		Blocking:  append([]string(nil), c.TDD.Blocking...),
	}
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%w: color %q (expected auto|on|off)", ErrInvalid, c.Color)
	}
	switch c.Merge.Type {
	case "auto", "json", "toml":
	default:
		return fmt.Errorf("%w: merge.type %q (expected json|toml|auto)", ErrInvalid, c.Merge.Type)
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// applyEnvOverrides lets HOOKKIT_LOG_LEVEL and HOOKKIT_COLOR win over the file.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("HOOKKIT_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("HOOKKIT_COLOR")); v != "" {
		c.Color = strings.ToLower(v)
	}
}
