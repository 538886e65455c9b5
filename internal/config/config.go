// Package config loads the a11y-check configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11y-check/internal/logging"
	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/rules"
)

// ServeConfig configures the MCP server.
type ServeConfig struct {
	// Transport is stdio or streamable-http
	Transport string `yaml:"transport"`

	// Port is the HTTP port for streamable-http
	Port int `yaml:"port"`

	// CacheTTL is how long element trees are cached between tool calls (0 disables)
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// Config represents a11y-check configuration options
type Config struct {
	// Format is the default output format (yaml, json, sarif, summary)
	Format string `yaml:"format"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Workers is the number of elements evaluated concurrently
	Workers int `yaml:"workers"`

	// MaxDepth bounds the tree walk (0 = engine default)
	MaxDepth int `yaml:"max_depth"`

	// Rules restricts scans to these rule IDs (empty = all)
	Rules []string `yaml:"rules"`

	// ReportsDir is where saved scan reports live
	ReportsDir string `yaml:"reports_dir"`

	// KeepReports is the age after which saved reports are cleaned up (0 = keep forever)
	KeepReports time.Duration `yaml:"keep_reports"`

	// RecorderPath is the recording configuration document
	RecorderPath string `yaml:"recorder_path"`

	Serve ServeConfig `yaml:"serve"`
}

// DefaultConfig returns a Config with default values rooted at home.
func DefaultConfig(home string) *Config {
	return &Config{
		Format:       string(output.FormatYAML),
		LogLevel:     logging.DefaultLevel,
		Workers:      4,
		ReportsDir:   filepath.Join(home, "reports"),
		KeepReports:  30 * 24 * time.Hour,
		RecorderPath: filepath.Join(home, "recorder.json"),
		Serve: ServeConfig{
			Transport: "stdio",
			Port:      8080,
			CacheTTL:  500 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from path, on top of DefaultConfig for the
// directory holding it. A missing file yields the defaults; a malformed one
// is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.KeepReports < 0 {
		return fmt.Errorf("keep_reports must be >= 0, got %v", c.KeepReports)
	}
	for _, id := range c.Rules {
		if !rules.ID(id).Known() {
			return fmt.Errorf("%w: %s", rules.ErrUnknownRule, id)
		}
	}
	switch c.Serve.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("invalid serve.transport %q, must be stdio or streamable-http", c.Serve.Transport)
	}
	if c.Serve.CacheTTL < 0 {
		return fmt.Errorf("serve.cache_ttl must be >= 0, got %v", c.Serve.CacheTTL)
	}
	return nil
}

// RuleIDs returns Rules as rule identifiers.
func (c *Config) RuleIDs() []rules.ID {
	ids := make([]rules.ID, len(c.Rules))
	for i, id := range c.Rules {
		ids[i] = rules.ID(id)
	}
	return ids
}
