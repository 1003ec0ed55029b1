package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EHAB0O0/school-activity/internal/logging"
)

const (
	// DefaultRewriteFile is the component patched by fix-opacity-classes.
	DefaultRewriteFile = "src/components/Scheduler.jsx"
	// DefaultTruncateFile is the page cut by fix-settings.
	DefaultTruncateFile = "src/pages/SettingsPage.jsx"
	// DefaultTruncateBoundary is the number of lines fix-settings keeps.
	DefaultTruncateBoundary = 1002
)

// Config holds the configuration shared by both tools.
type Config struct {
	Rewrite  RewriteConfig  `yaml:"rewrite"`
	Truncate TruncateConfig `yaml:"truncate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RewriteConfig configures the class rewriter.
type RewriteConfig struct {
	File string `yaml:"file"`

	// Replaces the built-in opacity table when non-empty. Order matters
	// only among keys of equal length.
	Replacements []Replacement `yaml:"replacements,omitempty"`
}

// Replacement is one literal substitution.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// TruncateConfig configures the truncator.
type TruncateConfig struct {
	File     string `yaml:"file"`
	Boundary int    `yaml:"boundary"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Rewrite: RewriteConfig{
			File: DefaultRewriteFile,
		},
		Truncate: TruncateConfig{
			File:     DefaultTruncateFile,
			Boundary: DefaultTruncateBoundary,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the config location inside a workspace.
func DefaultConfigPath(workspace string) string {
	return filepath.Join(workspace, ".fixup", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logging.BootDebug("No config at %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FIXUP_REWRITE_FILE"); v != "" {
		c.Rewrite.File = v
	}
	if v := os.Getenv("FIXUP_TRUNCATE_FILE"); v != "" {
		c.Truncate.File = v
	}
	if v := os.Getenv("FIXUP_TRUNCATE_BOUNDARY"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			logging.BootWarn("Ignoring FIXUP_TRUNCATE_BOUNDARY=%q: %v", v, err)
		} else {
			c.Truncate.Boundary = n
		}
	}
	if v := os.Getenv("FIXUP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FIXUP_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if err := c.ValidateRewrite(); err != nil {
		return err
	}
	return c.ValidateTruncate()
}

// ValidateRewrite checks the rewrite section and logging only.
func (c *Config) ValidateRewrite() error {
	if strings.TrimSpace(c.Rewrite.File) == "" {
		return fmt.Errorf("rewrite.file must not be empty")
	}
	for i, r := range c.Rewrite.Replacements {
		if r.From == "" {
			return fmt.Errorf("rewrite.replacements[%d]: empty from", i)
		}
	}
	return c.Logging.validate()
}

// ValidateTruncate checks the truncate section and logging only.
func (c *Config) ValidateTruncate() error {
	if strings.TrimSpace(c.Truncate.File) == "" {
		return fmt.Errorf("truncate.file must not be empty")
	}
	if c.Truncate.Boundary < 0 {
		return fmt.Errorf("truncate.boundary must be >= 0, got %d", c.Truncate.Boundary)
	}
	return c.Logging.validate()
}
