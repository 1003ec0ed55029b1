package config

import (
	"fmt"
	"slices"

	"github.com/EHAB0O0/school-activity/internal/logging"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`          // debug, info, warn, error
	Format string `yaml:"format"`         // json, text
	File   string `yaml:"file,omitempty"` // empty = stderr
}

// ToLogging converts to the logging package's config.
func (c LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:  c.Level,
		Format: c.Format,
		File:   c.File,
	}
}

func (c LoggingConfig) validate() error {
	if c.Level != "" && !slices.Contains(ValidLogLevels, c.Level) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Level, ValidLogLevels)
	}
	return nil
}
