package config

import (
	"fmt"
	"strings"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// Validate checks value ranges. Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Resources.Dir) == "" {
		return invalid("resources.dir must be set")
	}
	if err := c.Classifier.validate(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if c.Dataset.Workers < 0 {
		return invalid("dataset.workers must be >= 0 (got %d)", c.Dataset.Workers)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return invalid("log.format must be text or json (got %q)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level %q is not a level", c.Log.Level)
	}
	if c.Redis.DB < 0 {
		return invalid("redis.db must be >= 0 (got %d)", c.Redis.DB)
	}
	return nil
}

func (c *ClassifierConfig) validate() error {
	if c.MaxEdits < 0 {
		return invalid("max_edits must be >= 0 (got %d)", c.MaxEdits)
	}
	if c.MaxDepth < 0 {
		return invalid("max_depth must be >= 0 (got %d)", c.MaxDepth)
	}
	if c.MinCorrectionLength < 1 {
		return invalid("min_correction_length must be >= 1 (got %d)", c.MinCorrectionLength)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
