package config

import (
	"github.com/cockroachdb/errors"
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Version < 1 {
		return errors.Newf("unsupported config version %d", c.Version)
	}
	if c.StorePath == "" {
		return errors.New("store_path must not be empty")
	}
	if c.Scan.MaxDepth < 0 {
		return errors.Newf("scan.max_depth must not be negative, got %d", c.Scan.MaxDepth)
	}
	if c.Scan.Timeout < 0 {
		return errors.Newf("scan.timeout must not be negative, got %s", c.Scan.Timeout)
	}
	return nil
}
