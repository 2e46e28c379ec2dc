// Package config provides configuration management for holster using Viper.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/holster/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "holster"

// Defaults for scan behavior.
const (
	// DefaultMaxDepth is how far scans descend below a root's immediate
	// subdirectories. The immediate subdirectories count as depth zero.
	DefaultMaxDepth = 2

	// DefaultScanTimeout bounds the wall-clock duration of a single scan call.
	DefaultScanTimeout = 30 * time.Second
)

// Config represents the top-level configuration structure.
type Config struct {
	Version   int        `mapstructure:"version" yaml:"version"`
	StorePath string     `mapstructure:"store_path" yaml:"store_path"`
	Scan      ScanConfig `mapstructure:"scan" yaml:"scan"`
}

// ScanConfig holds settings for directory discovery scans.
type ScanConfig struct {
	// MaxDepth is how far scans descend below a root's immediate
	// subdirectories, which count as depth zero.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// Timeout bounds a single scan call. Zero disables the deadline.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Locations overrides the default set of directories inspected by
	// discovery. Empty means the built-in well-known locations are used.
	Locations []string `mapstructure:"locations" yaml:"locations"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("HOLSTER")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("store_path", paths.DefaultStorePath())
	viper.SetDefault("scan.max_depth", DefaultMaxDepth)
	viper.SetDefault("scan.timeout", DefaultScanTimeout)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns the configuration holster ships with.
// Used by `holster init` to write a starter config file.
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		StorePath: paths.DefaultStorePath(),
		Scan: ScanConfig{
			MaxDepth: DefaultMaxDepth,
			Timeout:  DefaultScanTimeout,
		},
	}
}
