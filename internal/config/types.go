// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConcurrency is returned when downloads.concurrency is out of range.
	ErrInvalidConcurrency = errors.New("invalid download concurrency")
	// ErrInvalidTimeout is returned when http.timeout_seconds is out of range.
	ErrInvalidTimeout = errors.New("invalid http timeout")
)

type (
	// Config is the application configuration. Values come from the config
	// file (if any), overridden by environment and CLI flags.
	Config struct {
		// Loader is the default mod loader to target.
		Loader string `mapstructure:"loader"`

		// GameVersion is the default game version to target.
		GameVersion string `mapstructure:"game_version"`

		// DownloadDir is where mod files are written.
		DownloadDir string `mapstructure:"download_dir"`

		// APIKey is the optional Modrinth API token. Also settable via
		// the MODGET_API_KEY environment variable.
		APIKey string `mapstructure:"api_key"`

		Downloads DownloadsConfig `mapstructure:"downloads"`
		HTTP      HTTPConfig      `mapstructure:"http"`
		UI        UIConfig        `mapstructure:"ui"`
	}

	// DownloadsConfig tunes file transfers.
	DownloadsConfig struct {
		// Concurrency bounds parallel dependency downloads.
		Concurrency int `mapstructure:"concurrency"`
	}

	// HTTPConfig tunes registry requests.
	HTTPConfig struct {
		// TimeoutSeconds bounds every registry request.
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables debug-level output.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults used when no config file or
// flag overrides a value.
func DefaultConfig() Config {
	return Config{
		Loader:      "forge",
		GameVersion: "1.20.1",
		DownloadDir: "mods",
		Downloads:   DownloadsConfig{Concurrency: 4},
		HTTP:        HTTPConfig{TimeoutSeconds: 30},
	}
}

// Validate checks value ranges the CUE schema also enforces; it guards
// values arriving from flags or the environment, which bypass the schema.
func (c *Config) Validate() error {
	if c.Downloads.Concurrency < 1 || c.Downloads.Concurrency > 32 {
		return fmt.Errorf("%w: %d (want 1-32)", ErrInvalidConcurrency, c.Downloads.Concurrency)
	}
	if c.HTTP.TimeoutSeconds < 1 || c.HTTP.TimeoutSeconds > 600 {
		return fmt.Errorf("%w: %d (want 1-600 seconds)", ErrInvalidTimeout, c.HTTP.TimeoutSeconds)
	}
	return nil
}
