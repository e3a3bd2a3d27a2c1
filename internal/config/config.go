// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"modget-cli/internal/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "modget"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

var (
	// configFilePathOverride is set via the --config flag.
	configFilePathOverride string

	// configDirOverride allows tests to redirect the config directory.
	configDirOverride string
)

// SetConfigFilePathOverride points Load at an explicit config file.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// SetConfigDirOverride redirects the config directory, primarily for tests.
// It returns a restore function.
func SetConfigDirOverride(dir string) func() {
	prev := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = prev }
}

// ConfigDir returns the modget configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration: built-in defaults, then the config file
// (explicit override path, platform config dir, or current directory), then
// the MODGET_API_KEY environment variable. It returns the resolved config
// and the path of the file it was loaded from ("" when only defaults apply).
func Load() (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("loader", defaults.Loader)
	v.SetDefault("game_version", defaults.GameVersion)
	v.SetDefault("download_dir", defaults.DownloadDir)
	v.SetDefault("downloads.concurrency", defaults.Downloads.Concurrency)
	v.SetDefault("http.timeout_seconds", defaults.HTTP.TimeoutSeconds)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	if err := v.BindEnv("api_key", "MODGET_API_KEY"); err != nil {
		return nil, "", fmt.Errorf("failed to bind environment: %w", err)
	}

	resolvedPath := ""

	if configFilePathOverride != "" {
		// An explicit --config path is used exclusively; a missing file is
		// an error rather than a silent fallback.
		if !fileExists(configFilePathOverride) {
			return nil, "", fmt.Errorf("config file not found: %s", configFilePathOverride)
		}
		if err := loadCUEIntoViper(v, configFilePathOverride); err != nil {
			return nil, "", err
		}
		resolvedPath = configFilePathOverride
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		localCuePath := ConfigFileName + "." + ConfigFileExt
		switch {
		case fileExists(cuePath):
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", err
			}
			resolvedPath = cuePath
		case fileExists(localCuePath):
			if err := loadCUEIntoViper(v, localCuePath); err != nil {
				return nil, "", err
			}
			resolvedPath = localCuePath
		}
		// No config file found: defaults only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. The decode target is a
// map[string]any (not a struct) so Viper keeps flag/env precedence intact,
// and validation uses Concrete(false) because every config field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
