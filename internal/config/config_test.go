// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Note: tests in this file mutate package-level overrides, so they must not
// run in parallel with each other.

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	restore := SetConfigDirOverride(t.TempDir())
	defer restore()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config file path, got %q", path)
	}

	want := DefaultConfig()
	if cfg.Loader != want.Loader || cfg.GameVersion != want.GameVersion || cfg.DownloadDir != want.DownloadDir {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Downloads.Concurrency != want.Downloads.Concurrency {
		t.Errorf("expected default concurrency %d, got %d", want.Downloads.Concurrency, cfg.Downloads.Concurrency)
	}
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
loader:       "fabric"
game_version: "1.21"
downloads: concurrency: 8
`)
	restore := SetConfigDirOverride(dir)
	defer restore()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == "" {
		t.Error("expected resolved config path")
	}
	if cfg.Loader != "fabric" || cfg.GameVersion != "1.21" {
		t.Errorf("config file values not applied: %+v", cfg)
	}
	if cfg.Downloads.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.Downloads.Concurrency)
	}
	// Untouched keys keep their defaults.
	if cfg.DownloadDir != "mods" {
		t.Errorf("expected default download_dir, got %q", cfg.DownloadDir)
	}
}

func TestLoad_SchemaRejectsWrongType(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `downloads: concurrency: "many"`)
	restore := SetConfigDirOverride(dir)
	defer restore()

	_, _, err := Load()
	if err == nil {
		t.Fatal("expected schema validation error")
	}
	if !strings.Contains(err.Error(), "concurrency") {
		t.Errorf("error should name the offending path, got %v", err)
	}
}

func TestLoad_SchemaRejectsOutOfRangeConcurrency(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `downloads: concurrency: 500`)
	restore := SetConfigDirOverride(dir)
	defer restore()

	if _, _, err := Load(); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestLoad_ExplicitOverridePathMustExist(t *testing.T) {
	restore := SetConfigDirOverride(t.TempDir())
	defer restore()
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	defer SetConfigFilePathOverride("")

	if _, _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	restore := SetConfigDirOverride(t.TempDir())
	defer restore()
	t.Setenv("MODGET_API_KEY", "token-from-env")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "token-from-env" {
		t.Errorf("expected api key from environment, got %q", cfg.APIKey)
	}
}

func TestValidate_Ranges(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Downloads.Concurrency = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero concurrency")
	}

	cfg = DefaultConfig()
	cfg.HTTP.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}

	cfg = DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}
