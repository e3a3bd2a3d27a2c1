// SPDX-License-Identifier: MPL-2.0

// Package manifest records what an install run materialized into the
// download directory. The manifest file lives next to the downloaded mods
// (like a lock file pairs with its source file) and is read back by the
// `modget list` command. It is purely a record of outcomes — resolution
// never consults it.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// FileName is the manifest file name inside the download directory.
	FileName = "modget.lock.toml"

	// formatVersion is bumped on breaking manifest schema changes.
	formatVersion = "1.0"
)

type (
	// Entry records one installed mod.
	Entry struct {
		ProjectID     string    `toml:"project_id"`
		Slug          string    `toml:"slug"`
		Title         string    `toml:"title"`
		VersionID     string    `toml:"version_id"`
		VersionNumber string    `toml:"version_number"`
		Filename      string    `toml:"filename"`
		InstalledAt   time.Time `toml:"installed_at"`
	}

	// Manifest is the on-disk record of installed mods, keyed by project id.
	Manifest struct {
		Version string           `toml:"version"`
		Mods    map[string]Entry `toml:"mods"`
	}
)

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{
		Version: formatVersion,
		Mods:    make(map[string]Entry),
	}
}

// Path returns the manifest location for a download directory.
func Path(downloadDir string) string {
	return filepath.Join(downloadDir, FileName)
}

// Load reads the manifest at path. A missing file yields an empty manifest,
// so first installs need no special casing.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Mods == nil {
		m.Mods = make(map[string]Entry)
	}
	return &m, nil
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Add records an installed mod, replacing any previous entry for the same
// project id.
func (m *Manifest) Add(e Entry) {
	m.Mods[e.ProjectID] = e
}

// Entries returns the recorded mods sorted by slug for stable output.
func (m *Manifest) Entries() []Entry {
	ids := maps.Keys(m.Mods)
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, m.Mods[id])
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.Slug < b.Slug:
			return -1
		case a.Slug > b.Slug:
			return 1
		default:
			return 0
		}
	})
	return entries
}
