// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsEmptyManifest(t *testing.T) {
	t.Parallel()

	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Mods) != 0 {
		t.Errorf("expected empty manifest, got %d entries", len(m.Mods))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)

	m := New()
	m.Add(Entry{
		ProjectID:     "AANobbMI",
		Slug:          "sodium",
		Title:         "Sodium",
		VersionID:     "v123",
		VersionNumber: "0.5.8",
		Filename:      "sodium-fabric-0.5.8.jar",
		InstalledAt:   time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	})
	if err := m.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	entry, ok := got.Mods["AANobbMI"]
	if !ok {
		t.Fatal("entry missing after round trip")
	}
	if entry.Slug != "sodium" || entry.VersionNumber != "0.5.8" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestAdd_ReplacesSameProject(t *testing.T) {
	t.Parallel()

	m := New()
	m.Add(Entry{ProjectID: "p", VersionNumber: "1.0.0"})
	m.Add(Entry{ProjectID: "p", VersionNumber: "2.0.0"})

	if len(m.Mods) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.Mods))
	}
	if m.Mods["p"].VersionNumber != "2.0.0" {
		t.Errorf("expected latest entry to win, got %q", m.Mods["p"].VersionNumber)
	}
}

func TestEntries_SortedBySlug(t *testing.T) {
	t.Parallel()

	m := New()
	m.Add(Entry{ProjectID: "1", Slug: "zeta"})
	m.Add(Entry{ProjectID: "2", Slug: "alpha"})
	m.Add(Entry{ProjectID: "3", Slug: "mid"})

	entries := m.Entries()
	want := []string{"alpha", "mid", "zeta"}
	for i, slug := range want {
		if entries[i].Slug != slug {
			t.Errorf("entries[%d]: got %q, want %q", i, entries[i].Slug, slug)
		}
	}
}
