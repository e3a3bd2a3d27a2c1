// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"modget-cli/internal/registry"

	"golang.org/x/exp/slices"
)

func TestSupportedGameVersions(t *testing.T) {
	t.Parallel()

	versions := []registry.Version{
		{GameVersions: []string{"1.20.1", "1.20.4"}},
		{GameVersions: []string{"1.21", "1.20.1"}},
		{GameVersions: []string{"1.19.2"}},
	}

	got := supportedGameVersions(versions)
	want := []string{"1.21", "1.20.4", "1.20.1", "1.19.2"}
	if !slices.Equal(got, want) {
		t.Errorf("supportedGameVersions() = %v, want %v", got, want)
	}
}

func TestSupportedGameVersions_NonSemverSortsLast(t *testing.T) {
	t.Parallel()

	versions := []registry.Version{
		{GameVersions: []string{"23w31a", "1.20.1"}},
	}

	got := supportedGameVersions(versions)
	want := []string{"1.20.1", "23w31a"}
	if !slices.Equal(got, want) {
		t.Errorf("supportedGameVersions() = %v, want %v", got, want)
	}
}

func TestFormatDownloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{42, "42"},
		{847_000, "847K"},
		{12_300_000, "12.3M"},
	}
	for _, tt := range tests {
		if got := formatDownloads(tt.n); got != tt.want {
			t.Errorf("formatDownloads(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
