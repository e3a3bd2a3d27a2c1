// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"slices"

	"modget-cli/internal/registry"
)

// Constraint is the loader / game-version pair a version must satisfy.
// An empty field matches everything.
type Constraint struct {
	Loader      string
	GameVersion string
}

// Matches reports whether the version is compatible with the constraint.
func (c Constraint) Matches(v registry.Version) bool {
	if c.Loader != "" && !slices.Contains(v.Loaders, c.Loader) {
		return false
	}
	if c.GameVersion != "" && !slices.Contains(v.GameVersions, c.GameVersion) {
		return false
	}
	return true
}

// String returns the constraint in "loader game-version" form for logs.
func (c Constraint) String() string {
	switch {
	case c.Loader == "" && c.GameVersion == "":
		return "any"
	case c.Loader == "":
		return c.GameVersion
	case c.GameVersion == "":
		return c.Loader
	default:
		return c.Loader + " " + c.GameVersion
	}
}

// SelectCompatible returns the subsequence of versions satisfying the
// constraint, preserving the input (newest-first) order. An empty result is
// a valid outcome meaning "no compatible version", not an error.
func SelectCompatible(versions []registry.Version, c Constraint) []registry.Version {
	var compatible []registry.Version
	for _, v := range versions {
		if c.Matches(v) {
			compatible = append(compatible, v)
		}
	}
	return compatible
}

// PickVersion chooses one version from a non-empty compatible set.
// When pinnedID names a version present in the set, that exact version is
// returned; otherwise the first (newest) entry wins. The fallback on an
// unmatched pin is deliberate leniency: a dependency pinned to a version
// that is missing or incompatible degrades to "latest compatible" instead
// of failing the install.
func PickVersion(compatible []registry.Version, pinnedID string) registry.Version {
	if pinnedID != "" {
		for _, v := range compatible {
			if v.ID == pinnedID {
				return v
			}
		}
	}
	return compatible[0]
}
