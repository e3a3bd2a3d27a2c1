// SPDX-License-Identifier: MPL-2.0

package registry

// Dependency type values as defined by the Modrinth v2 API.
const (
	// DependencyRequired marks a dependency that must be installed.
	DependencyRequired = "required"
	// DependencyOptional marks a dependency the mod can run without.
	DependencyOptional = "optional"
	// DependencyIncompatible marks a mod that must not be installed alongside.
	DependencyIncompatible = "incompatible"
	// DependencyEmbedded marks a dependency already bundled into the mod file.
	DependencyEmbedded = "embedded"
)

type (
	// Project is the metadata for a single Modrinth project.
	Project struct {
		ID          string `json:"id"`
		Slug        string `json:"slug"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	// Version is one published version of a project, including the
	// dependency declarations and downloadable files attached to it.
	// The API returns versions newest-first; that ordering is load-bearing
	// for "latest compatible" selection.
	Version struct {
		ID            string       `json:"id"`
		ProjectID     string       `json:"project_id"`
		Name          string       `json:"name"`
		VersionNumber string       `json:"version_number"`
		GameVersions  []string     `json:"game_versions"`
		Loaders       []string     `json:"loaders"`
		DatePublished string       `json:"date_published"`
		Dependencies  []Dependency `json:"dependencies"`
		Files         []File       `json:"files"`
	}

	// Dependency is a single dependency declaration on a Version.
	// VersionID pins a specific version of the dependency and may be empty.
	Dependency struct {
		ProjectID      string `json:"project_id"`
		VersionID      string `json:"version_id"`
		FileName       string `json:"file_name"`
		DependencyType string `json:"dependency_type"`
	}

	// File is one downloadable artifact attached to a Version.
	File struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
		Primary  bool   `json:"primary"`
		Size     int64  `json:"size"`
	}

	// SearchHit is one project in a search result page.
	SearchHit struct {
		ProjectID   string `json:"project_id"`
		Slug        string `json:"slug"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Downloads   int64  `json:"downloads"`
	}

	// SearchResult is a page of search hits.
	SearchResult struct {
		Hits      []SearchHit `json:"hits"`
		TotalHits int         `json:"total_hits"`
	}
)

// RequiresInstall reports whether the dependency participates in resolution.
// Only "required" dependencies do; optional, incompatible, and embedded
// dependencies are ignored by the resolver.
func (d Dependency) RequiresInstall() bool {
	return d.DependencyType == DependencyRequired
}
