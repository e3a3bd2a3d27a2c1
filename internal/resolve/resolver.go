// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"
	"os"

	"modget-cli/internal/registry"

	"github.com/charmbracelet/log"
)

type (
	// MetadataClient is the registry surface the resolver needs: project
	// metadata and version listings. *registry.Client satisfies it.
	MetadataClient interface {
		Project(ctx context.Context, id string) (*registry.Project, error)
		Versions(ctx context.Context, slug string) ([]registry.Version, error)
	}

	// Resolver walks the required-dependency graph reachable from a root
	// version and produces a deduplicated Resolution.
	Resolver struct {
		client MetadataClient
		logger *log.Logger
	}

	// ResolverOption configures a Resolver during construction.
	ResolverOption func(*Resolver)
)

// WithLogger overrides the resolver's logger.
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver backed by the given metadata client.
func NewResolver(client MetadataClient, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client: client,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "resolve"}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve traverses the dependency graph reachable from root via required
// dependency declarations and returns the resolved set. The root project
// itself is never inserted; root.ProjectID identifies it so a cycle back to
// the root is skipped like any other already-seen project.
//
// Failures scoped to a single dependency — project fetch errors, version
// list errors, an empty compatible set — are logged and skipped. The only
// error Resolve returns is context cancellation.
func (r *Resolver) Resolve(ctx context.Context, root registry.Version, c Constraint) (*Resolution, error) {
	res := NewResolution()

	// Worklist of versions whose dependency declarations still need
	// expanding. Entries are appended after their project is inserted into
	// the resolution set, so the dedup check bounds the traversal even on
	// cyclic graphs.
	worklist := []registry.Version{root}

	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := worklist[0]
		worklist = worklist[1:]

		for _, dep := range current.Dependencies {
			if !dep.RequiresInstall() {
				continue
			}
			if dep.ProjectID == "" || dep.ProjectID == root.ProjectID {
				continue
			}
			if res.Has(dep.ProjectID) {
				continue
			}

			entry, ok := r.resolveDependency(ctx, dep, c)
			if !ok {
				continue
			}

			// Insert before queueing the expansion so a concurrent or cyclic
			// rediscovery of this project is a no-op.
			if !res.Insert(dep.ProjectID, entry) {
				continue
			}
			worklist = append(worklist, entry.Version)
		}
	}

	return res, nil
}

// resolveDependency fetches metadata for one dependency and selects its
// version. A false return means the dependency was skipped.
func (r *Resolver) resolveDependency(ctx context.Context, dep registry.Dependency, c Constraint) (Entry, bool) {
	project, err := r.client.Project(ctx, dep.ProjectID)
	if err != nil {
		r.logger.Warn("skipping dependency: project fetch failed",
			"project", dep.ProjectID, "err", err)
		return Entry{}, false
	}

	r.logger.Info("found dependency", "title", project.Title, "slug", project.Slug)

	versions, err := r.client.Versions(ctx, project.Slug)
	if err != nil {
		r.logger.Warn("skipping dependency: version list failed",
			"slug", project.Slug, "err", err)
		return Entry{}, false
	}

	compatible := SelectCompatible(versions, c)
	if len(compatible) == 0 {
		r.logger.Warn("skipping dependency: no compatible version",
			"slug", project.Slug, "constraint", c.String())
		return Entry{}, false
	}

	selected := PickVersion(compatible, dep.VersionID)
	if dep.VersionID != "" && selected.ID != dep.VersionID {
		// Distinguish the two fallback shapes: the pin exists upstream but
		// is incompatible with the constraint, or it never existed at all.
		if versionListContains(versions, dep.VersionID) {
			r.logger.Warn("pinned version incompatible, using latest compatible",
				"slug", project.Slug, "pinned", dep.VersionID, "selected", selected.VersionNumber)
		} else {
			r.logger.Warn("pinned version not found, using latest compatible",
				"slug", project.Slug, "pinned", dep.VersionID, "selected", selected.VersionNumber)
		}
	}

	return Entry{Project: *project, Version: selected}, true
}

func versionListContains(versions []registry.Version, id string) bool {
	for _, v := range versions {
		if v.ID == id {
			return true
		}
	}
	return false
}
