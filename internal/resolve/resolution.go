// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"sync"

	"modget-cli/internal/registry"
)

type (
	// Entry is the chosen (project, version) pair for one resolved dependency.
	Entry struct {
		Project registry.Project
		Version registry.Version
	}

	// Resolution is the deduplicated set of resolved dependencies, keyed by
	// project id. Keys are the literal project_id strings from dependency
	// records: the registry accepts both slugs and internal ids as project
	// identifiers and this set does not canonicalize between them, so the
	// same logical project could in principle appear under both forms.
	//
	// Insertion order is preserved so that output and logs are deterministic.
	// Insert is safe for concurrent use; first writer wins.
	Resolution struct {
		mu    sync.Mutex
		order []string
		byID  map[string]Entry
	}
)

// NewResolution creates an empty Resolution.
func NewResolution() *Resolution {
	return &Resolution{
		byID: make(map[string]Entry),
	}
}

// Insert adds an entry under the given project id if absent. It reports
// whether the entry was inserted; false means another entry already owns
// the key and the call was a no-op.
func (r *Resolution) Insert(projectID string, e Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[projectID]; ok {
		return false
	}
	r.byID[projectID] = e
	r.order = append(r.order, projectID)
	return true
}

// Has reports whether the project id is already resolved.
func (r *Resolution) Has(projectID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[projectID]
	return ok
}

// Get returns the entry for a project id.
func (r *Resolution) Get(projectID string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[projectID]
	return e, ok
}

// Len returns the number of resolved dependencies.
func (r *Resolution) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ProjectIDs returns the resolved project ids in insertion (discovery) order.
func (r *Resolution) ProjectIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Entries returns the resolved entries in insertion (discovery) order.
func (r *Resolution) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.byID[id])
	}
	return entries
}
