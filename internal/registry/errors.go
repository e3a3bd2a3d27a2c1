// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrProjectNotFound is returned when a project id or slug does not exist
// on the registry.
var ErrProjectNotFound = errors.New("project not found")

// APIError describes a failed registry interaction: a transport failure,
// an unexpected HTTP status, or a malformed payload. Callers treat it as
// a soft failure — the lookup that produced it is skipped or the install
// is aborted depending on whether it concerned the root project.
type APIError struct {
	// Op is the operation that failed (e.g., "get project", "list versions").
	Op string
	// Status is the HTTP status code, or 0 for transport/decode failures.
	Status int
	// URL is the request URL with query and fragment stripped.
	URL string
	// Cause is the underlying error, nil when Status alone explains the failure.
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s: %s: unexpected status %d", e.Op, e.URL, e.Status)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error { return e.Cause }

// redactURL strips query parameters and fragments from a URL for safe
// inclusion in error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
