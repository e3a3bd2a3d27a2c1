// SPDX-License-Identifier: MPL-2.0

// Package registry implements the HTTP client for the Modrinth v2 API.
// It covers the read operations modget needs (project lookup, version
// listing, search) plus streaming file downloads.
//
// The package is organized into three concerns:
//   - client.go: the Client type, request plumbing, and API operations
//   - types.go: wire types mirroring the Modrinth v2 JSON schema
//   - errors.go: the APIError type and not-found sentinel
package registry
