// SPDX-License-Identifier: MPL-2.0

// Package resolve implements version selection and transitive dependency
// resolution over the registry's dependency graph.
//
// Resolution is driven by an explicit worklist rather than recursion, with a
// deduplicating, insertion-ordered set (Resolution) that bounds the traversal
// to the number of distinct projects regardless of cycles. Per-dependency
// failures (missing project, no compatible version) are logged and absorbed;
// they never fail the traversal as a whole.
package resolve
