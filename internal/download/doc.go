// SPDX-License-Identifier: MPL-2.0

// Package download materializes resolved files into a local directory.
//
// Transfers stream to a temporary file in the destination directory and are
// renamed into place on success, so an interrupted or failed transfer never
// leaves a corrupt file under the final name. Batch downloads run on a
// bounded worker pool; each file's failure is recorded individually and
// never aborts its siblings.
package download
