// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared helpers for CUE parsing and validation:
// error formatting with JSON-path context and file size limits.
package cueutil
