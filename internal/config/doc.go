// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/modget/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/modget/config.cue on macOS, %APPDATA%\modget\config.cue
// on Windows), falling back to a config.cue in the current directory. Values cover the
// default compatibility target (loader, game version), the download directory, the
// optional API key, and download/HTTP tuning.
//
// Configuration files are validated against a CUE schema (config_schema.cue) so invalid
// values produce clear, path-qualified error messages.
package config
