// SPDX-License-Identifier: MPL-2.0

// Package config handles prog's user settings using Viper with CUE as the file format.
//
// Settings are loaded from ~/.config/prog/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/prog/config.cue on macOS, %APPDATA%\prog\config.cue
// on Windows) and may be overridden with PROG_* environment variables, e.g.
// PROG_DEFAULT_RUNTIME=virtual or PROG_UI_VERBOSE=true.
//
// Settings files are validated against an embedded CUE schema (config_schema.cue)
// so type errors are reported with the path of the offending field.
package config
