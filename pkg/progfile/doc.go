// SPDX-License-Identifier: MPL-2.0

// Package progfile reads, writes and converts prog config documents.
//
// A config document is a file named prog.yml, prog.json, prog.toml or prog.cue that maps
// alias keys to a command string, a list of command strings, or a nested mapping of
// further aliases. Whatever the markup dialect, the document decodes into the same
// ordered Document model: key order is preserved exactly as written because later
// aliases shadow earlier ones of the same name.
//
// The package also carries the built-in templates used by `prog --generate` and the
// conversion between markup dialects used by `prog --convert`.
package progfile
