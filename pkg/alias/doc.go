// SPDX-License-Identifier: MPL-2.0

// Package alias models the alias dictionary a prog config document describes.
//
// A Dictionary is an ordered list of aliases at one level. Each alias pairs a
// Key (a plain declaration, or a function declaring how many positional
// arguments it takes) with a Value: a single command, an ordered list of
// commands, or a nested Dictionary. Names need not be unique within a level;
// Lookup always returns the last alias with a matching name.
//
// Dictionaries are immutable once built by FromDocument and are safe to share.
package alias
