// SPDX-License-Identifier: MPL-2.0

// Package resolve turns parsed invocations into concrete command strings by
// walking them against an alias dictionary.
//
// Resolution is pure: the dictionary is never modified and every returned
// slice is freshly allocated. A failing invocation aborts the whole batch and
// no partial result is returned.
package resolve
