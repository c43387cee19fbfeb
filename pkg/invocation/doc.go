// SPDX-License-Identifier: MPL-2.0

// Package invocation parses the target mini-language into Invocation trees.
//
// A target is one or more statements separated by ';' or newlines. Each statement
// names an alias and takes one of five forms:
//
//	build              declarative
//	run(main, -v)      imperative, arguments substituted into $N placeholders
//	build{debug,test}  scoped, every sub-statement resolved inside a group
//	push[0,2]          indexical, selected members of a list alias
//	build.release      selective, a single statement resolved inside a group
//
// Parsing is purely syntactic; whether the named aliases exist, and whether their
// values suit the chosen form, is decided later by package resolve.
package invocation
