// SPDX-License-Identifier: MPL-2.0

// Package progfiletest provides test helpers for building progfile documents
// and writing them to disk.
//
// This package is separate from testutil so that testutil stays free of
// project imports.
//
// # Usage
//
//	import "prog-cli/internal/testutil/progfiletest"
//
//	doc := progfiletest.NewDocument(
//	    progfiletest.WithCommand("build", "make all"),
//	    progfiletest.WithMap("configure",
//	        progfiletest.WithCommand("debug", "cmake -B build"),
//	    ),
//	)
//	path := progfiletest.WriteConfig(t, dir, progfile.FormatYAML, doc)
package progfiletest
