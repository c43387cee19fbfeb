// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the prog command line: the root command that parses
// and runs invocations, config generation and conversion, alias listing,
// and the edit, settings and completion subcommands.
package cmd
