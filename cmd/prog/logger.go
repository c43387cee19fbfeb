// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. verbosity is the -v count: 0 logs
// warnings, 1 logs each command before it runs, 2 or more adds debug output.
func newLogger(w io.Writer, verbosity int) *log.Logger {
	level := log.WarnLevel
	switch {
	case verbosity >= 2:
		level = log.DebugLevel
	case verbosity == 1:
		level = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: "prog",
		Level:  level,
	})
}
