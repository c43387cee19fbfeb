// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"prog-cli/internal/issue"

	"github.com/charmbracelet/log"
)

// issueStyle is the glamour style used for help cards.
const issueStyle = "dark"

// renderError writes the help card of the catalogued issue behind err, if
// any. The error message itself is printed by the command runner; in verbose
// mode the cause chain is written here as well.
func renderError(stderr io.Writer, logger *log.Logger, err error, verbose bool) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}

	if entry := ae.CatalogIssue(); entry != nil {
		rendered, renderErr := entry.Render(issueStyle)
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", ae.Issue, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
	if verbose {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error details:"))
		fmt.Fprintln(stderr, VerboseStyle.Render(ae.Format(true)))
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
