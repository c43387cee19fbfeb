// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"prog-cli/internal/config"
	"prog-cli/internal/issue"
	"prog-cli/pkg/progfile"

	"github.com/spf13/cobra"
)

// ErrNoEditor is returned by `prog edit` when no editor is configured.
var ErrNoEditor = errors.New("no editor configured")

// newEditCommand creates the `prog edit` command.
func newEditCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the prog config in an editor",
		Long: `Open the prog config of the --path directory in an editor.

The editor is the 'editor' setting, then $VISUAL, then $EDITOR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd.Context(), app, opts)
			if err != nil {
				return app.fail(err)
			}

			// Find only: a config that fails to decode can still be edited.
			path, _, err := progfile.Find(opts.path)
			if err != nil {
				return app.fail(issue.NewErrorContext().
					WithOperation("find prog config").
					WithResource(opts.path).
					WithIssue(issue.ConfigNotFoundId).
					Wrap(err).
					BuildError())
			}

			return openEditor(cmd, app, cfg, path)
		},
	}
}

// editorCommand returns the editor command line: the editor setting, then
// $VISUAL, then $EDITOR.
func editorCommand(cfg *config.Config) (string, error) {
	for _, candidate := range []string{cfg.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: set 'editor' in the settings or $EDITOR", ErrNoEditor)
}

func openEditor(cmd *cobra.Command, app *App, cfg *config.Config, path string) error {
	editor, err := editorCommand(cfg)
	if err != nil {
		return err
	}

	fields := strings.Fields(editor)
	c := exec.CommandContext(cmd.Context(), fields[0], append(fields[1:], path)...)
	c.Stdin = app.stdin
	c.Stdout = app.stdout
	c.Stderr = app.stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", fields[0], err)
	}
	return nil
}
