// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"prog-cli/internal/config"

	"github.com/spf13/cobra"
)

// newSettingsCommand creates the `prog settings` command tree.
func newSettingsCommand(app *App, opts *rootOptions) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage prog settings",
		Long: `Manage prog settings.

Settings are stored in:
  - Linux: ~/.config/prog/config.cue
  - macOS: ~/Library/Application Support/prog/config.cue
  - Windows: %APPDATA%\prog\config.cue

Every setting can be overridden with a PROG_* environment variable,
e.g. PROG_DEFAULT_RUNTIME=virtual or PROG_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, app, opts)
		},
	})

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initSettings(app)
		},
	})

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective settings as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: opts.settingsPath})
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return settingsCmd
}

func showSettings(cmd *cobra.Command, app *App, opts *rootOptions) error {
	loadOpts := config.LoadOptions{ConfigFilePath: opts.settingsPath}
	cfg, err := app.Config.Load(cmd.Context(), loadOpts)
	if err != nil {
		return app.fail(err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Settings"))
	fmt.Fprintln(w)

	cfgPath, pathErr := config.ConfigPath(loadOpts)
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Settings file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Settings file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("default_format"), valueStyle.Render(string(cfg.DefaultFormat)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("default_template"), valueStyle.Render(string(cfg.DefaultTemplate)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("default_runtime"), valueStyle.Render(string(cfg.DefaultRuntime)))
	if cfg.Editor != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("editor"), valueStyle.Render(cfg.Editor))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("editor"), SubtitleStyle.Render("($VISUAL or $EDITOR)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  tty: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.TTY)))

	return nil
}

func initSettings(app *App) error {
	path, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Settings already exist at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default settings at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
