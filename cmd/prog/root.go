// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"prog-cli/internal/config"
	"prog-cli/internal/runtime"
	"prog-cli/pkg/progfile"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootOptions holds the root command's flag values.
	rootOptions struct {
		path         string
		format       progfile.Format
		template     progfile.Template
		generate     bool
		force        bool
		convert      bool
		script       string
		verbosity    int
		dryRun       bool
		list         bool
		runtime      runtime.RuntimeType
		tty          bool
		envFiles     []string
		settingsPath string
	}

	// session is the state shared by one root command run.
	session struct {
		app    *App
		opts   *rootOptions
		cfg    *config.Config
		logger *log.Logger
	}
)

// newRootCommand creates the prog root command and its subcommands.
func newRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "prog [flags] ['TARGET'...]",
		Short: "Run project commands through short aliases",
		Long: TitleStyle.Render("prog") + SubtitleStyle.Render(" - run project commands through short aliases") + `

Aliases are defined in a prog.yml, prog.json, prog.toml or prog.cue file
as a command, a list of commands, or a nested map of aliases. Function
aliases are written name(N) and receive arguments through $1, $2, ...

` + SubtitleStyle.Render("Invocations:") + `
  build                  run the 'build' alias
  run(5, fast)           call a function alias with arguments
  configure.release      run 'release' inside the 'configure' map
  configure{debug,test}  run several aliases of one map
  push[0,2]              run selected commands of a list alias

Several targets run in order; a target may hold several invocations
separated by ';'. Quote every target that contains spaces or shell
characters, as in prog 'run(5, fast)' or prog "push[0,2]; build": the
shell splits unquoted words into separate targets.`,
		Example: `  prog build
  prog "configure.release; build" test
  prog 'run(5, fast)'
  prog --generate --template go --format toml
  prog --dry-run push[0,2]`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, app, opts, args)
		},
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVarP(&opts.path, "path", "p", ".", "directory holding the prog config")
	flags.VarP(&opts.format, "format", "f", "config format: yaml, json, toml or cue")
	flags.VarP(&opts.template, "template", "t", "template for --generate: "+joinTemplates())
	flags.BoolVarP(&opts.generate, "generate", "g", false, "write a new config from a template")
	flags.BoolVar(&opts.force, "force", false, "let --generate overwrite an existing config")
	flags.BoolVarP(&opts.convert, "convert", "c", false, "rewrite the config in another format")
	flags.StringVarP(&opts.script, "script", "s", "", "run the invocations of a script file")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "log commands as they run (-vv for debug output)")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the resolved commands without running them")
	flags.BoolVarP(&opts.list, "list", "l", false, "print the alias tree")
	flags.VarP(&opts.runtime, "runtime", "r", "runtime: native or virtual")
	flags.BoolVar(&opts.tty, "tty", false, "attach native commands to a pseudo-terminal")
	flags.StringArrayVarP(&opts.envFiles, "env-file", "e", nil, "load environment variables from a dotenv file, relative to --path (suffix '?' if optional)")
	rootCmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "settings file (default is $XDG_CONFIG_HOME/prog/config.cue)")

	rootCmd.MarkFlagsMutuallyExclusive("generate", "convert")

	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("template", cobra.FixedCompletions(templateNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("runtime", cobra.FixedCompletions([]string{"native", "virtual"}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.ValidArgsFunction = func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return completeTargets(opts.path), cobra.ShellCompDirectiveNoFileComp
	}

	rootCmd.AddCommand(newEditCommand(app, opts))
	rootCmd.AddCommand(newSettingsCommand(app, opts))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the root command and runs it through fang. It is called by
// main.main and exits the process with the plan's exit code on failure.
func Execute() {
	app := NewApp(Dependencies{})

	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// loadSettings loads the user settings. A broken default settings file is
// reported and replaced by the defaults; an explicit --settings file must load.
func loadSettings(ctx context.Context, app *App, opts *rootOptions) (*config.Config, error) {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.settingsPath})
	if err == nil {
		return cfg, nil
	}
	if opts.settingsPath != "" {
		return nil, err
	}

	fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, opts.verbosity > 0))
	return config.DefaultConfig(), nil
}

// newSession loads settings and builds the logger for one run.
func newSession(ctx context.Context, app *App, opts *rootOptions) (*session, error) {
	cfg, err := loadSettings(ctx, app, opts)
	if err != nil {
		return nil, err
	}

	verbosity := opts.verbosity
	if verbosity == 0 && cfg.UI.Verbose {
		verbosity = 1
	}
	logger := newLogger(app.stderr, verbosity)
	logger.Debug("settings loaded", "runtime", cfg.DefaultRuntime, "format", cfg.DefaultFormat)

	return &session{app: app, opts: opts, cfg: cfg, logger: logger}, nil
}

func formatNames() []string {
	names := make([]string, 0, len(progfile.Formats()))
	for _, f := range progfile.Formats() {
		names = append(names, string(f))
	}
	return names
}

func templateNames() []string {
	names := make([]string, 0, len(progfile.Templates()))
	for _, t := range progfile.Templates() {
		names = append(names, string(t))
	}
	return names
}

func joinTemplates() string {
	return strings.Join(templateNames(), ", ")
}
