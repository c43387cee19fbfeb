// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	appexec "prog-cli/internal/app/execute"
	"prog-cli/internal/issue"
	"prog-cli/internal/runtime"
	"prog-cli/pkg/progfile"

	"github.com/spf13/cobra"
)

// runRoot handles the root command: generate or convert the config, list
// aliases, then plan and run the requested invocations.
func runRoot(cmd *cobra.Command, app *App, opts *rootOptions, args []string) error {
	if opts.script != "" && len(args) > 0 {
		return fmt.Errorf("--script cannot be combined with targets")
	}

	wantsRun := opts.script != "" || len(args) > 0
	if !opts.generate && !opts.convert && !opts.list && !wantsRun {
		return cmd.Help()
	}

	s, err := newSession(cmd.Context(), app, opts)
	if err != nil {
		return app.fail(err)
	}

	switch {
	case opts.generate:
		if err := s.generate(); err != nil {
			return s.fail(err)
		}
	case opts.convert:
		if err := s.convert(); err != nil {
			return s.fail(err)
		}
	}

	if !opts.list && !wantsRun {
		return nil
	}

	file, dict, err := appexec.LoadDictionary(opts.path)
	if err != nil {
		return s.fail(err)
	}
	s.logger.Debug("config loaded", "path", file.Path, "format", file.Format, "aliases", dict.Len())

	if opts.list {
		if err := renderAliasTree(app.stdout, filepath.Base(file.Path), dict); err != nil {
			return s.fail(err)
		}
		if !wantsRun {
			return nil
		}
	}

	plan, err := appexec.NewPlanner(dict).Plan(appexec.Request{
		Target:     strings.Join(args, "; "),
		ScriptPath: opts.script,
	})
	if err != nil {
		return s.fail(err)
	}

	if opts.dryRun {
		return s.fail(renderPlan(app.stdout, plan.Commands))
	}
	return s.run(cmd, plan.Commands)
}

// fail renders err for the user and wraps it in an ExitError.
func (s *session) fail(err error) error {
	if err == nil {
		return nil
	}
	renderError(s.app.stderr, s.logger, err, s.opts.verbosity > 0)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 1, Err: err}
}

func (s *session) generate() error {
	format := s.opts.format
	if format == "" {
		format = s.cfg.DefaultFormat
	}
	template := s.opts.template
	if template == "" {
		template = s.cfg.DefaultTemplate
	}

	path, err := progfile.Generate(s.opts.path, format, template, s.opts.force)
	if err != nil {
		ctx := issue.NewErrorContext().WithOperation("generate prog config").WithResource(s.opts.path).Wrap(err)
		if errors.Is(err, progfile.ErrFileExists) {
			ctx.WithIssue(issue.ConfigExistsId)
		}
		return ctx.BuildError()
	}

	fmt.Fprintf(s.app.stdout, "%s Created %s from the %s template\n", SuccessStyle.Render("✓"), path, CmdStyle.Render(string(template)))
	return nil
}

func (s *session) convert() error {
	format := s.opts.format
	if format == "" {
		format = s.cfg.DefaultFormat
	}

	path, err := progfile.Convert(s.opts.path, format)
	if err != nil {
		ctx := issue.NewErrorContext().WithOperation("convert prog config").WithResource(s.opts.path).Wrap(err)
		switch {
		case errors.Is(err, progfile.ErrConfigNotFound):
			ctx.WithIssue(issue.ConfigNotFoundId)
		case errors.Is(err, progfile.ErrInvalidValue):
			ctx.WithIssue(issue.ConfigParseErrorId)
		}
		return ctx.BuildError()
	}

	fmt.Fprintf(s.app.stdout, "%s Converted config to %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// run executes commands one after another and stops at the first failure.
func (s *session) run(cmd *cobra.Command, commands []string) error {
	reg := s.app.Runtimes(runtime.BuildRegistryOptions{TTY: s.opts.tty || s.cfg.UI.TTY})
	rt, err := appexec.SelectRuntime(reg, s.opts.runtime, s.cfg)
	if err != nil {
		return s.fail(err)
	}
	s.logger.Debug("runtime selected", "runtime", rt.Name(), "commands", len(commands))

	env := make(map[string]string)
	for _, f := range s.opts.envFiles {
		if err := runtime.LoadEnvFile(env, f, s.opts.path); err != nil {
			return s.fail(issue.NewErrorContext().
				WithOperation("load env file").
				WithResource(f).
				WithSuggestion("Env files are read relative to the --path directory; suffix the path with '?' to make it optional").
				Wrap(err).
				BuildError())
		}
	}

	result := runtime.RunPlan(cmd.Context(), rt, commands, runtime.PlanOptions{
		WorkDir: s.opts.path,
		Env:     env,
		Stdin:   s.app.stdin,
		Stdout:  s.app.stdout,
		Stderr:  s.app.stderr,
		BeforeCommand: func(index int, command string) {
			s.logger.Info("running", "step", fmt.Sprintf("%d/%d", index+1, len(commands)), "command", command)
		},
	})
	if result.Success() {
		return nil
	}

	failed := result.Failed
	cause := failed.Error
	if cause == nil {
		cause = fmt.Errorf("exit status %d", failed.ExitCode)
		if line := failed.LastErrLine(); line != "" {
			cause = fmt.Errorf("exit status %d: %s", failed.ExitCode, line)
		}
	}
	err = issue.NewErrorContext().
		WithOperation("run command").
		WithResource(failed.Command).
		WithIssue(issue.CommandFailedId).
		Wrap(cause).
		BuildError()
	return s.fail(&ExitError{Code: result.ExitCode(), Err: err})
}
