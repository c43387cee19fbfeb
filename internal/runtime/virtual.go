// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes commands using the mvdan/sh interpreter.
//
// One interpreter is created on the first Execute and reused for every later
// command, so shell state such as the working directory changed by cd carries
// over between the commands of a plan. Create a new VirtualRuntime per plan.
// The working directory and environment of the first ExecutionContext seed
// the interpreter; later contexts only contribute their streams.
type VirtualRuntime struct {
	runner *interp.Runner
}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Available returns whether this runtime is available.
func (r *VirtualRuntime) Available() bool {
	// Virtual runtime is always available as it's built-in
	return true
}

// Validate checks that the command can be turned into a shell statement.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	_, err := r.parse(ctx)
	return err
}

// Execute runs the command in the shared interpreter. The tail of standard
// error is kept on the result when the command fails.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	prog, err := r.parse(ctx)
	if err != nil {
		return &Result{Command: ctx.Command, ExitCode: 1, Error: err}
	}

	runner, err := r.interpreter(ctx)
	if err != nil {
		return &Result{Command: ctx.Command, ExitCode: 1, Error: err}
	}
	stderr, tail := teeStderr(ctx.Stderr)
	if err := interp.StdIO(ctx.Stdin, ctx.Stdout, stderr)(runner); err != nil {
		return &Result{Command: ctx.Command, ExitCode: 1, Error: err}
	}

	result := &Result{Command: ctx.Command}
	if err := runner.Run(ctx.context(), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = ExitCode(exitStatus)
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("command execution failed: %w", err)
		}
	}
	return attachErrOutput(result, tail)
}

// parse turns the command into a shell statement of quoted words, so the
// interpreter sees exactly the words a native run would pass to the program.
func (r *VirtualRuntime) parse(ctx *ExecutionContext) (*syntax.File, error) {
	line, err := ShellQuote(ctx.Command)
	if err != nil {
		return nil, err
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "command")
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	return prog, nil
}

// ShellQuote returns command as a bash line whose words are the command's
// whitespace-separated fields, each quoted where needed.
func ShellQuote(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", ErrEmptyCommand
	}

	words := make([]string, len(fields))
	for i, f := range fields {
		q, err := syntax.Quote(f, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote %q: %w", f, err)
		}
		words[i] = q
	}
	return strings.Join(words, " "), nil
}

func (r *VirtualRuntime) interpreter(ctx *ExecutionContext) (*interp.Runner, error) {
	if r.runner != nil {
		return r.runner, nil
	}

	workDir := ctx.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = wd
	}

	env := append(os.Environ(), EnvToSlice(ctx.Env)...)
	runner, err := interp.New(
		interp.Dir(workDir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}
	r.runner = runner
	return runner, nil
}
