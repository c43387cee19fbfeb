// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"os/exec"
)

// NativeRuntime runs a command's program directly, without a shell.
type NativeRuntime struct {
	// TTY attaches the program to a pseudo-terminal and copies the terminal
	// output to Stdout. Stdin is not forwarded in this mode.
	TTY bool
}

// NewNativeRuntime creates a new native runtime.
func NewNativeRuntime(tty bool) *NativeRuntime {
	return &NativeRuntime{TTY: tty}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return string(RuntimeTypeNative)
}

// Available returns whether this runtime is available. Programs are looked up
// per command, so the runtime itself is always available.
func (r *NativeRuntime) Available() bool {
	return true
}

// Validate checks that the command names a program found on PATH.
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	fields := ctx.Fields()
	if len(fields) == 0 {
		return ErrEmptyCommand
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("program %q: %w", fields[0], err)
	}
	return nil
}

// Execute runs the command, streaming its output to the context's writers.
// The tail of standard error is kept on the result when the command fails;
// a pseudo-terminal merges both streams, so nothing is kept in TTY mode.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	cmd, err := r.prepare(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	if r.TTY {
		return r.finish(ctx, exitResult(runWithPty(cmd, ctx.Stdout)))
	}

	stderr, tail := teeStderr(ctx.Stderr)
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = stderr
	return attachErrOutput(r.finish(ctx, exitResult(cmd.Run())), tail)
}

func (r *NativeRuntime) prepare(ctx *ExecutionContext) (*exec.Cmd, error) {
	fields := ctx.Fields()
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}

	program, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("failed to execute command: %w", err)
	}

	cmd := exec.CommandContext(ctx.context(), program, fields[1:]...)
	if ctx.WorkDir != "" {
		cmd.Dir = ctx.WorkDir
	}
	cmd.Env = append(os.Environ(), EnvToSlice(ctx.Env)...)
	return cmd, nil
}

// finish attributes the result to its command and reports cancellation
// instead of the exit status of a killed process.
func (r *NativeRuntime) finish(ctx *ExecutionContext, result *Result) *Result {
	result.Command = ctx.Command
	if err := ctx.context().Err(); err != nil && !result.Success() {
		result.ExitCode = 1
		result.Error = err
	}
	return result
}
