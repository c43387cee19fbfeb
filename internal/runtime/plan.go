// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
)

type (
	// PlanOptions configures RunPlan. Nil streams default to the process's
	// standard streams.
	PlanOptions struct {
		WorkDir string
		Env     map[string]string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		// BeforeCommand, if set, is called before each command is validated
		// and run. index is the command's position in the plan.
		BeforeCommand func(index int, command string)
	}

	// PlanResult summarizes a plan execution.
	PlanResult struct {
		// Executed is the number of commands that were started.
		Executed int
		// Failed is the result of the command that stopped the plan, or nil
		// when every command succeeded.
		Failed *Result
	}
)

// Success returns true if every command of the plan succeeded.
func (p *PlanResult) Success() bool {
	return p.Failed == nil
}

// ExitCode returns the exit code the whole plan should report: 0 on success,
// the failing command's code when it ran and exited non-zero, and 1 when it
// could not be run at all.
func (p *PlanResult) ExitCode() ExitCode {
	switch {
	case p.Failed == nil:
		return 0
	case p.Failed.Error != nil || p.Failed.ExitCode == 0:
		return 1
	default:
		return p.Failed.ExitCode
	}
}

// RunPlan executes the commands of plan one after another with rt and stops
// at the first command that fails validation, cannot be started or exits
// non-zero. Commands after the failing one are not run.
func RunPlan(ctx context.Context, rt Runtime, plan []string, opts PlanOptions) *PlanResult {
	result := &PlanResult{}

	for i, command := range plan {
		if err := ctx.Err(); err != nil {
			result.Failed = &Result{Command: command, ExitCode: 1, Error: err}
			return result
		}

		if opts.BeforeCommand != nil {
			opts.BeforeCommand(i, command)
		}

		ectx := NewExecutionContext(ctx, command)
		ectx.WorkDir = opts.WorkDir
		for k, v := range opts.Env {
			ectx.Env[k] = v
		}
		if opts.Stdin != nil {
			ectx.Stdin = opts.Stdin
		}
		if opts.Stdout != nil {
			ectx.Stdout = opts.Stdout
		}
		if opts.Stderr != nil {
			ectx.Stderr = opts.Stderr
		}

		if err := rt.Validate(ectx); err != nil {
			result.Failed = &Result{Command: command, ExitCode: 1, Error: err}
			return result
		}

		result.Executed++
		res := rt.Execute(ectx)
		res.Command = command
		if !res.Success() {
			result.Failed = res
			return result
		}
	}
	return result
}
