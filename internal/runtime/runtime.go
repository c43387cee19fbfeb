// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// Runtime type constants for the supported execution environments.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"
)

var (
	// ErrInvalidRuntimeType is the sentinel error wrapped by InvalidRuntimeTypeError.
	ErrInvalidRuntimeType = errors.New("invalid runtime type")
	// ErrEmptyCommand is returned when a command string has no fields to run.
	ErrEmptyCommand = errors.New("empty command")
)

type (
	// ExecutionContext contains all information needed to execute one command.
	ExecutionContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Command is the command string, "program arg1 arg2 ...".
		Command string
		// WorkDir is the directory the command runs in; empty means the
		// current directory.
		WorkDir string
		// Env holds additional environment variables layered over the host
		// environment.
		Env map[string]string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runtime defines the interface for command execution.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Available returns whether this runtime is available on the current system.
		Available() bool
		// Validate checks if a command can be executed with this runtime.
		Validate(ctx *ExecutionContext) error
		// Execute runs a command in this runtime.
		Execute(ctx *ExecutionContext) *Result
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// InvalidRuntimeTypeError is returned when a RuntimeType value is not recognized.
	// It wraps ErrInvalidRuntimeType for errors.Is() compatibility.
	InvalidRuntimeTypeError struct {
		Value RuntimeType
	}

	// Registry holds all available runtimes.
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// NewExecutionContext creates an execution context for command using the
// process's standard streams.
func NewExecutionContext(ctx context.Context, command string) *ExecutionContext {
	return &ExecutionContext{
		Context: ctx,
		Command: command,
		Env:     make(map[string]string),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Fields splits the command into its program and arguments on runs of
// whitespace. No quoting is recognised.
func (c *ExecutionContext) Fields() []string {
	return strings.Fields(c.Command)
}

func (c *ExecutionContext) context() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// String implements fmt.Stringer and pflag.Value.
func (t RuntimeType) String() string { return string(t) }

// IsValid returns whether the RuntimeType is one of the defined runtimes,
// and a list of validation errors if it is not.
func (t RuntimeType) IsValid() (bool, []error) {
	switch t {
	case RuntimeTypeNative, RuntimeTypeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidRuntimeTypeError{Value: t}}
	}
}

// Set implements pflag.Value.
func (t *RuntimeType) Set(s string) error {
	v := RuntimeType(strings.ToLower(s))
	if ok, errs := v.IsValid(); !ok {
		return errs[0]
	}
	*t = v
	return nil
}

// Type implements pflag.Value.
func (t *RuntimeType) Type() string { return "runtime" }

// Error implements the error interface.
func (e *InvalidRuntimeTypeError) Error() string {
	return fmt.Sprintf("invalid runtime %q (valid: %s, %s)", e.Value, RuntimeTypeNative, RuntimeTypeVirtual)
}

// Unwrap returns ErrInvalidRuntimeType so callers can use errors.Is for programmatic detection.
func (e *InvalidRuntimeTypeError) Unwrap() error { return ErrInvalidRuntimeType }

// NewRegistry creates a new runtime registry.
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// Register adds a runtime to the registry.
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type.
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", typ)
	}
	return rt, nil
}

// Available returns all available runtimes in name order.
func (r *Registry) Available() []RuntimeType {
	var types []RuntimeType
	for typ, rt := range r.runtimes {
		if rt.Available() {
			types = append(types, typ)
		}
	}
	slices.Sort(types)
	return types
}

// EnvToSlice converts a map of environment variables to a KEY=VALUE slice
// sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
