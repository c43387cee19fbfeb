// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"prog-cli/internal/config"
	"prog-cli/internal/runtime"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference and reach settings, runtimes and
	// the standard streams through it.
	App struct {
		Config   ConfigProvider
		Runtimes RegistryFactory
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Runtimes RegistryFactory
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads settings using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// RegistryFactory builds the runtimes a plan may run on. A fresh registry
	// is built for every plan.
	RegistryFactory func(opts runtime.BuildRegistryOptions) *runtime.Registry
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runtimes == nil {
		deps.Runtimes = runtime.BuildRegistry
	}

	return &App{
		Config:   deps.Config,
		Runtimes: deps.Runtimes,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// fail renders the help card behind err for subcommands that run without a
// session and returns err unchanged.
func (app *App) fail(err error) error {
	renderError(app.stderr, newLogger(app.stderr, 0), err, false)
	return err
}
