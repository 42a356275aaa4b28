// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/internal/app/build"
	"github.com/LowieHuyghe/next-to-firebase/internal/config"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and
	// delegates through its services.
	App struct {
		Config   config.Provider
		Builders BuilderFactory
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config config.Provider
		// Fs backs the default BuilderFactory. Defaults to the OS file system.
		Fs       afero.Fs
		Builders BuilderFactory
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// BuildService runs one generation pass.
	BuildService interface {
		Run(ctx context.Context, req build.Request) (*build.Result, error)
	}

	// BuilderFactory creates a BuildService logging to logger. Builders are
	// created per invocation because the log level depends on the flags.
	BuilderFactory func(logger *log.Logger) BuildService
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Builders == nil {
		fsys := deps.Fs
		deps.Builders = func(logger *log.Logger) BuildService {
			return build.New(fsys, logger)
		}
	}

	return &App{
		Config:   deps.Config,
		Builders: deps.Builders,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// newLogger returns the run logger: Info by default, Debug when verbose.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}
