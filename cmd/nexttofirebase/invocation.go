// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LowieHuyghe/next-to-firebase/internal/app/build"
	"github.com/LowieHuyghe/next-to-firebase/internal/config"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

var errWatchDryRun = errors.New("--watch and --dry-run cannot be used together")

// invocation is the merged view of flags and configuration for one command.
type invocation struct {
	Request    build.Request
	Config     *config.Config
	ConfigPath types.FilesystemPath
	Verbose    bool
	Logger     *log.Logger
}

// resolveRoot returns the absolute project root: --root, else the working directory.
func resolveRoot(flags *rootFlagValues) (types.FilesystemPath, error) {
	root := flags.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	return fspath.Abs(types.FilesystemPath(root))
}

// loadConfig loads the configuration of the project root.
func loadConfig(cmd *cobra.Command, app *App, flags *rootFlagValues) (types.FilesystemPath, *config.Loaded, error) {
	root, err := resolveRoot(flags)
	if err != nil {
		return "", nil, err
	}
	loaded, err := app.Config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		BaseDir:        root,
	})
	if err != nil {
		return "", nil, err
	}
	return root, loaded, nil
}

// resolveInvocation merges the loaded configuration with the flags. A flag
// wins only when it was set on the command line.
func resolveInvocation(cmd *cobra.Command, app *App, flags *rootFlagValues) (*invocation, error) {
	root, loaded, err := loadConfig(cmd, app, flags)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config
	changed := cmd.Flags().Changed

	pick := func(name, flagValue, cfgValue string) string {
		if changed(name) {
			return flagValue
		}
		return cfgValue
	}

	var envs []types.EnvironmentName
	if changed("environments") {
		envs, err = types.ParseEnvironmentNames(flags.environments)
	} else {
		envs, err = cfg.EnvironmentNames()
	}
	if err != nil {
		return nil, err
	}

	verbose := cfg.UI.Verbose
	if changed("verbose") {
		verbose = flags.verbose
	}

	inv := &invocation{
		Request: build.Request{
			RootDir:      root,
			NextDir:      pick("next", flags.next, cfg.Next),
			OutDir:       pick("out", flags.out, cfg.Out),
			Environments: envs,
			NextBuildDir: pick("next-build-dir", flags.nextBuildDir, cfg.NextBuildDir),
			Region:       pick("region", flags.region, cfg.Functions.Region),
		},
		Config:     cfg,
		ConfigPath: loaded.Path,
		Verbose:    verbose,
		Logger:     app.newLogger(verbose),
	}
	if inv.ConfigPath != "" {
		inv.Logger.Debug("config", "file", inv.ConfigPath)
	}
	return inv, nil
}
