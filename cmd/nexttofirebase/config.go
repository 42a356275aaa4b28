// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LowieHuyghe/next-to-firebase/internal/config"
)

// newConfigCommand creates the `next-to-firebase config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the project configuration",
		Long: `Manage the project configuration.

Configuration is read from next-to-firebase.cue (or .toml, .yaml, .yml) in
the project root, then from a .env file there, then from NEXT_TO_FIREBASE_*
environment variables. Command line flags win over all of them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, loaded, err := loadConfig(cmd, app, flags)
			if err != nil {
				return app.fail(err, flags.verbose, "")
			}
			showConfig(app.stdout, loaded)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create next-to-firebase.cue in the project root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveRoot(flags)
			if err != nil {
				return app.fail(err, flags.verbose, "")
			}
			path, created, err := config.CreateDefaultConfig(root)
			if err != nil {
				return app.fail(err, flags.verbose, "")
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, loaded, err := loadConfig(cmd, app, flags)
			if err != nil {
				return app.fail(err, flags.verbose, "")
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, loaded *config.Loaded) {
	cfg := loaded.Config
	value := func(v string) string {
		if v == "" {
			return SubtitleStyle.Render("(not set)")
		}
		return SuccessStyle.Render(v)
	}

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if loaded.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("next"), value(cfg.Next))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("out"), value(cfg.Out))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("environments"), value(strings.Join(cfg.Environments, ",")))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("next_build_dir"), value(cfg.NextBuildDir))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("functions"))
	fmt.Fprintf(w, "  region: %s\n", value(cfg.Functions.Region))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", value(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(w, "  color_scheme: %s\n", value(cfg.UI.ColorScheme.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("watch"))
	fmt.Fprintf(w, "  debounce: %s\n", value(cfg.Watch.Debounce.String()))
	fmt.Fprintf(w, "  ignore: %s\n", value(strings.Join(cfg.Watch.Ignore, ", ")))
}
