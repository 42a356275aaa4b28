// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/LowieHuyghe/next-to-firebase/internal/config"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by the build commands.
type rootFlagValues struct {
	root         string
	next         string
	out          string
	environments string
	configPath   string
	nextBuildDir string
	region       string
	verbose      bool
	dryRun       bool
	watch        bool
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Deploy a serverless Next.js build to Firebase hosting and functions",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - Deploy Next.js to Firebase hosting and functions") + `

Takes the serverless build of a Next.js app and assembles a directory
that 'firebase deploy' accepts: static pages and assets go to hosting,
server-rendered pages become Cloud Functions, and firebase.json receives
the rewrite rules that route every page to one or the other.

` + SubtitleStyle.Render("Project layout:") + `
  firebase.json        needs "rewrites": ["_rewrites_"] in its hosting config
  <functions>/index.js needs a //_exports_ line
  <next>/.next         output of 'next build' with target 'serverless'

` + SubtitleStyle.Render("Examples:") + `
  next-to-firebase -n src/next -o dist
  next-to-firebase -n src/next -o dist -e dev,prod
  next-to-firebase plan -n src/next -o dist
  next-to-firebase -n src/next -o dist --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, app, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.root, "root", "r", "", "project root holding firebase.json (default is the working directory)")
	pf.StringVarP(&flags.next, "next", "n", "", "Next.js app directory, relative to the root")
	pf.StringVarP(&flags.out, "out", "o", "", "output directory, relative to the root; wiped on every build")
	pf.StringVarP(&flags.environments, "environments", "e", "", "comma separated deployment environments, e.g. dev,prod")
	pf.StringVar(&flags.nextBuildDir, "next-build-dir", "", "Next.js build directory (default is distDir of next.config.js, else .next)")
	pf.StringVar(&flags.region, "region", "", "Cloud Functions region, e.g. europe-west1")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is next-to-firebase.cue in the root)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the build plan without writing anything")
	rootCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rebuild whenever the project changes")

	rootCmd.AddCommand(newPlanCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code of the failure, if any.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		os.Exit(int(types.ExitFailure))
	}

	// fang overrides rootCmd.Version, so the version goes through its option.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

func runRoot(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	if flags.watch && flags.dryRun {
		return app.fail(errWatchDryRun, flags.verbose, config.ColorSchemeAuto)
	}

	inv, err := resolveInvocation(cmd, app, flags)
	if err != nil {
		return app.fail(err, flags.verbose, config.ColorSchemeAuto)
	}
	if flags.watch {
		return runWatch(cmd.Context(), app, inv)
	}

	inv.Request.DryRun = flags.dryRun
	result, err := app.Builders(inv.Logger).Run(cmd.Context(), inv.Request)
	if err != nil {
		return app.fail(err, inv.Verbose, inv.Config.UI.ColorScheme)
	}
	if inv.Request.DryRun {
		printPlan(app.stdout, inv, result)
		return nil
	}
	printSummary(app.stdout, inv, result)
	return nil
}

// fail renders err for the user and converts it into an ExitError. fang
// prints the error line itself.
func (a *App) fail(err error, verbose bool, scheme config.ColorScheme) error {
	renderServiceError(a.stderr, serviceErrorFor(err, verbose), glamourStyle(scheme))
	return &ExitError{Code: exitCodeFor(err), Err: err}
}
