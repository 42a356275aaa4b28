// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// newPlanCommand creates `next-to-firebase plan`: a dry run that prints the
// rewrite rules, function exports and copy operations of a build.
func newPlanCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print what a build would generate without writing it",
		Long: `Print what a build would generate without writing it.

The same inputs are read and validated as for a real build, so unsupported
pages and colliding function names are reported here too. The output
directory is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := resolveInvocation(cmd, app, flags)
			if err != nil {
				return app.fail(err, flags.verbose, "")
			}
			inv.Request.DryRun = true

			result, err := app.Builders(inv.Logger).Run(cmd.Context(), inv.Request)
			if err != nil {
				return app.fail(err, inv.Verbose, inv.Config.UI.ColorScheme)
			}
			printPlan(app.stdout, inv, result)
			return nil
		},
	}
}
