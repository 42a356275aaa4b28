// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/LowieHuyghe/next-to-firebase/internal/watch"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
)

// runWatch builds once, then rebuilds whenever the project root changes.
// Build failures are logged and the watcher keeps going, so saving a fix
// recovers without a restart.
func runWatch(ctx context.Context, app *App, inv *invocation) error {
	builder := app.Builders(inv.Logger)
	rebuild := func(ctx context.Context, _ []string) error {
		result, err := builder.Run(ctx, inv.Request)
		if err != nil {
			renderServiceError(app.stderr, serviceErrorFor(err, inv.Verbose), glamourStyle(inv.Config.UI.ColorScheme))
			return err
		}
		printSummary(app.stdout, inv, result)
		return nil
	}

	// Validate up front: an unsafe out dir must not be ignored and wiped in a loop.
	if err := inv.Request.Validate(); err != nil {
		return app.fail(err, inv.Verbose, inv.Config.UI.ColorScheme)
	}
	out, err := fspath.Rel(inv.Request.RootDir, fspath.Resolve(inv.Request.RootDir, inv.Request.OutDir))
	if err != nil {
		return app.fail(err, inv.Verbose, inv.Config.UI.ColorScheme)
	}

	w, err := watch.New(watch.Config{
		RootDir:  inv.Request.RootDir,
		Ignore:   append(slices.Clone(inv.Config.Watch.Ignore), watch.OutputIgnore(out)),
		Debounce: inv.Config.Watch.Debounce,
		OnChange: rebuild,
		Logger:   inv.Logger,
	})
	if err != nil {
		return app.fail(fmt.Errorf("failed to start watcher: %w", err), inv.Verbose, inv.Config.UI.ColorScheme)
	}

	// The first build's errors are logged like any rebuild's.
	if err := rebuild(ctx, nil); err != nil {
		inv.Logger.Error("Initial build failed", "err", err)
	}
	return w.Run(ctx)
}
