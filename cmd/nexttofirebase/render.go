// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path"

	"github.com/LowieHuyghe/next-to-firebase/internal/app/build"
	"github.com/LowieHuyghe/next-to-firebase/internal/layout"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

// printSummary reports a finished build and the files it generated.
func printSummary(w io.Writer, inv *invocation, result *build.Result) {
	functions := 0
	for _, export := range result.Exports.Exports {
		if !export.IsAlias() {
			functions++
		}
	}
	rules := 0
	if len(result.Rewrites) > 0 {
		rules = len(result.Rewrites[0].Rules)
	}

	fmt.Fprintf(w, "%s Built %s: %d pages, %d rewrites, %d functions\n",
		SuccessStyle.Render("✓"), KeyStyle.Render(inv.Request.OutDir), len(result.Pages), rules, functions)
	for _, file := range result.Written {
		fmt.Fprintf(w, "  %s\n", relativeTo(inv.Request.RootDir, file))
	}
}

// printPlan prints what a build would generate without writing it.
func printPlan(w io.Writer, inv *invocation, result *build.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Rewrites"))
	for _, set := range result.Rewrites {
		if name, ok := set.Environment.Name(); ok {
			fmt.Fprintf(w, "%s:\n", KeyStyle.Render(string(name)))
		}
		if len(set.Rules) == 0 {
			fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
			continue
		}
		for _, rule := range set.Rules {
			fmt.Fprintf(w, "  %s\n", rule)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Function exports"))
	if len(result.Exports.Exports) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, export := range result.Exports.Exports {
		fmt.Fprintf(w, "  %s\n", export)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Copy operations"))
	root := inv.Request.RootDir
	for _, op := range result.Plan {
		switch op := op.(type) {
		case layout.CopyGlob:
			fmt.Fprintf(w, "  %s %s -> %s\n", SubtitleStyle.Render("glob"),
				path.Join(relativeTo(root, op.Cwd), op.Pattern), relativeTo(root, op.TargetDir))
		case layout.CopyFile:
			fmt.Fprintf(w, "  %s %s -> %s\n", SubtitleStyle.Render("file"),
				relativeTo(root, op.Source), relativeTo(root, op.Target))
		default:
			fmt.Fprintf(w, "  %s\n", op)
		}
	}
}

// relativeTo shortens path for display, falling back to the path itself.
func relativeTo(root, target types.FilesystemPath) string {
	rel, err := fspath.Rel(root, target)
	if err != nil {
		return string(target)
	}
	return rel
}
