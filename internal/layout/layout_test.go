// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/internal/firebase"
	"github.com/LowieHuyghe/next-to-firebase/internal/nextapp"
	"github.com/LowieHuyghe/next-to-firebase/internal/pages"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

func p(s string) types.FilesystemPath {
	return types.FilesystemPath(filepath.FromSlash(s))
}

func fixturePaths(fb *firebase.Config) Paths {
	next := nextapp.Resolve(afero.NewMemMapFs(), p("/project/src/app"), "")
	return ResolvePaths(p("/project"), p("/project/dist"), next, fb)
}

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		got := fixturePaths(nil)
		if diff := cmp.Diff(FirebasePaths{Source: p("/project/firebase.json"), Dist: p("/project/dist/firebase.json")}, got.Firebase); diff != "" {
			t.Errorf("Firebase mismatch (-want +got):\n%s", diff)
		}
		wantPublic := PublicPaths{
			SourceDir: p("/project/public"),
			DistDir:   p("/project/dist/public"),
			NextDir:   p("/project/dist/public/_next/static"),
		}
		if diff := cmp.Diff(wantPublic, got.Public); diff != "" {
			t.Errorf("Public mismatch (-want +got):\n%s", diff)
		}
		wantFunctions := FunctionsPaths{
			SourceDir: p("/project/functions"),
			DistDir:   p("/project/dist/functions"),
			IndexPath: p("/project/dist/functions/index.js"),
		}
		if diff := cmp.Diff(wantFunctions, got.Functions); diff != "" {
			t.Errorf("Functions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("custom firebase dirs", func(t *testing.T) {
		t.Parallel()
		got := fixturePaths(&firebase.Config{Hosting: firebase.Hosting{Public: "src/public"}, FunctionsSource: "src/functions"})
		if got.Public.SourceDir != p("/project/src/public") || got.Public.DistDir != p("/project/dist/src/public") {
			t.Errorf("Public = %+v", got.Public)
		}
		if got.Public.NextDir != p("/project/dist/src/public/_next/static") {
			t.Errorf("Public.NextDir = %s", got.Public.NextDir)
		}
		if got.Functions.IndexPath != p("/project/dist/src/functions/index.js") {
			t.Errorf("Functions.IndexPath = %s", got.Functions.IndexPath)
		}
	})

	t.Run("environment firebase file", func(t *testing.T) {
		t.Parallel()
		if got := fixturePaths(nil).EnvironmentFirebasePath("staging"); got != p("/project/dist/firebase.staging.json") {
			t.Errorf("EnvironmentFirebasePath() = %s", got)
		}
	})
}

func TestPlan(t *testing.T) {
	t.Parallel()

	paths := fixturePaths(nil)
	serverless := paths.Next.ServerlessDir
	routes := []pages.Page{
		pages.Classify("/", "pages/index.js", serverless),
		pages.Classify("/about", "pages/about.html", serverless),
		pages.Classify("/product/[pid]", "pages/product/[pid].js", serverless),
	}

	ops, err := Plan(paths, routes)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	build := p("/project/src/app/.next")
	want := []Operation{
		CopyGlob{TargetDir: p("/project/dist"), Cwd: p("/project"), Pattern: "firebase.json"},
		CopyGlob{TargetDir: p("/project/dist"), Cwd: p("/project"), Pattern: ".firebaserc"},
		CopyGlob{TargetDir: p("/project/dist/public"), Cwd: build, Pattern: "service-worker.js"},
		CopyGlob{TargetDir: p("/project/dist/public"), Cwd: p("/project/src/app/public"), Pattern: AllFiles},
		CopyGlob{TargetDir: p("/project/dist/public/_next/static"), Cwd: p("/project/src/app/.next/static"), Pattern: AllFiles},
		CopyGlob{TargetDir: p("/project/dist/public"), Cwd: p("/project/public"), Pattern: AllFiles},
		CopyGlob{TargetDir: p("/project/dist/functions"), Cwd: p("/project"), Pattern: "package.json"},
		CopyGlob{TargetDir: p("/project/dist/functions"), Cwd: p("/project"), Pattern: "package-lock.json"},
		CopyGlob{TargetDir: p("/project/dist/functions"), Cwd: p("/project"), Pattern: "yarn.lock"},
		CopyGlob{TargetDir: p("/project/dist/functions"), Cwd: p("/project/functions"), Pattern: AllFiles},
		CopyFile{Source: p("/project/src/app/.next/serverless/pages/index.js"), Target: p("/project/dist/functions/pages/index.js")},
		CopyFile{Source: p("/project/src/app/.next/serverless/pages/about.html"), Target: p("/project/dist/public/about.html")},
		CopyFile{Source: p("/project/src/app/.next/serverless/pages/product/[pid].js"), Target: p("/project/dist/functions/pages/product/[pid].js")},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_Errors(t *testing.T) {
	t.Parallel()

	paths := fixturePaths(nil)
	tests := []struct {
		name    string
		page    pages.Page
		wantErr error
	}{
		{"unsupported extension", pages.Classify("/styles", "pages/styles.css", paths.Next.ServerlessDir), pages.ErrUnsupportedExtension},
		{"static outside pages", pages.Classify("/", "index.html", paths.Next.ServerlessDir), pages.ErrUnsupportedDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ops, err := Plan(paths, []pages.Page{tt.page})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Plan() error = %v, want %v", err, tt.wantErr)
			}
			if ops != nil {
				t.Errorf("Plan() returned operations on error")
			}
		})
	}
}

func TestOperation_String(t *testing.T) {
	t.Parallel()

	glob := CopyGlob{TargetDir: "dist", Cwd: "root", Pattern: AllFiles}
	if got, want := glob.String(), "copy **/* from root to dist"; got != want {
		t.Errorf("CopyGlob.String() = %q, want %q", got, want)
	}
	file := CopyFile{Source: "a", Target: "b"}
	if got, want := file.String(), "copy a to b"; got != want {
		t.Errorf("CopyFile.String() = %q, want %q", got, want)
	}
}

func TestPaths_Split(t *testing.T) {
	t.Parallel()

	paths := fixturePaths(nil)
	serverless := paths.Next.ServerlessDir
	ops, err := Plan(paths, []pages.Page{
		pages.Classify("/", "pages/index.js", serverless),
		pages.Classify("/about", "pages/about.html", serverless),
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	stages := paths.Split(ops)
	if got := len(stages.Dist); got != 2 {
		t.Errorf("len(Dist) = %d, want 2", got)
	}
	if got := len(stages.Public); got != 5 {
		t.Errorf("len(Public) = %d, want 5", got)
	}
	if got := len(stages.Functions); got != 5 {
		t.Errorf("len(Functions) = %d, want 5", got)
	}
	if len(stages.Dist)+len(stages.Public)+len(stages.Functions) != len(ops) {
		t.Error("Split() lost operations")
	}
	last := stages.Public[len(stages.Public)-1]
	if file, ok := last.(CopyFile); !ok || file.Target != p("/project/dist/public/about.html") {
		t.Errorf("last public op = %v, want the about.html copy", last)
	}
}
