// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/internal/firebase"
	"github.com/LowieHuyghe/next-to-firebase/internal/fsops"
	"github.com/LowieHuyghe/next-to-firebase/internal/layout"
	"github.com/LowieHuyghe/next-to-firebase/internal/nextapp"
	"github.com/LowieHuyghe/next-to-firebase/internal/pages"
	"github.com/LowieHuyghe/next-to-firebase/internal/placeholder"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

var (
	// ErrMissingArguments is returned when the Next app or output dir is not set.
	ErrMissingArguments = errors.New("missing required arguments")
	// ErrUnsafeOutDir is returned when cleaning the output dir would delete the project.
	ErrUnsafeOutDir = errors.New("output directory must be inside the project root")
)

type (
	// Request describes one generation pass.
	Request struct {
		// RootDir is the project root holding firebase.json.
		RootDir types.FilesystemPath
		// NextDir is the Next.js app directory, relative to RootDir.
		NextDir string
		// OutDir is the output directory, relative to RootDir. It is wiped.
		OutDir string
		// Environments are the deployment environments; empty means none.
		Environments []types.EnvironmentName
		// NextBuildDir overrides the distDir of next.config.js.
		NextBuildDir string
		// Region pins the generated functions to a region.
		Region string
		// DryRun computes everything but writes nothing.
		DryRun bool
	}

	// Result is what a pass generated.
	Result struct {
		Paths    layout.Paths
		Pages    []pages.Page
		Rewrites []pages.RewriteSet
		Exports  pages.ExportSet
		Plan     []layout.Operation
		// Written lists the generated files, empty for a dry run.
		Written []types.FilesystemPath

		generated []generatedFile
		// dropTemplate removes the copied firebase.json once the
		// per-environment files exist.
		dropTemplate bool
	}

	// generatedFile is a filled template waiting to be written.
	generatedFile struct {
		target  types.FilesystemPath
		content string
	}

	// Builder runs generation passes against a file system.
	Builder struct {
		exec   *fsops.Executor
		logger *log.Logger
	}
)

// New returns a Builder over fsys. A nil logger discards output.
func New(fsys afero.Fs, logger *log.Logger) *Builder {
	return &Builder{exec: fsops.New(fsys, logger), logger: loggerOrDiscard(logger)}
}

// Validate checks the request before any file is read.
func (r Request) Validate() error {
	var missing []string
	if r.NextDir == "" {
		missing = append(missing, "next")
	}
	if r.OutDir == "" {
		missing = append(missing, "out")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingArguments, missing)
	}
	for _, env := range r.Environments {
		if err := env.Validate(); err != nil {
			return err
		}
	}
	rel, err := fspath.Rel(r.RootDir, fspath.Resolve(r.RootDir, r.OutDir))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return fmt.Errorf("%w: %s", ErrUnsafeOutDir, r.OutDir)
	}
	return nil
}

// Run executes one pass. On error nothing has been written unless the error
// comes from the file system while writing.
func (b *Builder) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, wrap("validate arguments", "", err)
	}

	b.logger.Info("Preparing run")
	result, err := b.prepare(req)
	if err != nil {
		return nil, err
	}
	if req.DryRun {
		b.logger.Debug("dry run, nothing written")
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := result.Paths
	if err := b.exec.Clean(paths.DistDir); err != nil {
		return nil, wrap("clean output directory", string(paths.DistDir), err)
	}
	stages := paths.Split(result.Plan)

	b.logger.Info("Building public dir")
	if err := b.exec.Apply(ctx, stages.Public); err != nil {
		return nil, wrap("build public dir", string(paths.Public.DistDir), err)
	}

	b.logger.Info("Building functions dir")
	if err := b.exec.Apply(ctx, stages.Functions); err != nil {
		return nil, wrap("build functions dir", string(paths.Functions.DistDir), err)
	}

	b.logger.Info("Building dist dir and firebase")
	if err := b.exec.Apply(ctx, stages.Dist); err != nil {
		return nil, wrap("build dist dir", string(paths.DistDir), err)
	}
	for _, file := range result.generated {
		if err := b.exec.WriteFile(file.target, []byte(file.content)); err != nil {
			return nil, wrap("write", string(file.target), err)
		}
		b.logger.Debug("wrote", "file", file.target)
		result.Written = append(result.Written, file.target)
	}
	if result.dropTemplate {
		if err := b.exec.Remove(paths.Firebase.Dist); err != nil {
			return nil, wrap("remove firebase.json template", string(paths.Firebase.Dist), err)
		}
	}

	b.logger.Debug("done", "pages", len(result.Pages), "files", len(result.Written))
	return result, nil
}

// prepare resolves the inputs and generates everything the pass writes.
func (b *Builder) prepare(req Request) (*Result, error) {
	fsys := b.exec.Fs()
	next := nextapp.Resolve(fsys, fspath.Resolve(req.RootDir, req.NextDir), req.NextBuildDir)
	b.logger.Debug("next app", "build", next.BuildDir)

	firebasePath := fspath.JoinStr(req.RootDir, firebase.FileName)
	fb, err := firebase.Load(fsys, firebasePath)
	if err != nil {
		return nil, wrap("load firebase.json", string(firebasePath), err)
	}
	if fb.HostingCount > 1 {
		b.logger.Warn("multiple hosting configurations, using the first",
			"count", fb.HostingCount, "hosting", fb.Hosting.Name(), "public", fb.PublicDir())
	}

	paths := layout.ResolvePaths(req.RootDir, fspath.Resolve(req.RootDir, req.OutDir), next, fb)

	manifest, err := nextapp.LoadManifest(fsys, next)
	if err != nil {
		return nil, wrap("load pages manifest", string(next.ManifestPath), err)
	}
	routes := pages.Normalize(manifest, next.ServerlessDir, pages.NormalizeOptions{Exists: b.exec.Exists})
	b.logger.Debug("pages", "manifest", len(manifest), "kept", len(routes))

	envs := pages.EnvironmentsOf(req.Environments)
	rewrites, err := pages.Rewrites(routes, envs)
	if err != nil {
		return nil, wrap("generate rewrites", "", err)
	}
	exports, err := pages.Exports(routes, envs, pages.ExportOptions{Region: req.Region})
	if err != nil {
		return nil, wrap("generate function exports", "", err)
	}
	plan, err := layout.Plan(paths, routes)
	if err != nil {
		return nil, wrap("plan output layout", "", err)
	}

	result := &Result{
		Paths:    paths,
		Pages:    routes,
		Rewrites: rewrites,
		Exports:  exports,
		Plan:     plan,
	}
	if err := b.render(result); err != nil {
		return nil, err
	}
	return result, nil
}

// render fills the templates from the project sources, which the plan copies
// verbatim, so a missing marker fails the pass before the out dir is cleaned.
// With environments, each environment gets its own firebase.<env>.json and
// the copied template is dropped.
func (b *Builder) render(result *Result) error {
	paths := result.Paths

	indexSource := fspath.JoinStr(paths.Functions.SourceDir, layout.FunctionsIndexFile)
	index, err := b.fill(indexSource, placeholder.ExportsMarker, result.Exports.String())
	if err != nil {
		return err
	}
	result.generated = append(result.generated, generatedFile{target: paths.Functions.IndexPath, content: index})

	for _, set := range result.Rewrites {
		target := paths.Firebase.Dist
		if name, ok := set.Environment.Name(); ok {
			target = paths.EnvironmentFirebasePath(name)
			result.dropTemplate = true
		}
		content, err := b.fill(paths.Firebase.Source, placeholder.RewritesMarker, set.String())
		if err != nil {
			return err
		}
		result.generated = append(result.generated, generatedFile{target: target, content: content})
	}
	return nil
}

func (b *Builder) fill(template types.FilesystemPath, marker, data string) (string, error) {
	content, err := b.exec.ReadFile(template)
	if err != nil {
		return "", wrap("read template", string(template), err)
	}
	filled, err := placeholder.Fill(string(content), marker, data)
	if err != nil {
		return "", wrap("fill template", string(template), err)
	}
	return filled, nil
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
