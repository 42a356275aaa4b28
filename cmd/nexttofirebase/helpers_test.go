// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/internal/app/build"
	"github.com/LowieHuyghe/next-to-firebase/internal/config"
	"github.com/LowieHuyghe/next-to-firebase/internal/testutil"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

var projectRoot = filepath.FromSlash("/project")

type (
	// stubProvider returns a fixed configuration and records the options.
	stubProvider struct {
		cfg  *config.Config
		path types.FilesystemPath
		err  error
		opts []config.LoadOptions
	}

	// recordingBuilder records requests instead of building.
	recordingBuilder struct {
		requests []build.Request
		result   *build.Result
		err      error
	}

	harness struct {
		app    *App
		fs     afero.Fs
		config *stubProvider
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (p *stubProvider) Load(_ context.Context, opts config.LoadOptions) (*config.Loaded, error) {
	p.opts = append(p.opts, opts)
	if p.err != nil {
		return nil, p.err
	}
	return &config.Loaded{Config: p.cfg, Path: p.path}, nil
}

func (b *recordingBuilder) Run(_ context.Context, req build.Request) (*build.Result, error) {
	b.requests = append(b.requests, req)
	if b.err != nil {
		return nil, b.err
	}
	if b.result == nil {
		return &build.Result{}, nil
	}
	return b.result, nil
}

// newHarness returns an App building the sample project on a MemMapFs,
// configured by cfg (nil means defaults).
func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fsys := afero.NewMemMapFs()
	testutil.WriteFiles(t, fsys, projectRoot, testutil.SampleProject(nil))

	h := &harness{
		fs:     fsys,
		config: &stubProvider{cfg: cfg},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	app, err := NewApp(Dependencies{
		Config: h.config,
		Fs:     fsys,
		Stdout: h.stdout,
		Stderr: h.stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	h.app = app
	return h
}

// recordBuilds swaps the builder for a recordingBuilder.
func (h *harness) recordBuilds() *recordingBuilder {
	rec := &recordingBuilder{}
	h.app.Builders = func(*log.Logger) BuildService { return rec }
	return rec
}

// execute runs the command line against the harness.
func (h *harness) execute(args ...string) error {
	root := NewRootCommand(h.app)
	root.SetArgs(args)
	root.SetOut(h.stdout)
	root.SetErr(h.stderr)
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root.ExecuteContext(context.Background())
}

func (h *harness) dist(t *testing.T) testutil.Files {
	t.Helper()
	return testutil.ReadFiles(t, h.fs, filepath.Join(projectRoot, "dist"))
}

func exitCode(t *testing.T, err error) types.ExitCode {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v (%T) is not an *ExitError", err, err)
	}
	return exitErr.Code
}
