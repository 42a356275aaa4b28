// SPDX-License-Identifier: MPL-2.0

// Package fsops executes layout plans against a file system.
package fsops

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/internal/layout"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Executor performs file-system work for a build. The zero value is not
// usable; use New.
type Executor struct {
	fs     afero.Fs
	logger *log.Logger
}

// New returns an Executor over fsys. A nil logger discards debug output.
func New(fsys afero.Fs, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Executor{fs: fsys, logger: logger}
}

// Fs returns the underlying file system.
func (e *Executor) Fs() afero.Fs {
	return e.fs
}

// Exists reports whether path exists.
func (e *Executor) Exists(path types.FilesystemPath) bool {
	ok, err := afero.Exists(e.fs, string(path))
	return err == nil && ok
}

// Clean removes dir and everything below it. A missing dir is not an error.
func (e *Executor) Clean(dir types.FilesystemPath) error {
	e.logger.Debug("cleaning", "dir", dir)
	if err := e.fs.RemoveAll(string(dir)); err != nil {
		return fmt.Errorf("clean %s: %w", dir, err)
	}
	return nil
}

// ReadFile returns the content of path.
func (e *Executor) ReadFile(path types.FilesystemPath) ([]byte, error) {
	data, err := afero.ReadFile(e.fs, string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories.
func (e *Executor) WriteFile(path types.FilesystemPath, data []byte) error {
	if err := e.fs.MkdirAll(string(fspath.Dir(path)), dirPerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(e.fs, string(path), data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Remove deletes a single file.
func (e *Executor) Remove(path types.FilesystemPath) error {
	if err := e.fs.Remove(string(path)); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Apply runs the operations in order. It stops at the first failure or
// when ctx is done.
func (e *Executor) Apply(ctx context.Context, ops []layout.Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch op := op.(type) {
		case layout.CopyGlob:
			err = e.copyGlob(op)
		case layout.CopyFile:
			err = e.copyFile(op.Source, op.Target)
		default:
			err = fmt.Errorf("unknown operation %T", op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Matches returns the files below op.Cwd matched by op.Pattern, as
// slash-separated paths relative to op.Cwd.
func (e *Executor) Matches(op layout.CopyGlob) ([]string, error) {
	isDir, err := afero.DirExists(e.fs, string(op.Cwd))
	if err != nil || !isDir {
		return nil, nil
	}
	root := afero.NewIOFS(afero.NewBasePathFs(e.fs, string(op.Cwd)))
	matches, err := doublestar.Glob(root, op.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", op.Pattern, op.Cwd, err)
	}
	return matches, nil
}

func (e *Executor) copyGlob(op layout.CopyGlob) error {
	matches, err := e.Matches(op)
	if err != nil {
		return err
	}
	e.logger.Debug(op.String(), "files", len(matches))
	for _, rel := range matches {
		if err := e.copyFile(fspath.JoinStr(op.Cwd, rel), fspath.JoinStr(op.TargetDir, rel)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) copyFile(source, target types.FilesystemPath) error {
	info, err := e.fs.Stat(string(source))
	if err != nil {
		return fmt.Errorf("copy %s: %w", source, err)
	}
	data, err := afero.ReadFile(e.fs, string(source))
	if err != nil {
		return fmt.Errorf("copy %s: %w", source, err)
	}
	if err := e.fs.MkdirAll(filepath.Dir(string(target)), dirPerm); err != nil {
		return fmt.Errorf("copy %s: %w", source, err)
	}
	if err := afero.WriteFile(e.fs, string(target), data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copy %s to %s: %w", source, target, err)
	}
	return nil
}
