// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"fmt"
	"strings"

	"github.com/LowieHuyghe/next-to-firebase/internal/pages"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

// AllFiles matches every file below a directory.
const AllFiles = "**/*"

type (
	// Operation is one step of the copy plan: a CopyGlob or a CopyFile.
	Operation interface {
		fmt.Stringer
		operation()
	}

	// CopyGlob copies the files matching Pattern below Cwd into TargetDir,
	// keeping their path relative to Cwd. A missing Cwd copies nothing.
	CopyGlob struct {
		TargetDir types.FilesystemPath
		Cwd       types.FilesystemPath
		Pattern   string
	}

	// CopyFile copies a single file.
	CopyFile struct {
		Source types.FilesystemPath
		Target types.FilesystemPath
	}
)

func (CopyGlob) operation() {}
func (CopyFile) operation() {}

func (c CopyGlob) String() string {
	return fmt.Sprintf("copy %s from %s to %s", c.Pattern, c.Cwd, c.TargetDir)
}

func (c CopyFile) String() string {
	return fmt.Sprintf("copy %s to %s", c.Source, c.Target)
}

// Plan lists the copy operations of a build, in order: project files into
// the output root, public assets, functions sources, then one file per page.
// Later operations overwrite files of earlier ones.
func Plan(paths Paths, routes []pages.Page) ([]Operation, error) {
	ops := []Operation{
		CopyGlob{TargetDir: paths.DistDir, Cwd: paths.RootDir, Pattern: "firebase.json"},
		CopyGlob{TargetDir: paths.DistDir, Cwd: paths.RootDir, Pattern: ".firebaserc"},

		CopyGlob{TargetDir: paths.Public.DistDir, Cwd: paths.Next.BuildDir, Pattern: "service-worker.js"},
		CopyGlob{TargetDir: paths.Public.DistDir, Cwd: paths.Next.PublicDir, Pattern: AllFiles},
		CopyGlob{TargetDir: paths.Public.NextDir, Cwd: paths.Next.StaticDir, Pattern: AllFiles},
		CopyGlob{TargetDir: paths.Public.DistDir, Cwd: paths.Public.SourceDir, Pattern: AllFiles},

		CopyGlob{TargetDir: paths.Functions.DistDir, Cwd: paths.RootDir, Pattern: "package.json"},
		CopyGlob{TargetDir: paths.Functions.DistDir, Cwd: paths.RootDir, Pattern: "package-lock.json"},
		CopyGlob{TargetDir: paths.Functions.DistDir, Cwd: paths.RootDir, Pattern: "yarn.lock"},
		CopyGlob{TargetDir: paths.Functions.DistDir, Cwd: paths.Functions.SourceDir, Pattern: AllFiles},
	}

	for _, page := range routes {
		switch page.Kind {
		case pages.KindStatic:
			destination, err := pages.Destination(page)
			if err != nil {
				return nil, err
			}
			ops = append(ops, CopyFile{Source: page.AbsPath, Target: fspath.JoinStr(paths.Public.DistDir, destination)})
		case pages.KindFunction:
			ops = append(ops, CopyFile{Source: page.AbsPath, Target: fspath.JoinStr(paths.Functions.DistDir, page.Path)})
		default:
			return nil, &pages.UnsupportedExtensionError{Page: page}
		}
	}
	return ops, nil
}

// Stages splits a plan by output area, keeping the order within each area.
type Stages struct {
	Public    []Operation
	Functions []Operation
	Dist      []Operation
}

// Split groups ops by the area of the output directory they write to.
func (p Paths) Split(ops []Operation) Stages {
	var stages Stages
	for _, op := range ops {
		switch target := targetOf(op); {
		case within(p.Public.DistDir, target):
			stages.Public = append(stages.Public, op)
		case within(p.Functions.DistDir, target):
			stages.Functions = append(stages.Functions, op)
		default:
			stages.Dist = append(stages.Dist, op)
		}
	}
	return stages
}

func targetOf(op Operation) types.FilesystemPath {
	switch op := op.(type) {
	case CopyGlob:
		return op.TargetDir
	case CopyFile:
		return op.Target
	default:
		return ""
	}
}

func within(dir, target types.FilesystemPath) bool {
	rel, err := fspath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}
