// SPDX-License-Identifier: MPL-2.0

// Package layout decides where every file of the deployable Firebase tree
// comes from and where it goes.
package layout

import (
	"github.com/LowieHuyghe/next-to-firebase/internal/firebase"
	"github.com/LowieHuyghe/next-to-firebase/internal/nextapp"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

// FunctionsIndexFile is the entry point of the functions directory.
const FunctionsIndexFile = "index.js"

type (
	// FirebasePaths locates firebase.json in the project and in the output.
	FirebasePaths struct {
		Source types.FilesystemPath
		Dist   types.FilesystemPath
	}

	// PublicPaths locates the hosting public directory.
	PublicPaths struct {
		SourceDir types.FilesystemPath
		DistDir   types.FilesystemPath
		// NextDir receives the Next.js static assets.
		NextDir types.FilesystemPath
	}

	// FunctionsPaths locates the Cloud Functions directory.
	FunctionsPaths struct {
		SourceDir types.FilesystemPath
		DistDir   types.FilesystemPath
		IndexPath types.FilesystemPath
	}

	// Paths is every directory and file the layout touches.
	Paths struct {
		RootDir   types.FilesystemPath
		DistDir   types.FilesystemPath
		Next      nextapp.Info
		Firebase  FirebasePaths
		Public    PublicPaths
		Functions FunctionsPaths
	}
)

// ResolvePaths applies the directory conventions: hosting.public and
// functions.source of firebase.json are mirrored from the root into distDir.
func ResolvePaths(rootDir, distDir types.FilesystemPath, next nextapp.Info, fb *firebase.Config) Paths {
	if fb == nil {
		fb = &firebase.Config{}
	}

	publicDist := fspath.JoinStr(distDir, fb.PublicDir())
	functionsDist := fspath.JoinStr(distDir, fb.FunctionsDir())

	return Paths{
		RootDir: rootDir,
		DistDir: distDir,
		Next:    next,
		Firebase: FirebasePaths{
			Source: fspath.JoinStr(rootDir, firebase.FileName),
			Dist:   fspath.JoinStr(distDir, firebase.FileName),
		},
		Public: PublicPaths{
			SourceDir: fspath.Resolve(rootDir, fb.PublicDir()),
			DistDir:   publicDist,
			NextDir:   fspath.JoinStr(publicDist, "_next/static"),
		},
		Functions: FunctionsPaths{
			SourceDir: fspath.Resolve(rootDir, fb.FunctionsDir()),
			DistDir:   functionsDist,
			IndexPath: fspath.JoinStr(functionsDist, FunctionsIndexFile),
		},
	}
}

// EnvironmentFirebasePath is the firebase.json written for one environment:
// firebase.<env>.json next to the template.
func (p Paths) EnvironmentFirebasePath(env types.EnvironmentName) types.FilesystemPath {
	return fspath.JoinStr(p.DistDir, "firebase."+string(env)+".json")
}
