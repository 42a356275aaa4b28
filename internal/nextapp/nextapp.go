// SPDX-License-Identifier: MPL-2.0

// Package nextapp locates the output of a serverless Next.js build.
package nextapp

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/internal/pages"
	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

const (
	// ConfigFileName is the Next.js configuration file in the app directory.
	ConfigFileName = "next.config.js"
	// DefaultBuildDir is the build directory when next.config.js sets no distDir.
	DefaultBuildDir = ".next"
	// ManifestFileName is the pages manifest inside the serverless directory.
	ManifestFileName = "pages-manifest.json"
)

// ErrManifestNotFound is returned when the build has no pages manifest,
// usually because the app was not built with the serverless target.
var ErrManifestNotFound = errors.New("pages manifest not found")

var distDirPattern = regexp.MustCompile("distDir\\s*:\\s*['\"`]([^'\"`]+)['\"`]")

// Info holds the directories of a Next.js app and its build.
type Info struct {
	AppDir        types.FilesystemPath
	PublicDir     types.FilesystemPath
	BuildDir      types.FilesystemPath
	ServerlessDir types.FilesystemPath
	ManifestPath  types.FilesystemPath
	StaticDir     types.FilesystemPath
}

// Resolve returns the directories of the app in appDir. buildDirOverride,
// when set, takes precedence over a distDir found in next.config.js.
func Resolve(fsys afero.Fs, appDir types.FilesystemPath, buildDirOverride string) Info {
	buildDir := buildDirOverride
	if buildDir == "" {
		buildDir = configuredDistDir(fsys, appDir)
	}
	if buildDir == "" {
		buildDir = DefaultBuildDir
	}

	build := fspath.Resolve(appDir, buildDir)
	serverless := fspath.Join(build, "serverless")
	return Info{
		AppDir:        appDir,
		PublicDir:     fspath.Join(appDir, "public"),
		BuildDir:      build,
		ServerlessDir: serverless,
		ManifestPath:  fspath.Join(serverless, ManifestFileName),
		StaticDir:     fspath.Join(build, "static"),
	}
}

// configuredDistDir looks for a literal distDir in next.config.js. Computed
// values cannot be read without a JavaScript runtime; use the next_build_dir
// setting for those.
func configuredDistDir(fsys afero.Fs, appDir types.FilesystemPath) string {
	data, err := afero.ReadFile(fsys, string(fspath.Join(appDir, ConfigFileName)))
	if err != nil {
		return ""
	}
	match := distDirPattern.FindSubmatch(data)
	if match == nil {
		return ""
	}
	return string(match[1])
}

// LoadManifest reads and decodes the pages manifest of the build.
func LoadManifest(fsys afero.Fs, info Info) (pages.Manifest, error) {
	data, err := afero.ReadFile(fsys, string(info.ManifestPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, info.ManifestPath)
		}
		return nil, fmt.Errorf("read %s: %w", info.ManifestPath, err)
	}
	manifest, err := pages.ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", info.ManifestPath, err)
	}
	return manifest, nil
}
