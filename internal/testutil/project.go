// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io/fs"
	"maps"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Files maps slash-separated paths, relative to a root, to file contents.
type Files map[string]string

// WriteFiles creates every file below root, including parent directories.
func WriteFiles(t testing.TB, fsys afero.Fs, root string, files Files) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// ReadFiles returns every file below root, keyed by slash-separated path
// relative to root. A missing root yields an empty map.
func ReadFiles(t testing.TB, fsys afero.Fs, root string) Files {
	t.Helper()
	out := Files{}
	if ok, _ := afero.DirExists(fsys, root); !ok {
		return out
	}
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read %s: %v", root, err)
	}
	return out
}

// FunctionsIndex is the functions entry point template of SampleProject.
const FunctionsIndex = `const functions = require('firebase-functions');

//_exports_
`

// FirebaseJSON is the firebase.json template of SampleProject.
const FirebaseJSON = `{
  "hosting": {
    "public": "src/public",
    "rewrites": [
      "_rewrites_"
    ]
  },
  "functions": {
    "source": "src/functions"
  }
}
`

// SampleProject returns a project with a built Next.js app in src/app:
// a server-rendered root, a static about page, a dynamic product page and
// the error page. Extra files are merged over the sample.
func SampleProject(extra Files) Files {
	files := Files{
		"firebase.json":                       FirebaseJSON,
		".firebaserc":                         `{"projects": {"default": "sample"}}`,
		"package.json":                        `{"name": "sample"}`,
		"src/functions/index.js":              FunctionsIndex,
		"src/public/robots.txt":               "User-agent: *",
		"src/app/public/favicon.ico":          "icon",
		"src/app/.next/static/chunks/main.js": "chunk",
		"src/app/.next/serverless/pages-manifest.json": `{
  "/": "pages/index.js",
  "/index": "pages/index.js",
  "/about": "pages/about.html",
  "/product/[pid]": "pages/product/[pid].js",
  "/_error": "pages/_error.js"
}`,
		"src/app/.next/serverless/pages/index.js":         "module.exports.render = () => 'index';",
		"src/app/.next/serverless/pages/about.html":       "<h1>About</h1>",
		"src/app/.next/serverless/pages/product/[pid].js": "module.exports.render = () => 'product';",
		"src/app/.next/serverless/pages/_error.js":        "module.exports.render = () => 'error';",
	}
	maps.Copy(files, extra)
	return files
}
