// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"path"
	"strings"

	"github.com/LowieHuyghe/next-to-firebase/pkg/fspath"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

const (
	// StaticExt is the artifact extension of pre-rendered pages.
	StaticExt = ".html"
	// FunctionExt is the artifact extension of server-rendered pages.
	FunctionExt = ".js"

	// IndexKey is the manifest key that duplicates RootKey.
	IndexKey = "/index"
	// RootKey is the canonical manifest key of the root page.
	RootKey = "/"
	// ErrorKey is the only special page with rewrite semantics.
	ErrorKey = "/_error"
	// CatchAllSource is the rewrite source used for the error page.
	CatchAllSource = "**/**"
	// PagesDir is the build directory every static artifact lives under.
	PagesDir = "pages"
)

// Kind classifies the artifact of a page.
type Kind int

const (
	// KindUnsupported is any artifact that is neither static nor a function.
	KindUnsupported Kind = iota
	// KindStatic is a pre-rendered HTML page served by Firebase Hosting.
	KindStatic
	// KindFunction is a server-rendered page served by a Cloud Function.
	KindFunction
)

// String returns a human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindFunction:
		return "function"
	default:
		return "unsupported"
	}
}

// Page is one route of the built application.
type Page struct {
	// Key is the route as listed in the manifest, e.g. "/product/[pid]".
	Key string
	// Path is the slash-separated artifact path relative to the serverless dir.
	Path string
	// Ext is the extension of Path, including the dot.
	Ext string
	// PathNoExt is Path without Ext.
	PathNoExt string
	// AbsPath is the artifact location on disk.
	AbsPath types.FilesystemPath
	// Special is set for reserved routes whose last segment starts with "_".
	Special bool
	// Kind is derived from Ext.
	Kind Kind
}

// Classify builds the Page for a single manifest entry.
func Classify(key, artifactPath string, serverlessDir types.FilesystemPath) Page {
	ext := path.Ext(artifactPath)
	return Page{
		Key:       key,
		Path:      artifactPath,
		Ext:       ext,
		PathNoExt: strings.TrimSuffix(artifactPath, ext),
		AbsPath:   fspath.JoinStr(serverlessDir, artifactPath),
		Special:   strings.HasPrefix(path.Base(key), "_"),
		Kind:      kindOf(ext),
	}
}

func kindOf(ext string) Kind {
	switch ext {
	case StaticExt:
		return KindStatic
	case FunctionExt:
		return KindFunction
	default:
		return KindUnsupported
	}
}
