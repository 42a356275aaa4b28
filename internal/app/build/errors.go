// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"io/fs"

	"github.com/LowieHuyghe/next-to-firebase/internal/firebase"
	"github.com/LowieHuyghe/next-to-firebase/internal/issue"
	"github.com/LowieHuyghe/next-to-firebase/internal/nextapp"
	"github.com/LowieHuyghe/next-to-firebase/internal/pages"
	"github.com/LowieHuyghe/next-to-firebase/internal/placeholder"
)

// hint links a failure class to its catalog entry and a one-line suggestion.
type hint struct {
	target     error
	id         issue.Id
	suggestion string
}

var hints = []hint{
	{ErrMissingArguments, issue.MissingArgumentsId, "Pass --next and --out, or set them in next-to-firebase.cue"},
	{ErrUnsafeOutDir, issue.MissingArgumentsId, "Choose an output directory below the project root, e.g. --out dist"},
	{nextapp.ErrManifestNotFound, issue.ManifestNotFoundId, "Run 'next build' with the serverless target first"},
	{firebase.ErrNotFound, issue.FirebaseConfigNotFoundId, "Run 'firebase init' in the project root or pass --root"},
	{firebase.ErrInvalid, issue.FirebaseConfigInvalidId, "Check hosting.public and functions.source in firebase.json"},
	{pages.ErrUnsupportedRouteSource, issue.UnsupportedRouteId, "Only the _error page can be served as a catch-all"},
	{pages.ErrUnsupportedDestination, issue.UnsupportedDestinationId, "Static pages must be emitted below the pages directory"},
	{pages.ErrUnsupportedExtension, issue.UnsupportedExtensionId, "Only .html and .js pages can be deployed"},
	{pages.ErrFunctionNameCollision, issue.FunctionNameCollisionId, "Rename one of the pages so their function names differ"},
	{placeholder.ErrMarkerNotFound, issue.TemplateMarkerNotFoundId, "Add \"_rewrites_\" to firebase.json and //_exports_ to the functions index.js"},
	{fs.ErrPermission, issue.PermissionDeniedId, "Check the permissions of the output directory"},
}

// IssueOf returns the catalog entry matching err, or 0.
func IssueOf(err error) issue.Id {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.id
		}
	}
	return 0
}

func wrap(operation, resource string, err error) error {
	ctx := issue.NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)
	for _, h := range hints {
		if errors.Is(err, h.target) {
			ctx = ctx.WithIssue(h.id).WithSuggestion(h.suggestion)
			break
		}
	}
	return ctx.BuildError()
}
