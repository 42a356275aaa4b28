// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	xslices "golang.org/x/exp/slices"
)

type (
	// Id identifies an entry of the issue catalog.
	Id int

	// MarkdownMsg is the Markdown body rendered for an issue.
	MarkdownMsg string

	// HttpLink is a documentation link shown below an issue.
	HttpLink string

	// Issue is a catalog entry with remediation guidance for a known failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

const (
	ManifestNotFoundId Id = iota + 1
	FirebaseConfigNotFoundId
	FirebaseConfigInvalidId
	ConfigLoadFailedId
	UnsupportedRouteId
	UnsupportedDestinationId
	UnsupportedExtensionId
	TemplateMarkerNotFoundId
	FunctionNameCollisionId
	MissingArgumentsId
	PermissionDeniedId
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return xslices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return xslices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No pages manifest found!

The Next.js build output does not contain ` + "`serverless/pages-manifest.json`" + `.

## Things you can try:
- Build the Next.js app first:
~~~
$ next build
~~~
- Make sure ` + "`target: 'serverless'`" + ` is set in next.config.js
- Check that ` + "`--next`" + ` points at the Next.js app directory
- If next.config.js sets a custom distDir, set ` + "`next_build_dir`" + ` in next-to-firebase.cue`,
		extLinks: []HttpLink{"https://nextjs.org/docs/api-reference/next.config.js/build-target"},
	}

	firebaseConfigNotFoundIssue = &Issue{
		id: FirebaseConfigNotFoundId,
		mdMsg: `
# No firebase.json found!

The project root must contain a firebase.json that acts as the template for the
generated configuration.

## Things you can try:
- Run ` + "`firebase init`" + ` in the project root
- Pass the project root explicitly with ` + "`--root`" + `
- Add the rewrites placeholder to the hosting section:
~~~json
{
  "hosting": {
    "public": "public",
    "rewrites": ["_rewrites_"]
  }
}
~~~`,
		extLinks: []HttpLink{"https://firebase.google.com/docs/hosting/full-config"},
	}

	firebaseConfigInvalidIssue = &Issue{
		id: FirebaseConfigInvalidId,
		mdMsg: `
# Invalid firebase.json!

firebase.json could not be parsed or does not match the expected shape.

## Things you can try:
- Check the JSON syntax (trailing commas are not allowed)
- ` + "`hosting.public`" + ` and ` + "`functions.source`" + ` must be strings
- ` + "`hosting`" + ` may be an object or a list of objects; only the first entry is used`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The next-to-firebase configuration file could not be read.

## Things you can try:
- Check the file syntax (CUE, TOML or YAML)
- Compare with the supported fields:
~~~cue
next:           "src/app"
out:            "dist"
environments:   ["staging", "production"]
next_build_dir: ".next"
functions: region: "europe-west1"
~~~
- Remove the file to fall back to command-line flags only`,
	}

	unsupportedRouteIssue = &Issue{
		id: UnsupportedRouteId,
		mdMsg: `
# Unsupported special page!

Pages whose name starts with an underscore are reserved by Next.js.
Only ` + "`_error`" + ` can be served, as the catch-all ` + "`**/**`" + ` rewrite.

## Things you can try:
- Rename the page so it does not start with an underscore
- Move shared logic into a component instead of a page`,
	}

	unsupportedDestinationIssue = &Issue{
		id: UnsupportedDestinationId,
		mdMsg: `
# Unsupported static page location!

Static pages must live below the ` + "`pages/`" + ` directory of the serverless build.

## Things you can try:
- Rebuild the app with the serverless target
- Check the pages-manifest.json entries for paths outside ` + "`pages/`" + ``,
	}

	unsupportedExtensionIssue = &Issue{
		id: UnsupportedExtensionId,
		mdMsg: `
# Unsupported page type!

Only ` + "`.html`" + ` (static) and ` + "`.js`" + ` (server-rendered) pages can be deployed.

## Things you can try:
- Check the pages-manifest.json for unexpected entries
- Make sure the build used the serverless target`,
	}

	templateMarkerNotFoundIssue = &Issue{
		id: TemplateMarkerNotFoundId,
		mdMsg: `
# Placeholder not found!

A template file is missing the placeholder where generated content is inserted.

## Expected placeholders:
- firebase.json: ` + "`\"_rewrites_\"`" + ` inside ` + "`hosting.rewrites`" + `
- functions index.js: a ` + "`//_exports_`" + ` comment line

## Example functions/index.js:
~~~js
const functions = require('firebase-functions');

//_exports_
~~~`,
	}

	functionNameCollisionIssue = &Issue{
		id: FunctionNameCollisionId,
		mdMsg: `
# Function name collision!

Two pages map to the same Cloud Function name. Names are derived from the page
path: path separators are dropped, following segments are capitalised and every
character that is not a letter becomes an underscore.

## Things you can try:
- Rename one of the pages (e.g. ` + "`[id]`" + ` and ` + "`(id)`" + ` collide)
- Avoid page names that differ only in punctuation`,
	}

	missingArgumentsIssue = &Issue{
		id: MissingArgumentsId,
		mdMsg: `
# Missing required arguments!

Both the Next.js app directory and the output directory are required.

~~~
$ next-to-firebase -n src/app -o dist
~~~

They can also be set in next-to-firebase.cue as ` + "`next`" + ` and ` + "`out`" + `.`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The output directory could not be cleaned or written.

## Things you can try:
- Check the permissions of the output directory
- Make sure no other process (e.g. the Firebase emulator) holds files open`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():       manifestNotFoundIssue,
		firebaseConfigNotFoundIssue.Id(): firebaseConfigNotFoundIssue,
		firebaseConfigInvalidIssue.Id():  firebaseConfigInvalidIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		unsupportedRouteIssue.Id():       unsupportedRouteIssue,
		unsupportedDestinationIssue.Id(): unsupportedDestinationIssue,
		unsupportedExtensionIssue.Id():   unsupportedExtensionIssue,
		templateMarkerNotFoundIssue.Id(): templateMarkerNotFoundIssue,
		functionNameCollisionIssue.Id():  functionNameCollisionIssue,
		missingArgumentsIssue.Id():       missingArgumentsIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
	}
)

// Values returns all catalog entries ordered by id.
func Values() []*Issue {
	values := slices.Collect(maps.Values(issues))
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
