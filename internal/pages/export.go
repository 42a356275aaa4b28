// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"fmt"
	"strings"
)

type (
	// ExportOptions tunes the generated handler expression.
	ExportOptions struct {
		// Region pins the functions to a region, e.g. "europe-west1".
		Region string
	}

	// Export binds a function name in the functions index file. When AliasOf
	// is set the export reuses that export's handler.
	Export struct {
		Name        string
		Environment Environment
		Page        Page
		AliasOf     string
		region      string
	}

	// ExportSet is the ordered list of exports of a build.
	ExportSet struct {
		Exports []Export
	}
)

// IsAlias reports whether the export aliases the primary environment's export.
func (e Export) IsAlias() bool {
	return e.AliasOf != ""
}

// String renders the export statement.
func (e Export) String() string {
	if e.IsAlias() {
		return fmt.Sprintf("exports.%s = exports.%s;", e.Name, e.AliasOf)
	}
	https := "functions.https"
	if e.region != "" {
		https = fmt.Sprintf("functions.region('%s').https", e.region)
	}
	return fmt.Sprintf("exports.%s = %s.onRequest(require('./%s').render);", e.Name, https, e.Page.PathNoExt)
}

// String joins the export statements with newlines, ready to replace the
// exports placeholder of the functions index file.
func (s ExportSet) String() string {
	lines := make([]string, len(s.Exports))
	for i, export := range s.Exports {
		lines[i] = export.String()
	}
	return strings.Join(lines, "\n")
}

// Exports builds the exports of all function pages, page by page and then
// environment by environment. The first environment is primary: it constructs
// the handler, the others alias it. Pages of other kinds contribute nothing.
func Exports(pages []Page, envs []Environment, opts ExportOptions) (ExportSet, error) {
	if len(envs) == 0 {
		envs = []Environment{NoEnvironment()}
	}
	if err := CheckFunctionNames(pages, envs); err != nil {
		return ExportSet{}, err
	}

	var set ExportSet
	for _, page := range pages {
		if page.Kind != KindFunction {
			continue
		}
		primary := ""
		for i, env := range envs {
			export := Export{
				Name:        QualifiedFunctionName(page, env),
				Environment: env,
				Page:        page,
				region:      opts.Region,
			}
			if i == 0 {
				primary = export.Name
			} else {
				export.AliasOf = primary
			}
			set.Exports = append(set.Exports, export)
		}
	}
	return set, nil
}
