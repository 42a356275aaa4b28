// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnvironmentSeparator joins an environment prefix and a function name.
const EnvironmentSeparator = "_"

var (
	nonLetters = regexp.MustCompile(`[^A-Za-z]`)
	// Environment names may hold '-', which is not valid in a JS identifier.
	nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// FunctionName derives the Cloud Function name of a page from PathNoExt:
// "pages/product/[pid]" becomes "pagesProduct_pid_".
func FunctionName(page Page) string {
	segments := strings.Split(page.PathNoExt, "/")
	var b strings.Builder
	for i, segment := range segments {
		if i == 0 {
			b.WriteString(segment)
			continue
		}
		b.WriteString(upperFirst(segment))
	}
	return nonLetters.ReplaceAllString(b.String(), "_")
}

// QualifiedFunctionName prefixes FunctionName with the environment, if any:
// "staging_pagesIndex", "eu_prod2_pagesIndex" for "eu-prod2".
func QualifiedFunctionName(page Page, env Environment) string {
	name := FunctionName(page)
	envName, ok := env.Name()
	if !ok {
		return name
	}
	return nonIdentifier.ReplaceAllString(string(envName), "_") + EnvironmentSeparator + name
}

// CheckFunctionNames fails when two function pages would be exported under
// the same name in any of the environments.
func CheckFunctionNames(pages []Page, envs []Environment) error {
	if len(envs) == 0 {
		envs = []Environment{NoEnvironment()}
	}
	owners := make(map[string]Page)
	for _, page := range pages {
		if page.Kind != KindFunction {
			continue
		}
		for _, env := range envs {
			name := QualifiedFunctionName(page, env)
			if first, taken := owners[name]; taken {
				return &FunctionNameCollisionError{Name: name, First: first, Second: page}
			}
			owners[name] = page
		}
	}
	return nil
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
