// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"bytes"
	"encoding/json"
	"regexp"
	"slices"
	"strings"
)

var (
	// "[...slug]" and the optional "[[...slug]]" match any number of segments.
	catchAllSegment = regexp.MustCompile(`\[\[?\.\.\.[^/\]]+\]\]?`)
	dynamicSegment  = regexp.MustCompile(`\[[^/\]]+\]`)
)

type (
	// Rewrite is one Firebase Hosting rewrite rule. Exactly one of
	// Destination and Function is set.
	Rewrite struct {
		Source      string `json:"source"`
		Destination string `json:"destination,omitempty"`
		Function    string `json:"function,omitempty"`
	}

	// RewriteSet holds the sorted rules of one environment.
	RewriteSet struct {
		Environment Environment
		Rules       []Rewrite
	}
)

// String serializes the rule as compact JSON with "source" first.
func (r Rewrite) String() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of strings cannot fail.
	_ = enc.Encode(r)
	return strings.TrimSuffix(buf.String(), "\n")
}

// String joins the serialized rules with ",\n", ready to replace the
// rewrites placeholder of firebase.json.
func (s RewriteSet) String() string {
	lines := make([]string, len(s.Rules))
	for i, rule := range s.Rules {
		lines[i] = rule.String()
	}
	return strings.Join(lines, ",\n")
}

// CompareRewrites orders rules by source, with the catch-all last.
func CompareRewrites(a, b Rewrite) int {
	switch {
	case a.Source == b.Source:
		return 0
	case a.Source == CatchAllSource:
		return 1
	case b.Source == CatchAllSource:
		return -1
	default:
		return strings.Compare(a.Source, b.Source)
	}
}

// Source returns the rewrite source of a page: its key with every catch-all
// segment replaced by "**" and every other dynamic segment by "*", or the
// catch-all for the error page. An optional catch-all route also answers
// its parent path, which "**" does not cover; the parent needs its own page.
func Source(page Page) (string, error) {
	if page.Special {
		if page.Key == ErrorKey {
			return CatchAllSource, nil
		}
		return "", &UnsupportedRouteSourceError{Page: page}
	}
	source := catchAllSegment.ReplaceAllString(page.Key, "**")
	return dynamicSegment.ReplaceAllString(source, "*"), nil
}

// Destination returns the hosting path of a static page: Path without the
// leading pages directory.
func Destination(page Page) (string, error) {
	rest, ok := strings.CutPrefix(page.Path, PagesDir+"/")
	if !ok {
		return "", &UnsupportedDestinationError{Page: page}
	}
	return rest, nil
}

// RewriteFor builds the rule of one page in one environment.
func RewriteFor(page Page, env Environment) (Rewrite, error) {
	switch page.Kind {
	case KindFunction:
		source, err := Source(page)
		if err != nil {
			return Rewrite{}, err
		}
		return Rewrite{Source: source, Function: QualifiedFunctionName(page, env)}, nil
	case KindStatic:
		source, err := Source(page)
		if err != nil {
			return Rewrite{}, err
		}
		destination, err := Destination(page)
		if err != nil {
			return Rewrite{}, err
		}
		return Rewrite{Source: source, Destination: destination}, nil
	default:
		return Rewrite{}, &UnsupportedExtensionError{Page: page}
	}
}

// Rewrites builds one sorted RewriteSet per environment. Pass
// EnvironmentsOf(nil) (or nil) for a build without environments.
// Rules with equal sources keep their page order.
func Rewrites(pages []Page, envs []Environment) ([]RewriteSet, error) {
	if len(envs) == 0 {
		envs = []Environment{NoEnvironment()}
	}
	if err := CheckFunctionNames(pages, envs); err != nil {
		return nil, err
	}

	sets := make([]RewriteSet, 0, len(envs))
	for _, env := range envs {
		rules := make([]Rewrite, 0, len(pages))
		for _, page := range pages {
			rule, err := RewriteFor(page, env)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		slices.SortStableFunc(rules, CompareRewrites)
		sets = append(sets, RewriteSet{Environment: env, Rules: rules})
	}
	return sets, nil
}
