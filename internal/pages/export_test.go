// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

func mustEnvNames(t *testing.T, list string) []types.EnvironmentName {
	t.Helper()
	names, err := types.ParseEnvironmentNames(list)
	if err != nil {
		t.Fatalf("ParseEnvironmentNames(%q) error = %v", list, err)
	}
	return names
}

func TestExports(t *testing.T) {
	t.Parallel()

	set, err := Exports(routeFixture(), nil, ExportOptions{})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}

	want := `exports.pages_error = functions.https.onRequest(require('./pages/_error').render);
exports.pagesIndex = functions.https.onRequest(require('./pages/index').render);
exports.pagesIndexx = functions.https.onRequest(require('./pages/indexx').render);
exports.pagesIndexPage = functions.https.onRequest(require('./pages/index/page').render);
exports.pagesSuperSuperDeep = functions.https.onRequest(require('./pages/super/super/deep').render);
exports.pagesProduct_pid_ = functions.https.onRequest(require('./pages/product/[pid]').render);`
	if diff := cmp.Diff(want, set.String()); diff != "" {
		t.Errorf("Exports() mismatch (-want +got):\n%s", diff)
	}
}

func TestExports_StaticAndUnsupportedContributeNothing(t *testing.T) {
	t.Parallel()

	set, err := Exports([]Page{
		page("/about", "pages/about.html"),
		page("/styles", "pages/styles.css"),
	}, nil, ExportOptions{})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}
	if len(set.Exports) != 0 || set.String() != "" {
		t.Errorf("Exports() = %q, want empty", set.String())
	}
}

func TestExports_Environments(t *testing.T) {
	t.Parallel()

	pages := []Page{
		page("/", "pages/index.js"),
		page("/about", "pages/about.html"),
		page("/_error", "pages/_error.js"),
	}
	set, err := Exports(pages, EnvironmentsOf(mustEnvNames(t, "dev, prod")), ExportOptions{})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}

	want := `exports.dev_pagesIndex = functions.https.onRequest(require('./pages/index').render);
exports.prod_pagesIndex = exports.dev_pagesIndex;
exports.dev_pages_error = functions.https.onRequest(require('./pages/_error').render);
exports.prod_pages_error = exports.dev_pages_error;`
	if diff := cmp.Diff(want, set.String()); diff != "" {
		t.Errorf("Exports() mismatch (-want +got):\n%s", diff)
	}

	for _, export := range set.Exports {
		name, _ := export.Environment.Name()
		if name == "dev" {
			if export.IsAlias() {
				t.Errorf("primary export %q is an alias", export.Name)
			}
			continue
		}
		if !export.IsAlias() || strings.Contains(export.String(), "onRequest") {
			t.Errorf("non-primary export %q constructs a handler: %s", export.Name, export)
		}
	}
}

func TestExports_Region(t *testing.T) {
	t.Parallel()

	set, err := Exports([]Page{page("/", "pages/index.js")}, nil, ExportOptions{Region: "europe-west1"})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}
	want := `exports.pagesIndex = functions.region('europe-west1').https.onRequest(require('./pages/index').render);`
	if got := set.String(); got != want {
		t.Errorf("Exports() = %s, want %s", got, want)
	}
}

func TestExports_Idempotent(t *testing.T) {
	t.Parallel()

	envs := EnvironmentsOf(mustEnvNames(t, "staging,production"))
	first, err := Exports(routeFixture(), envs, ExportOptions{})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}
	second, err := Exports(routeFixture(), envs, ExportOptions{})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}
	if first.String() != second.String() {
		t.Error("Exports() is not deterministic")
	}

	r1, err := Rewrites(routeFixture(), envs)
	if err != nil {
		t.Fatalf("Rewrites() error = %v", err)
	}
	r2, err := Rewrites(routeFixture(), envs)
	if err != nil {
		t.Fatalf("Rewrites() error = %v", err)
	}
	for i := range r1 {
		if r1[i].String() != r2[i].String() {
			t.Errorf("Rewrites() for %q is not deterministic", r1[i].Environment)
		}
	}
}

func TestExports_Collision(t *testing.T) {
	t.Parallel()

	_, err := Exports([]Page{
		page("/product/[id]", "pages/product/[id].js"),
		page("/product/_id_", "pages/product/_id_.js"),
	}, nil, ExportOptions{})
	if !errors.Is(err, ErrFunctionNameCollision) {
		t.Fatalf("Exports() error = %v, want ErrFunctionNameCollision", err)
	}
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	manifest, err := ParseManifest([]byte(`{"/": "pages/index.js", "/about": "pages/about.html", "/_error": "pages/_error.js"}`))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	pages := Normalize(manifest, testServerlessDir, NormalizeOptions{SkipExistenceCheck: true})

	rewrites, err := Rewrites(pages, nil)
	if err != nil {
		t.Fatalf("Rewrites() error = %v", err)
	}
	wantRules := []Rewrite{
		{Source: "/", Function: "pagesIndex"},
		{Source: "/about", Destination: "about.html"},
		{Source: "**/**", Function: "pages_error"},
	}
	if diff := cmp.Diff(wantRules, rewrites[0].Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}

	exports, err := Exports(pages, nil, ExportOptions{})
	if err != nil {
		t.Fatalf("Exports() error = %v", err)
	}
	var names []string
	for _, export := range exports.Exports {
		names = append(names, export.Name)
	}
	if diff := cmp.Diff([]string{"pagesIndex", "pages_error"}, names); diff != "" {
		t.Errorf("export names mismatch (-want +got):\n%s", diff)
	}
}
