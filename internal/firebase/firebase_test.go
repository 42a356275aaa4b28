// SPDX-License-Identifier: MPL-2.0

package firebase

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want Config
	}{
		{
			name: "defaults",
			json: `{}`,
			want: Config{},
		},
		{
			name: "hosting object",
			json: `{"hosting": {"public": "src/public", "rewrites": ["_rewrites_"]}, "functions": {"source": "src/functions"}}`,
			want: Config{Hosting: Hosting{Public: "src/public"}, HostingCount: 1, FunctionsSource: "src/functions"},
		},
		{
			name: "hosting list uses first entry",
			json: `{"hosting": [{"target": "app", "public": "dist/app"}, {"target": "docs", "public": "dist/docs"}]}`,
			want: Config{Hosting: Hosting{Public: "dist/app", Target: "app"}, HostingCount: 2},
		},
		{
			name: "functions codebases",
			json: `{"functions": [{"source": "fns", "codebase": "default"}]}`,
			want: Config{FunctionsSource: "fns"},
		},
		{
			name: "unknown fields kept open",
			json: `{"firestore": {"rules": "firestore.rules"}, "hosting": {"site": "my-site", "cleanUrls": true}}`,
			want: Config{Hosting: Hosting{Site: "my-site"}, HostingCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tt.json), FileName)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{"public not a string", `{"hosting": {"public": 3}}`},
		{"empty public", `{"hosting": {"public": ""}}`},
		{"empty hosting list", `{"hosting": []}`},
		{"syntax error", `{"hosting": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.json), FileName)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfig_Dirs(t *testing.T) {
	t.Parallel()

	var empty Config
	if empty.PublicDir() != DefaultPublicDir || empty.FunctionsDir() != DefaultFunctionsDir {
		t.Errorf("defaults = %q, %q", empty.PublicDir(), empty.FunctionsDir())
	}
	custom := Config{Hosting: Hosting{Public: "web"}, FunctionsSource: "api"}
	if custom.PublicDir() != "web" || custom.FunctionsDir() != "api" {
		t.Errorf("custom = %q, %q", custom.PublicDir(), custom.FunctionsDir())
	}
}

func TestHosting_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hosting Hosting
		want    string
	}{
		{Hosting{}, "default"},
		{Hosting{Target: "app"}, "app"},
		{Hosting{Site: "my-site", Target: "app"}, "my-site"},
	}
	for _, tt := range tests {
		if got := tt.hosting.Name(); got != tt.want {
			t.Errorf("%+v.Name() = %q, want %q", tt.hosting, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/project/firebase.json", []byte(`{"hosting": {"public": "static"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fsys, "/project/firebase.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PublicDir() != "static" {
		t.Errorf("PublicDir() = %q, want %q", cfg.PublicDir(), "static")
	}

	if _, err := Load(fsys, "/elsewhere/firebase.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() missing file error = %v, want ErrNotFound", err)
	}
}
