// SPDX-License-Identifier: MPL-2.0

// Package firebase reads the firebase.json project file: where the hosting
// public directory and the functions source directory live.
package firebase

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/LowieHuyghe/next-to-firebase/pkg/cueutil"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

const (
	// FileName is the Firebase project file in the project root.
	FileName = "firebase.json"
	// DefaultPublicDir is used when hosting.public is not set.
	DefaultPublicDir = "public"
	// DefaultFunctionsDir is used when functions.source is not set.
	DefaultFunctionsDir = "functions"
)

//go:embed firebase_schema.cue
var schema []byte

var (
	// ErrNotFound is returned when firebase.json does not exist.
	ErrNotFound = errors.New("firebase.json not found")
	// ErrInvalid is returned when firebase.json does not match the expected shape.
	ErrInvalid = errors.New("invalid firebase.json")
)

type (
	// Hosting is the part of one hosting configuration we need.
	Hosting struct {
		Public string
		Site   string
		Target string
	}

	// Config is the resolved firebase.json. Only the first hosting and the
	// first functions entry are used when lists are given.
	Config struct {
		Hosting Hosting
		// HostingCount is the number of hosting configurations in the file.
		HostingCount int
		// FunctionsSource is the functions source directory, relative to the root.
		FunctionsSource string
	}

	document struct {
		Hosting   any `json:"hosting,omitempty"`
		Functions any `json:"functions,omitempty"`
	}
)

// PublicDir returns hosting.public or DefaultPublicDir.
func (c *Config) PublicDir() string {
	if c.Hosting.Public == "" {
		return DefaultPublicDir
	}
	return c.Hosting.Public
}

// Name identifies the hosting configuration in messages: its site, else its
// deploy target, else "default".
func (h Hosting) Name() string {
	switch {
	case h.Site != "":
		return h.Site
	case h.Target != "":
		return h.Target
	default:
		return "default"
	}
}

// FunctionsDir returns functions.source or DefaultFunctionsDir.
func (c *Config) FunctionsDir() string {
	if c.FunctionsSource == "" {
		return DefaultFunctionsDir
	}
	return c.FunctionsSource
}

// Load reads and validates the firebase.json at path.
func Load(fsys afero.Fs, path types.FilesystemPath) (*Config, error) {
	data, err := afero.ReadFile(fsys, string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, string(path))
}

// Parse validates firebase.json content against the embedded schema.
func Parse(data []byte, filename string) (*Config, error) {
	result, err := cueutil.ParseAndDecode[document](schema, data, "#FirebaseJSON", cueutil.WithFilename(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := &Config{}
	hostings := entries(result.Value.Hosting)
	cfg.HostingCount = len(hostings)
	if len(hostings) > 0 {
		cfg.Hosting = Hosting{
			Public: stringField(hostings[0], "public"),
			Site:   stringField(hostings[0], "site"),
			Target: stringField(hostings[0], "target"),
		}
	}
	if functions := entries(result.Value.Functions); len(functions) > 0 {
		cfg.FunctionsSource = stringField(functions[0], "source")
	}
	return cfg, nil
}

// entries normalizes an object-or-list field to a list of objects.
func entries(v any) []map[string]any {
	switch v := v.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
