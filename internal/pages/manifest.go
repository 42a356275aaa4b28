// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

type (
	// ManifestEntry maps one route key to its artifact path.
	ManifestEntry struct {
		Key  string
		Path string
	}

	// Manifest is the pages-manifest.json of a serverless Next.js build.
	// Entries keep the key order of the JSON object.
	Manifest []ManifestEntry

	// NormalizeOptions controls Normalize.
	NormalizeOptions struct {
		// SkipExistenceCheck keeps entries whose artifact is missing on disk.
		SkipExistenceCheck bool
		// Exists reports whether an artifact exists. Defaults to os.Stat.
		Exists func(types.FilesystemPath) bool
	}
)

// UnmarshalJSON decodes a JSON object of string values, preserving key order.
// A repeated key keeps its first position and its last value.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("pages manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("pages manifest: expected a JSON object")
	}

	entries := Manifest{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("pages manifest: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("pages manifest: unexpected token %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("pages manifest: value of %q: %w", key, err)
		}
		if i, seen := index[key]; seen {
			entries[i].Path = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, ManifestEntry{Key: key, Path: value})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("pages manifest: %w", err)
	}

	*m = entries
	return nil
}

// ParseManifest decodes pages-manifest.json content.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Normalize turns manifest entries into pages, in manifest order.
// The "/index" entry is dropped since the build lists the same page under "/",
// and unless opts.SkipExistenceCheck is set, entries whose artifact was not
// emitted are dropped as well. Unsupported extensions are kept; the
// generators reject them.
func Normalize(manifest Manifest, serverlessDir types.FilesystemPath, opts NormalizeOptions) []Page {
	exists := opts.Exists
	if exists == nil {
		exists = fileExists
	}

	pages := make([]Page, 0, len(manifest))
	for _, entry := range manifest {
		if entry.Key == IndexKey {
			continue
		}
		page := Classify(entry.Key, entry.Path, serverlessDir)
		if !opts.SkipExistenceCheck && !exists(page.AbsPath) {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

func fileExists(p types.FilesystemPath) bool {
	_, err := os.Stat(string(p))
	return err == nil
}
