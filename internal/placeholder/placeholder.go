// SPDX-License-Identifier: MPL-2.0

// Package placeholder substitutes generated text for a marker inside a
// template file while keeping the marker's indentation.
package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// ExportsMarker is replaced by the function exports in the functions index file.
	ExportsMarker = "//_exports_"
	// RewritesMarker is replaced by the rewrite rules in firebase.json.
	RewritesMarker = `"_rewrites_"`
)

// ErrMarkerNotFound is returned when a template does not contain its marker.
var ErrMarkerNotFound = errors.New("did not match anything")

// MarkerNotFoundError wraps ErrMarkerNotFound with the missing marker.
type MarkerNotFoundError struct {
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("marker %s: %s", e.Marker, ErrMarkerNotFound)
}

func (e *MarkerNotFoundError) Unwrap() error { return ErrMarkerNotFound }

// Fill replaces every occurrence of marker in template with data. The
// horizontal whitespace in front of the first occurrence is prefixed to every
// line of data, so multi-line data lines up with the marker.
func Fill(template, marker, data string) (string, error) {
	re := regexp.MustCompile(`([ \t]*)` + regexp.QuoteMeta(marker))
	match := re.FindStringSubmatch(template)
	if match == nil {
		return "", &MarkerNotFoundError{Marker: marker}
	}
	spacing := match[1]
	indented := spacing + strings.ReplaceAll(data, "\n", "\n"+spacing)
	return re.ReplaceAllLiteralString(template, indented), nil
}
