// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidEnvironmentName is the sentinel error wrapped by InvalidEnvironmentNameError.
	ErrInvalidEnvironmentName = errors.New("invalid environment name")

	environmentNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

type (
	// EnvironmentName names a deployment target such as "staging" or "eu-prod2".
	// It starts with a letter followed by letters, digits, '_' or '-'. The name
	// ends up in a file name (firebase.<env>.json) and in Cloud Function names.
	EnvironmentName string

	// InvalidEnvironmentNameError is returned when an EnvironmentName does not
	// match the allowed characters.
	InvalidEnvironmentNameError struct {
		Value EnvironmentName
	}
)

// String returns the string representation of the EnvironmentName.
func (n EnvironmentName) String() string { return string(n) }

// Validate returns an error unless the name is a letter followed by letters,
// digits, '_' or '-'.
func (n EnvironmentName) Validate() error {
	if !environmentNamePattern.MatchString(string(n)) {
		return &InvalidEnvironmentNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidEnvironmentNameError) Error() string {
	return fmt.Sprintf("invalid environment name %q: must start with a letter and contain only letters, digits, '_' or '-'", e.Value)
}

// Unwrap returns ErrInvalidEnvironmentName for errors.Is() compatibility.
func (e *InvalidEnvironmentNameError) Unwrap() error { return ErrInvalidEnvironmentName }

// ParseEnvironmentNames splits a comma-separated list, trims every entry and
// drops empty ones. The remaining names are validated in order.
func ParseEnvironmentNames(list string) ([]EnvironmentName, error) {
	var names []EnvironmentName
	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := EnvironmentName(part)
		if err := name.Validate(); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
