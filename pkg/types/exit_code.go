// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

const (
	// ExitSuccess is returned when the output tree was generated.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for any generation failure.
	ExitFailure ExitCode = 1
	// ExitUsage is returned when the command line is incomplete or malformed.
	ExitUsage ExitCode = 2
)

// ExitCode represents a process exit status code.
// The zero value (0) means success.
type ExitCode int

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
