// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/LowieHuyghe/next-to-firebase/internal/app/build"
	"github.com/LowieHuyghe/next-to-firebase/internal/watch"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

// ExitError signals a non-zero exit code without calling os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps a failure to ExitUsage when the command line itself is
// incomplete and to ExitFailure otherwise.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, build.ErrMissingArguments),
		errors.Is(err, build.ErrUnsafeOutDir),
		errors.Is(err, types.ErrInvalidEnvironmentName),
		errors.Is(err, watch.ErrInvalidWatchConfig),
		errors.Is(err, errWatchDryRun):
		return types.ExitUsage
	default:
		return types.ExitFailure
	}
}
