// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/LowieHuyghe/next-to-firebase/internal/app/build"
	"github.com/LowieHuyghe/next-to-firebase/internal/config"
	"github.com/LowieHuyghe/next-to-firebase/internal/issue"
)

// ServiceError couples a failure with what the CLI renders before fang prints
// the error line itself. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog entry rendered with glamour.
	IssueID issue.Id
	// StyledMessage is optional pre-rendered text, such as suggestions.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// serviceErrorFor classifies err. The catalog entry comes from the actionable
// error when it names one, else from the build failure classes.
func serviceErrorFor(err error, verbose bool) *ServiceError {
	var (
		id      issue.Id
		details string
		ae      *issue.ActionableError
	)
	if errors.As(err, &ae) {
		id = ae.Issue
		details = ae.Format(verbose)
	} else if verbose {
		details = issue.Chain(err)
	}
	if id == 0 {
		id = build.IssueOf(err)
	}
	return newServiceError(err, id, styleDetails(details))
}

// styleDetails highlights the section headers of an issue.Format block.
func styleDetails(details string) string {
	details = strings.Replace(details, "Suggestions:", WarningStyle.Render("Suggestions:"), 1)
	return strings.Replace(details, "Error chain:", SubtitleStyle.Render("Error chain:"), 1)
}

// renderServiceError prints the styled message, then the catalog entry.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, glamourStyle string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if entry := issue.Get(svcErr.IssueID); entry != nil {
		rendered, err := entry.Render(glamourStyle)
		if err != nil {
			log.Warn("failed to render issue catalog entry", "issue", svcErr.IssueID, "err", err)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}

// glamourStyle picks the glamour style for a color scheme. Auto follows the
// terminal background.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}
