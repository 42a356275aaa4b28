// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure the user can act on: what the tool was doing,
	// on which file, and what to try next. Build it with ErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load pages manifest").
	//		WithResource(".next/serverless/pages-manifest.json").
	//		WithIssue(issue.ManifestNotFoundId).
	//		WithSuggestion("Run 'next build' first").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase, e.g. "load firebase.json".
		Operation string
		// Resource is the file or directory involved, if any.
		Resource string
		// Suggestions are printed below the error line.
		Suggestions []string
		// Cause is the underlying error.
		Cause error
		// Issue links the failure to a catalog entry; 0 means none.
		Issue Id
	}

	// ErrorContext collects the fields of an ActionableError.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
		issue       Id
	}
)

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders what goes below the error line: the suggestions, and in
// verbose mode the error chain starting at e. It is empty when there is
// nothing to add.
//
//	Suggestions:
//	  • Run 'next build' first
//	Error chain:
//	  1. failed to load pages manifest: ...
//	  2. pages manifest not found
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	if len(e.Suggestions) > 0 {
		msg.WriteString("Suggestions:")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
		msg.WriteString("\n")
	}
	if verbose {
		msg.WriteString(Chain(e))
	}
	return msg.String()
}

// Chain lists err and every error it wraps, one numbered line each. Joined
// errors are followed through their first branch only.
func Chain(err error) string {
	if err == nil {
		return ""
	}
	var msg strings.Builder
	msg.WriteString("Error chain:")
	depth := 1
	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&msg, "\n  %d. %s", depth, cause.Error())
		depth++
	}
	msg.WriteString("\n")
	return msg.String()
}

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation sets the operation, a verb phrase such as "clean output directory".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the file or directory involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithIssue links a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// BuildError returns the ActionableError, or nil when no operation was set.
// The suggestions are copied, so the context can be reused.
func (c *ErrorContext) BuildError() error {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: append([]string(nil), c.suggestions...),
		Cause:       c.cause,
		Issue:       c.issue,
	}
}
