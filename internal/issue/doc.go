// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError wraps a failure with the operation, the resource involved and
// suggestions. The catalog (Get, Values) holds Markdown guidance for the known
// failure classes of a deployment build, rendered in the terminal with glamour.
package issue
