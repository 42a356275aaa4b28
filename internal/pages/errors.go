// SPDX-License-Identifier: MPL-2.0

package pages

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedRouteSource is returned for special pages other than the error page.
	ErrUnsupportedRouteSource = errors.New("unsupported route source")
	// ErrUnsupportedDestination is returned for static pages outside the pages directory.
	ErrUnsupportedDestination = errors.New("unsupported destination")
	// ErrUnsupportedExtension is returned for artifacts that are neither .html nor .js.
	ErrUnsupportedExtension = errors.New("unsupported extension")
	// ErrFunctionNameCollision is returned when two pages derive the same function name.
	ErrFunctionNameCollision = errors.New("function name collision")
)

type (
	// UnsupportedRouteSourceError wraps ErrUnsupportedRouteSource.
	UnsupportedRouteSourceError struct {
		Page Page
	}

	// UnsupportedDestinationError wraps ErrUnsupportedDestination.
	UnsupportedDestinationError struct {
		Page Page
	}

	// UnsupportedExtensionError wraps ErrUnsupportedExtension.
	UnsupportedExtensionError struct {
		Page Page
	}

	// FunctionNameCollisionError wraps ErrFunctionNameCollision and names both pages.
	FunctionNameCollisionError struct {
		Name   string
		First  Page
		Second Page
	}
)

func (e *UnsupportedRouteSourceError) Error() string {
	return fmt.Sprintf("no way to handle source of %q (route %q): only %s can be rewritten", e.Page.Path, e.Page.Key, ErrorKey)
}

func (e *UnsupportedRouteSourceError) Unwrap() error { return ErrUnsupportedRouteSource }

func (e *UnsupportedDestinationError) Error() string {
	return fmt.Sprintf("no way to handle destination of %q (route %q): static pages must live in %s/", e.Page.Path, e.Page.Key, PagesDir)
}

func (e *UnsupportedDestinationError) Unwrap() error { return ErrUnsupportedDestination }

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("no way to handle extension %q of %q (route %q)", e.Page.Ext, e.Page.Path, e.Page.Key)
}

func (e *UnsupportedExtensionError) Unwrap() error { return ErrUnsupportedExtension }

func (e *FunctionNameCollisionError) Error() string {
	return fmt.Sprintf("function name %q is derived from both %q and %q", e.Name, e.First.Path, e.Second.Path)
}

func (e *FunctionNameCollisionError) Unwrap() error { return ErrFunctionNameCollision }
