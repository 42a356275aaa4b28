// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var errMarker = errors.New("marker //_exports_: did not match anything")

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "generate rewrites"},
			want: "failed to generate rewrites",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load firebase.json", Resource: "/project/firebase.json"},
			want: "failed to load firebase.json: /project/firebase.json",
		},
		{
			name: "with cause",
			err:  &ActionableError{Operation: "fill template", Cause: errMarker},
			want: "failed to fill template: " + errMarker.Error(),
		},
		{
			name: "resource and cause",
			err: &ActionableError{
				Operation: "clean output directory",
				Resource:  "/project/dist",
				Cause:     fs.ErrPermission,
			},
			want: "failed to clean output directory: /project/dist: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("rebuild: %w", &ActionableError{Operation: "copy pages", Cause: fs.ErrPermission})
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("errors.Is should reach the cause through the actionable error")
	}
	var ae *ActionableError
	if !errors.As(wrapped, &ae) || ae.Operation != "copy pages" {
		t.Errorf("errors.As() = %v, want the copy pages error", ae)
	}
	if (&ActionableError{Operation: "copy pages"}).Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	withSuggestions := &ActionableError{
		Operation:   "fill template",
		Resource:    "dist/src/functions/index.js",
		Suggestions: []string{"Add //_exports_ to index.js", "Check functions.source in firebase.json"},
		Cause:       fmt.Errorf("read: %w", errMarker),
	}

	tests := []struct {
		name    string
		err     *ActionableError
		verbose bool
		want    string
	}{
		{
			name: "nothing to add",
			err:  &ActionableError{Operation: "generate rewrites"},
			want: "",
		},
		{
			name: "suggestions",
			err:  withSuggestions,
			want: "Suggestions:\n  • Add //_exports_ to index.js\n  • Check functions.source in firebase.json\n",
		},
		{
			name:    "verbose appends the chain from the error itself",
			err:     withSuggestions,
			verbose: true,
			want: "Suggestions:\n  • Add //_exports_ to index.js\n  • Check functions.source in firebase.json\n" +
				"Error chain:\n" +
				"  1. " + withSuggestions.Error() + "\n" +
				"  2. read: " + errMarker.Error() + "\n" +
				"  3. " + errMarker.Error() + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.err.Format(tt.verbose)); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	if got := Chain(nil); got != "" {
		t.Errorf("Chain(nil) = %q, want empty", got)
	}
	got := Chain(fmt.Errorf("watch: %w", fs.ErrNotExist))
	want := "Error chain:\n  1. watch: file does not exist\n  2. file does not exist\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Chain() mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load pages manifest").
		WithResource("src/app/.next/serverless/pages-manifest.json").
		WithIssue(ManifestNotFoundId).
		WithSuggestion("Run 'next build' first").
		WithSuggestion("Pass --next-build-dir when distDir is computed").
		Wrap(fs.ErrNotExist).
		BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}
	if !errors.Is(ae.Cause, fs.ErrNotExist) {
		t.Errorf("Cause = %v, want fs.ErrNotExist", ae.Cause)
	}
	got := *ae
	got.Cause = nil
	want := ActionableError{
		Operation:   "load pages manifest",
		Resource:    "src/app/.next/serverless/pages-manifest.json",
		Suggestions: []string{"Run 'next build' first", "Pass --next-build-dir when distDir is computed"},
		Issue:       ManifestNotFoundId,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildError() mismatch (-want +got):\n%s", diff)
	}
	if Get(ae.Issue) == nil {
		t.Errorf("issue %d has no catalog entry", ae.Issue)
	}
}

func TestErrorContext_BuildErrorWithoutOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("dist").Wrap(fs.ErrPermission).BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil without an operation", err)
	}
}

func TestErrorContext_ReuseDoesNotShareSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("write").WithSuggestion("Check the output directory")
	first := ctx.Wrap(errors.New("disk full")).BuildError()
	second := ctx.WithSuggestion("Free some space").Wrap(errors.New("quota")).BuildError()

	var a, b *ActionableError
	if !errors.As(first, &a) || !errors.As(second, &b) {
		t.Fatal("BuildError() should return *ActionableError")
	}
	if len(a.Suggestions) != 1 {
		t.Errorf("first Suggestions = %v, want one entry", a.Suggestions)
	}
	if len(b.Suggestions) != 2 {
		t.Errorf("second Suggestions = %v, want two entries", b.Suggestions)
	}
	if !strings.Contains(a.Error(), "disk full") || !strings.Contains(b.Error(), "quota") {
		t.Errorf("causes mixed up: %q, %q", a.Error(), b.Error())
	}
}
