// SPDX-License-Identifier: MPL-2.0

// Package testutil holds fixtures and helpers shared by tests.
//
// SampleProject mimics a built Next.js app next to a Firebase project;
// WriteFiles and ReadFiles move it in and out of an afero file system.
// SetEnv and UnsetEnv scope environment changes to one test.
package testutil
