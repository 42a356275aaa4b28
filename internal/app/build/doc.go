// SPDX-License-Identifier: MPL-2.0

// Package build runs one next-to-firebase generation pass: it reads the
// Next.js build and the Firebase project, generates rewrites and function
// exports, and writes the deployable tree to the output directory.
//
// Everything that can fail on the input is computed before the output
// directory is touched, so a failed pass leaves the previous output intact.
package build
