// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the next-to-firebase command line.
//
// The root command turns the serverless build of a Next.js app into a
// directory that `firebase deploy` accepts. Subcommands print the plan of a
// build without writing it and manage the project configuration file.
package cmd
