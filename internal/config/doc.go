// SPDX-License-Identifier: MPL-2.0

// Package config handles next-to-firebase configuration using Viper.
//
// Values are merged in this order, later sources winning: built-in defaults,
// a config file in the project root (next-to-firebase.cue, .toml, .yaml or
// .yml, or the file given with --config), NEXT_TO_FIREBASE_* entries of a .env
// file in the project root, and NEXT_TO_FIREBASE_* process environment
// variables. Command-line flags are applied on top by the CLI.
//
// Every file format is validated against the embedded CUE schema
// (config_schema.cue), so TOML and YAML files get the same error messages as
// CUE files.
package config
