// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths of a build:
//   - pages-manifest.json parsing and route normalization
//   - rewrite and function export generation
//   - configuration loading through the CUE schema
//   - the end-to-end build on an in-memory filesystem
//
// To generate a PGO profile, run:
//
//	go test -run='^$' -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
