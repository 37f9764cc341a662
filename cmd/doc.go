// Package cmd implements the command-line interface of the monkeymap
// toolkit. It provides a hierarchical command structure for exercising the
// map implementations.
//
// The package is organized into several subpackages:
//
//   - stress: the single-writer/multi-reader concurrency stress harness
//   - bench: per-operation benchmarks across the map implementations
//   - util: shared utilities for flag, environment and logger setup
//
// See monkeymap -help for a list of all commands.
package cmd
