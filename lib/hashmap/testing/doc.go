// Package testing provides a reusable test and benchmark suite for
// hashmap.Map implementations. Engine packages call RunMapTests and
// RunMapBenchmarks from their own _test files with a factory, so every
// engine is exercised against the same contract.
//
// The suite mutates each map from a single goroutine only, so it is valid
// for the single-writer engine as well; the read benchmarks fan out across
// goroutines, which every thread-safe engine must tolerate.
package testing
