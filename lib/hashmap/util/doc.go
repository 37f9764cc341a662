// Package util provides supporting tools for the map engines and the CLI
// harnesses: random seed generation, summary statistics over experiment
// measurements, and a lock-free multi-producer single-consumer queue used
// by the stress harness to collect anomaly reports from reader goroutines
// without perturbing the timing of the run.
package util
