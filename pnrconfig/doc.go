// Package pnrconfig loads the tuning constants shared by the global router
// and the placer: PathFinder's slack_factor/hn_factor, the global placer's
// objective weights, the annealing constants, and the deterministic RNG
// seed (default 0).
//
// Config is a plain struct with a Default() constructor and a Load(path)
// YAML loader: a zero-value-safe default plus a file overlay for the common
// case of tuning a run without recompiling.
package pnrconfig
