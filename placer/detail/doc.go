// Package detail implements the per-cluster simulated-annealing placer:
// given a cluster's block list and the cells the global placer assigned it,
// place every block (and a dummy instance per spare cell) on a distinct
// cell, minimising exact-HPWL via adaptive-schedule SA followed by a
// pure-downhill refine pass.
package detail
