// Package multiplace dispatches one detailed-placer instance per cluster in
// a bounded worker pool, annealing each independently and in parallel, then
// unions their block-to-(x,y) mappings. This is the repository's sole
// source of parallelism: the device graph and layout are never touched
// here, and each worker owns its own detail.Placer and RNG — no state is
// shared across goroutines.
package multiplace
