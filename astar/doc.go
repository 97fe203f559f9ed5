// Package astar is the reusable weighted shortest-path core used by the
// global router. Search takes a start node, a predicate-defined goal, a
// cost function and a heuristic function and returns the shortest node
// sequence from start to the first node satisfying the goal predicate.
//
// The implementation is a container/heap-based lazy-decrease-key search
// with f = g + h. A zero cost function and zero heuristic degenerate to
// Dijkstra.
//
// Ties in f are broken by a monotonically increasing insertion sequence
// number, giving a stable expansion order independent of map iteration.
package astar
