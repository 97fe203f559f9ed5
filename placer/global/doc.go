// Package global implements the cluster-level analytical-plus-SA placer: a
// reduced layout that hides non-CLB, non-empty columns, a continuous
// HPWL/overlap/legality/aspect objective minimised by a Polak–Ribière
// non-linear CG optimizer, a simulated-annealing refinement pass over
// cluster bounding boxes, and cell realization that resolves overlap
// between clusters' claimed rectangles.
package global
