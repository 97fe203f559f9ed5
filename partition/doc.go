// Package partition builds the directed block-adjacency graph of a netlist
// and partitions it into clusters by greedy modularity optimization: a
// local-move refinement run for a fixed number of passes with a
// deterministic seed, followed by Graph.Merge (inter-cluster cycle
// breaking) and Graph.Optimize (single-block moves under an optional
// cluster-size cap).
package partition
