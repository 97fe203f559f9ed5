package astar

import "github.com/cgra-tools/pnr/devgraph"

// abs is a small integer absolute value helper; devgraph coordinates are
// always int, so math.Abs's float round-trip would be pure overhead.
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan returns the L1 distance between two nodes' tile coordinates.
func Manhattan(a, b *devgraph.Node) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ManhattanTo returns a HeuristicFunc estimating distance to target's tile
// coordinates.
func ManhattanTo(target *devgraph.Node) HeuristicFunc {
	return func(n *devgraph.Node) int { return Manhattan(n, target) }
}

// ManhattanToCoord returns a HeuristicFunc estimating distance to (x,y).
func ManhattanToCoord(x, y int) HeuristicFunc {
	return func(n *devgraph.Node) int { return abs(n.X-x) + abs(n.Y-y) }
}

// SearchToNode is the "reach node N" overload: the goal predicate is
// identity with target, and the heuristic defaults to Manhattan distance to
// target unless heuristic is non-nil.
func SearchToNode(start, target *devgraph.Node, cost CostFunc, heuristic HeuristicFunc) ([]*devgraph.Node, error) {
	if heuristic == nil {
		heuristic = ManhattanTo(target)
	}
	return Search(start, func(n *devgraph.Node) bool { return n == target }, cost, heuristic)
}

// SearchToCoord is the "reach any node at (x,y)" overload: the goal
// predicate matches any node at the given tile coordinates, and the
// heuristic defaults to Manhattan distance to (x,y) unless heuristic is
// non-nil.
func SearchToCoord(start *devgraph.Node, x, y int, cost CostFunc, heuristic HeuristicFunc) ([]*devgraph.Node, error) {
	if heuristic == nil {
		heuristic = ManhattanToCoord(x, y)
	}
	return Search(start, func(n *devgraph.Node) bool { return n.X == x && n.Y == y }, cost, heuristic)
}

// SearchToCoordWithPredicate is the predicate-refined variant used by the
// router for register-sink placement: reach any node at (x,y)
// that also satisfies extra (e.g. "is a free switch box").
func SearchToCoordWithPredicate(start *devgraph.Node, x, y int, extra func(*devgraph.Node) bool, cost CostFunc, heuristic HeuristicFunc) ([]*devgraph.Node, error) {
	if heuristic == nil {
		heuristic = ManhattanToCoord(x, y)
	}
	return Search(start, func(n *devgraph.Node) bool { return n.X == x && n.Y == y && extra(n) }, cost, heuristic)
}
