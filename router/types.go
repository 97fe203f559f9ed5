package router

import "github.com/cgra-tools/pnr/devgraph"

// RouteSegment is the ordered node sequence of one net's route to one
// sink: the first element is the net's current source, the last is the
// sink (for ports) or, for a register sink, a switch box in the sink tile;
// once the register-net fix-up has run, a register sink's segment is
// extended to end at the chosen register node.
type RouteSegment []*devgraph.Node

// Delay sums the per-node intrinsic delay along the segment — used by the
// PathFinder slack-ratio computation.
func (s RouteSegment) Delay() int {
	var total int
	for _, n := range s {
		total += n.Delay
	}
	return total
}

// Last returns the segment's final node, or nil if empty.
func (s RouteSegment) Last() *devgraph.Node {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// nodeState is the per-node routing state: a predecessor set (nodes
// currently connecting into this node), a
// monotonically-accumulating history counter, and the set of net ids
// currently using this node.
type nodeState struct {
	predecessors map[*devgraph.Node]struct{}
	history      int
	nets         map[int]struct{}
}

func newNodeState() *nodeState {
	return &nodeState{
		predecessors: make(map[*devgraph.Node]struct{}),
		nets:         make(map[int]struct{}),
	}
}

// Presence is the current predecessor-set cardinality — "congested" when
// it exceeds 1.
func (s *nodeState) Presence() int { return len(s.predecessors) }
