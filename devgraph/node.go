package devgraph

import "fmt"

// Kind tags which of the three node variants a Node is. Go has no tagged
// union, so Node is one concrete struct carrying a Kind plus the union of
// all three variants' attributes — the attributes that don't apply to a
// given Kind are simply left at their zero value (design note: "represent
// Node as a tagged variant rather than an inheritance hierarchy").
type Kind int

const (
	// KindSwitchBox is a tile-boundary crossbar node.
	KindSwitchBox Kind = iota
	// KindPort is a tile input or output pin.
	KindPort
	// KindRegister is a discrete register cell.
	KindRegister
)

func (k Kind) String() string {
	switch k {
	case KindSwitchBox:
		return "SwitchBox"
	case KindPort:
		return "Port"
	case KindRegister:
		return "Register"
	default:
		return "Unknown"
	}
}

// Side identifies one of a switch box's four boundary sides.
type Side int

const (
	Right  Side = 0
	Bottom Side = 1
	Left   Side = 2
	Top    Side = 3
)

// Opposite returns the side on the far side of a tile boundary crossing:
// (side+2) mod 4.
func (s Side) Opposite() Side { return (s + 2) % 4 }

func (s Side) String() string {
	switch s {
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Top:
		return "Top"
	default:
		return "Unknown"
	}
}

// Direction is a switch-box node's in/out polarity.
type Direction int

const (
	In  Direction = 0
	Out Direction = 1
)

func (d Direction) String() string {
	if d == In {
		return "In"
	}
	return "Out"
}

// edge is one out-neighbour entry: the target node plus the per-neighbour
// integer cost (default = neighbour's intrinsic Delay).
type edge struct {
	to   *Node
	cost int
}

// Node is the single concrete type for all three device-graph node kinds.
// Fields not applicable to a given Kind are left at their zero value:
// Name is empty for switch boxes; Side/Dir apply only to switch boxes;
// Track applies to switch boxes and registers, not ports.
//
// A Node owns its out-adjacency as an ordered slice (insertion order is the
// order add_edge was called, which keeps device-graph construction and any
// later iteration deterministic) plus an index for O(1) cost lookups and
// updates.
type Node struct {
	Kind  Kind
	Name  string // empty for switch boxes
	X, Y  int
	Width int
	Track int // valid for SwitchBox and Register; -1 for Port
	Delay int

	Side Side      // valid for SwitchBox only
	Dir  Direction // valid for SwitchBox only

	out     []edge
	outIdx  map[*Node]int
	inCount int // number of edges for which this node is the target
}

// newNode constructs a zero-adjacency Node. Track defaults to -1 for ports.
func newNode(kind Kind, x, y, width, track, delay int) *Node {
	return &Node{
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  width,
		Track:  track,
		Delay:  delay,
		outIdx: make(map[*Node]int),
	}
}

// Key returns a stable, human-readable identifier for the node, unique
// within a RoutingGraph. Used for map keys in routing state and for
// deterministic logging/diagnostics.
func (n *Node) Key() string {
	switch n.Kind {
	case KindSwitchBox:
		return fmt.Sprintf("sb:%d:%d:%d:%s:%s", n.X, n.Y, n.Track, n.Side, n.Dir)
	case KindPort:
		return fmt.Sprintf("port:%d:%d:%s", n.X, n.Y, n.Name)
	case KindRegister:
		return fmt.Sprintf("reg:%d:%d:%s", n.X, n.Y, n.Name)
	default:
		return fmt.Sprintf("unknown:%d:%d", n.X, n.Y)
	}
}

// AddOutEdge registers to as an out-neighbour of n with the given cost. If
// the edge already exists, its cost is overwritten (idempotent re-add).
func (n *Node) AddOutEdge(to *Node, cost int) {
	if i, ok := n.outIdx[to]; ok {
		n.out[i].cost = cost
		return
	}
	n.outIdx[to] = len(n.out)
	n.out = append(n.out, edge{to: to, cost: cost})
}

// OutNeighbours returns the node's out-neighbours in insertion order.
func (n *Node) OutNeighbours() []*Node {
	out := make([]*Node, len(n.out))
	for i, e := range n.out {
		out[i] = e.to
	}
	return out
}

// EdgeCost returns the registered cost of the edge n→to, or UnreachableCost
// if no such edge exists.
func (n *Node) EdgeCost(to *Node) int {
	if i, ok := n.outIdx[to]; ok {
		return n.out[i].cost
	}
	return UnreachableCost
}

// HasOutEdge reports whether n→to is a registered edge.
func (n *Node) HasOutEdge(to *Node) bool {
	_, ok := n.outIdx[to]
	return ok
}

// markIncoming records that n is the target of a newly added edge. devgraph
// otherwise stores only out-adjacency; this counter is the minimum state
// needed for RoutingGraph.AddEdge to enforce port polarity without
// maintaining a full in-adjacency list.
func (n *Node) markIncoming() { n.inCount++ }

// HasIncoming reports whether any edge targets n.
func (n *Node) HasIncoming() bool { return n.inCount > 0 }

// HasOutgoing reports whether n has any out-edge.
func (n *Node) HasOutgoing() bool { return len(n.out) > 0 }
