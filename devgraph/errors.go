package devgraph

import "errors"

// Sentinel errors for devgraph operations. Every condition here indicates a
// malformed device description and is always fatal to the caller; none of
// these are retried or recovered internally.
var (
	// ErrTileNotFound indicates an operation referenced a tile at a
	// coordinate that does not exist in the RoutingGraph.
	ErrTileNotFound = errors.New("devgraph: tile not found")

	// ErrPortNotFound indicates a PortNode lookup failed for the given
	// (x, y, name).
	ErrPortNotFound = errors.New("devgraph: port not found")

	// ErrSwitchBoxNotFound indicates a SwitchBoxNode lookup failed for the
	// given (x, y, track, side, direction).
	ErrSwitchBoxNotFound = errors.New("devgraph: switch box not found")

	// ErrRegisterNotFound indicates a RegisterNode lookup failed for the
	// given (x, y, name).
	ErrRegisterNotFound = errors.New("devgraph: register not found")

	// ErrWidthMismatch indicates add_edge was called between two nodes of
	// differing bit width.
	ErrWidthMismatch = errors.New("devgraph: width mismatch between endpoints")

	// ErrPortPolarity indicates a PortNode ended up with both incoming and
	// outgoing edges, which violates the port-polarity invariant.
	ErrPortPolarity = errors.New("devgraph: port has both incoming and outgoing edges")

	// ErrTileExists indicates AddTile was called twice for the same
	// coordinate.
	ErrTileExists = errors.New("devgraph: tile already exists at coordinate")

	// ErrUnknownSwitch indicates a tile referenced a Switch template id that
	// was never registered with the graph.
	ErrUnknownSwitch = errors.New("devgraph: unknown switch template id")
)

// UnreachableCost is the sentinel edge cost returned by Node.EdgeCost for a
// neighbour that is not actually connected.
const UnreachableCost = 1 << 30
