package devgraph

import (
	"fmt"
	"sort"
)

// RoutingGraph is a map from (x,y) to Tile. Its topology is built
// once, before routing begins, and is immutable for the remainder of a
// run — the global router only ever reads it.
type RoutingGraph struct {
	tiles    map[[2]int]*Tile
	switches map[int]*Switch
}

// NewRoutingGraph constructs an empty graph.
func NewRoutingGraph() *RoutingGraph {
	return &RoutingGraph{
		tiles:    make(map[[2]int]*Tile),
		switches: make(map[int]*Switch),
	}
}

// AddTile registers a new Tile at (x,y). Returns ErrTileExists if the
// coordinate is already occupied.
func (g *RoutingGraph) AddTile(x, y, height int) (*Tile, error) {
	key := [2]int{x, y}
	if _, ok := g.tiles[key]; ok {
		return nil, fmt.Errorf("devgraph: AddTile(%d,%d): %w", x, y, ErrTileExists)
	}
	t := newTile(x, y, height)
	g.tiles[key] = t
	return t, nil
}

// Tile returns the tile at (x,y), or nil if none exists.
func (g *RoutingGraph) Tile(x, y int) *Tile {
	return g.tiles[[2]int{x, y}]
}

// RegisterSwitch adds a Switch template to the graph's template registry, so
// tiles can later be instantiated from it by ID.
func (g *RoutingGraph) RegisterSwitch(sw *Switch) {
	g.switches[sw.ID] = sw
}

// Switches returns every registered Switch template, ordered by ID.
func (g *RoutingGraph) Switches() []*Switch {
	ids := make([]int, 0, len(g.switches))
	for id := range g.switches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Switch, len(ids))
	for i, id := range ids {
		out[i] = g.switches[id]
	}
	return out
}

// InstantiateSwitch materialises sw's boundary nodes and internal wiring
// into the tile at (x,y): for each (track, side), it creates an In and an
// Out SwitchBoxNode, then
// connects them per sw.Wires: TrackFrom@SideFrom's Out node feeds
// TrackTo@SideTo's In node, with cost = the In node's delay.
func (g *RoutingGraph) InstantiateSwitch(x, y int, sw *Switch, delay int) error {
	t := g.Tile(x, y)
	if t == nil {
		return fmt.Errorf("devgraph: InstantiateSwitch(%d,%d): %w", x, y, ErrTileNotFound)
	}
	t.Switch = sw
	for _, side := range allSides {
		for track := 0; track < sw.NumTrack; track++ {
			t.ensureSwitchBox(track, side, In, sw.Width, delay)
			t.ensureSwitchBox(track, side, Out, sw.Width, delay)
		}
	}
	for _, w := range sw.Wires {
		from := t.SwitchBox(w.TrackFrom, w.SideFrom, Out)
		to := t.SwitchBox(w.TrackTo, w.SideTo, In)
		if from == nil || to == nil {
			return fmt.Errorf("devgraph: InstantiateSwitch(%d,%d): %w", x, y, ErrSwitchBoxNotFound)
		}
		if err := g.AddEdge(from, to, to.Delay); err != nil {
			return err
		}
	}
	return nil
}

// InstantiateSwitchID is InstantiateSwitch resolved through the template
// registry: tiles loaded from a device description reference their switch by
// id alone. ErrUnknownSwitch if the id was never registered.
func (g *RoutingGraph) InstantiateSwitchID(x, y, switchID, delay int) error {
	sw, ok := g.switches[switchID]
	if !ok {
		return fmt.Errorf("devgraph: InstantiateSwitchID(%d,%d,%d): %w", x, y, switchID, ErrUnknownSwitch)
	}
	return g.InstantiateSwitch(x, y, sw, delay)
}

// AddEdge registers b as an out-neighbour of a with the given wire delay.
// It validates width and updates polarity bookkeeping only; it records no
// side information on the edge, even when both endpoints are switch boxes.
// A switch box's Side is set when the node is created, and the
// opposite-side rule for cross-tile edges is checked by ConnectSwitchBoxes,
// not by AddEdge.
func (g *RoutingGraph) AddEdge(a, b *Node, wireDelay int) error {
	if a.Width != b.Width {
		return fmt.Errorf("devgraph: AddEdge(%s,%s): %w", a.Key(), b.Key(), ErrWidthMismatch)
	}
	a.AddOutEdge(b, wireDelay)
	b.markIncoming()
	if b.Kind == KindPort && b.HasIncoming() && b.HasOutgoing() {
		return fmt.Errorf("devgraph: AddEdge(%s,%s): %w", a.Key(), b.Key(), ErrPortPolarity)
	}
	if a.Kind == KindPort && a.HasIncoming() && a.HasOutgoing() {
		return fmt.Errorf("devgraph: AddEdge(%s,%s): %w", a.Key(), b.Key(), ErrPortPolarity)
	}
	return nil
}

// ConnectSwitchBoxes wires a cross-tile edge between two switch boxes on
// opposite sides of a tile boundary: two switch boxes connected by a
// cross-tile edge must expose each other via opposite sides, so callers must
// pass nodes whose Side fields are
// already opposites; ConnectSwitchBoxes validates this rather than silently
// fixing it up, since side assignment is a construction-time property of
// each node, not of the edge.
func (g *RoutingGraph) ConnectSwitchBoxes(from, to *Node, wireDelay int) error {
	if from.Kind != KindSwitchBox || to.Kind != KindSwitchBox {
		return fmt.Errorf("devgraph: ConnectSwitchBoxes(%s,%s): not switch boxes", from.Key(), to.Key())
	}
	if from.Side.Opposite() != to.Side {
		return fmt.Errorf("devgraph: ConnectSwitchBoxes(%s,%s): sides not opposite", from.Key(), to.Key())
	}
	return g.AddEdge(from, to, wireDelay)
}

// GetPort resolves a PortNode handle, fatal if missing.
func (g *RoutingGraph) GetPort(x, y int, name string) (*Node, error) {
	t := g.Tile(x, y)
	if t == nil {
		return nil, fmt.Errorf("devgraph: GetPort(%d,%d,%s): %w", x, y, name, ErrTileNotFound)
	}
	n := t.Port(name)
	if n == nil {
		return nil, fmt.Errorf("devgraph: GetPort(%d,%d,%s): %w", x, y, name, ErrPortNotFound)
	}
	return n, nil
}

// GetSB resolves a SwitchBoxNode handle, fatal if missing.
func (g *RoutingGraph) GetSB(x, y, track int, side Side, dir Direction) (*Node, error) {
	t := g.Tile(x, y)
	if t == nil {
		return nil, fmt.Errorf("devgraph: GetSB(%d,%d): %w", x, y, ErrTileNotFound)
	}
	n := t.SwitchBox(track, side, dir)
	if n == nil {
		return nil, fmt.Errorf("devgraph: GetSB(%d,%d,%d,%s,%s): %w", x, y, track, side, dir, ErrSwitchBoxNotFound)
	}
	return n, nil
}

// GetRegister resolves a RegisterNode handle, fatal if missing.
func (g *RoutingGraph) GetRegister(x, y int, name string) (*Node, error) {
	t := g.Tile(x, y)
	if t == nil {
		return nil, fmt.Errorf("devgraph: GetRegister(%d,%d,%s): %w", x, y, name, ErrTileNotFound)
	}
	n := t.Register(name)
	if n == nil {
		return nil, fmt.Errorf("devgraph: GetRegister(%d,%d,%s): %w", x, y, name, ErrRegisterNotFound)
	}
	return n, nil
}

// EnsurePort returns the PortNode at (x,y,name), creating it (and the tile
// entry) if necessary. Used by device-description construction helpers and
// tests; text-format loading lives outside this module.
func (g *RoutingGraph) EnsurePort(x, y int, name string, width, delay int) (*Node, error) {
	t := g.Tile(x, y)
	if t == nil {
		return nil, fmt.Errorf("devgraph: EnsurePort(%d,%d,%s): %w", x, y, name, ErrTileNotFound)
	}
	return t.ensurePort(name, width, delay), nil
}

// EnsureRegister returns the RegisterNode at (x,y,name), creating it if
// necessary.
func (g *RoutingGraph) EnsureRegister(x, y int, name string, width, track, delay int) (*Node, error) {
	t := g.Tile(x, y)
	if t == nil {
		return nil, fmt.Errorf("devgraph: EnsureRegister(%d,%d,%s): %w", x, y, name, ErrTileNotFound)
	}
	return t.ensureRegister(name, width, track, delay), nil
}

// Tiles returns every tile in deterministic ascending (x, y) order.
func (g *RoutingGraph) Tiles() []*Tile {
	keys := make([][2]int, 0, len(g.tiles))
	for k := range g.tiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	out := make([]*Tile, len(keys))
	for i, k := range keys {
		out[i] = g.tiles[k]
	}
	return out
}
