package devgraph

import "sort"

// Tile owns every Node that physically belongs at one (x,y) coordinate: the
// per-track boundary SwitchBoxNodes (grouped by side), a name→PortNode map
// and a name→RegisterNode map. All nodes created through RoutingGraph are
// owned by their Tile; anything else in the program holds a *Node reference
// whose lifetime is simply the graph's.
type Tile struct {
	X, Y   int
	Height int
	Switch *Switch

	// sb[side][track] is the switch-box node pair (one In, one Out) at that
	// boundary position.
	sb [4]map[int][2]*Node

	ports     map[string]*Node
	registers map[string]*Node
}

// newTile constructs an empty Tile. Switch may be nil until instantiated by
// RoutingGraph.InstantiateSwitch.
func newTile(x, y, height int) *Tile {
	t := &Tile{
		X: x, Y: y, Height: height,
		ports:     make(map[string]*Node),
		registers: make(map[string]*Node),
	}
	for s := 0; s < 4; s++ {
		t.sb[s] = make(map[int][2]*Node)
	}
	return t
}

// SwitchBox returns the existing SwitchBoxNode at (track, side, dir), or nil
// if none has been created yet.
func (t *Tile) SwitchBox(track int, side Side, dir Direction) *Node {
	pair, ok := t.sb[side][track]
	if !ok {
		return nil
	}
	return pair[dir]
}

// ensureSwitchBox returns the SwitchBoxNode at (track, side, dir), creating
// it (and its In/Out sibling slot) if necessary.
func (t *Tile) ensureSwitchBox(track int, side Side, dir Direction, width, delay int) *Node {
	pair, ok := t.sb[side][track]
	if !ok {
		pair = [2]*Node{}
	}
	if pair[dir] == nil {
		n := newNode(KindSwitchBox, t.X, t.Y, width, track, delay)
		n.Side = side
		n.Dir = dir
		pair[dir] = n
	}
	t.sb[side][track] = pair
	return pair[dir]
}

// Port returns the existing PortNode named name, or nil.
func (t *Tile) Port(name string) *Node { return t.ports[name] }

// ensurePort returns the PortNode named name, creating it if necessary.
func (t *Tile) ensurePort(name string, width, delay int) *Node {
	if n, ok := t.ports[name]; ok {
		return n
	}
	n := newNode(KindPort, t.X, t.Y, width, -1, delay)
	n.Name = name
	t.ports[name] = n
	return n
}

// Register returns the existing RegisterNode named name, or nil.
func (t *Tile) Register(name string) *Node { return t.registers[name] }

// ensureRegister returns the RegisterNode named name, creating it if
// necessary.
func (t *Tile) ensureRegister(name string, width, track, delay int) *Node {
	if n, ok := t.registers[name]; ok {
		return n
	}
	n := newNode(KindRegister, t.X, t.Y, width, track, delay)
	n.Name = name
	t.registers[name] = n
	return n
}

// SwitchBoxesOnSide returns every SwitchBoxNode on the given side, in
// ascending track order, for both directions (In then Out per track).
func (t *Tile) SwitchBoxesOnSide(side Side) []*Node {
	tracks := make([]int, 0, len(t.sb[side]))
	for tr := range t.sb[side] {
		tracks = append(tracks, tr)
	}
	sort.Ints(tracks)
	out := make([]*Node, 0, len(tracks)*2)
	for _, tr := range tracks {
		pair := t.sb[side][tr]
		if pair[In] != nil {
			out = append(out, pair[In])
		}
		if pair[Out] != nil {
			out = append(out, pair[Out])
		}
	}
	return out
}

// AllSwitchBoxes returns every switch-box node owned by the tile, ordered by
// (side, track, direction) for determinism.
func (t *Tile) AllSwitchBoxes() []*Node {
	out := make([]*Node, 0)
	for _, side := range allSides {
		out = append(out, t.SwitchBoxesOnSide(side)...)
	}
	return out
}

// AllPorts returns every port node owned by the tile, sorted by name.
func (t *Tile) AllPorts() []*Node {
	names := make([]string, 0, len(t.ports))
	for n := range t.ports {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Node, len(names))
	for i, nm := range names {
		out[i] = t.ports[nm]
	}
	return out
}

// AllRegisters returns every register node owned by the tile, sorted by
// name.
func (t *Tile) AllRegisters() []*Node {
	names := make([]string, 0, len(t.registers))
	for n := range t.registers {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Node, len(names))
	for i, nm := range names {
		out[i] = t.registers[nm]
	}
	return out
}
