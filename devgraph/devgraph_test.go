package devgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func build2x2(t *testing.T, numTrack int) *RoutingGraph {
	t.Helper()
	g := NewRoutingGraph()
	sw := NewSwitch(1, 1, numTrack, DisjointWires(numTrack))
	g.RegisterSwitch(sw)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			_, err := g.AddTile(x, y, 1)
			require.NoError(t, err)
			require.NoError(t, g.InstantiateSwitch(x, y, sw, 1))
		}
	}
	return g
}

func TestDisjointWireCount(t *testing.T) {
	// DisjointWires(3) connects each outgoing track on each of the 4 sides
	// to the same-index track on each of the other 3 sides: 3*4*3 = 36
	// wires.
	wires := DisjointWires(3)
	require.Len(t, wires, 3*4*3)
	for _, w := range wires {
		require.Equal(t, w.TrackFrom, w.TrackTo, "disjoint wires preserve track index")
	}
}

func TestWiltonWireCount(t *testing.T) {
	wires := WiltonWires(4)
	require.Len(t, wires, 4*4*3)
	// Straight-through connections keep their track; turns rotate by one.
	for _, w := range wires {
		d := (int(w.SideTo) - int(w.SideFrom) + 4) % 4
		if d == 2 {
			require.Equal(t, w.TrackFrom, w.TrackTo)
		}
	}
}

func TestImranWireCount(t *testing.T) {
	wires := ImranWires(4)
	require.Len(t, wires, 4*4*3)
	// Each (sideFrom, sideTo) pair permutes the track set: every target
	// track appears exactly once per pair.
	perPair := make(map[[2]Side]map[int]int)
	for _, w := range wires {
		key := [2]Side{w.SideFrom, w.SideTo}
		if perPair[key] == nil {
			perPair[key] = make(map[int]int)
		}
		perPair[key][w.TrackTo]++
	}
	for _, counts := range perPair {
		for track, n := range counts {
			require.Equalf(t, 1, n, "track %d appears %d times in one side pair", track, n)
		}
	}
}

func TestInstantiateSwitchID_UnknownTemplateIsFatal(t *testing.T) {
	g := NewRoutingGraph()
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	require.ErrorIs(t, g.InstantiateSwitchID(0, 0, 99, 1), ErrUnknownSwitch)
}

func TestInstantiateSwitch_CreatesBoundaryNodes(t *testing.T) {
	g := build2x2(t, 2)
	tile := g.Tile(0, 0)
	require.NotNil(t, tile)
	for _, side := range allSides {
		in, err := g.GetSB(0, 0, 0, side, In)
		require.NoError(t, err)
		require.Equal(t, KindSwitchBox, in.Kind)
		out, err := g.GetSB(0, 0, 0, side, Out)
		require.NoError(t, err)
		require.Equal(t, KindSwitchBox, out.Kind)
	}
}

func TestConnectSwitchBoxes_SideSymmetry(t *testing.T) {
	g := build2x2(t, 1)
	// Connect tile (0,0)'s Right/Out to tile (1,0)'s Left/In: a cross-tile
	// edge. The far box must expose the opposite side.
	a, err := g.GetSB(0, 0, 0, Right, Out)
	require.NoError(t, err)
	b, err := g.GetSB(1, 0, 0, Left, In)
	require.NoError(t, err)
	require.NoError(t, g.ConnectSwitchBoxes(a, b, 1))
	require.Equal(t, a.Side.Opposite(), b.Side)
}

func TestConnectSwitchBoxes_RejectsNonOppositeSides(t *testing.T) {
	g := build2x2(t, 1)
	a, err := g.GetSB(0, 0, 0, Right, Out)
	require.NoError(t, err)
	b, err := g.GetSB(1, 0, 0, Right, In) // same side, not opposite
	require.NoError(t, err)
	require.Error(t, g.ConnectSwitchBoxes(a, b, 1))
}

func TestAddEdge_WidthMismatchFatal(t *testing.T) {
	g := NewRoutingGraph()
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	p1, err := g.EnsurePort(0, 0, "in", 1, 1)
	require.NoError(t, err)
	p2, err := g.EnsurePort(0, 0, "out", 2, 1)
	require.NoError(t, err)
	require.ErrorIs(t, g.AddEdge(p1, p2, 1), ErrWidthMismatch)
}

func TestPortPolarity_ViolationDetected(t *testing.T) {
	g := NewRoutingGraph()
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	p, err := g.EnsurePort(0, 0, "p", 1, 1)
	require.NoError(t, err)
	other1, err := g.EnsurePort(0, 0, "o1", 1, 1)
	require.NoError(t, err)
	other2, err := g.EnsurePort(0, 0, "o2", 1, 1)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(p, other1, 1)) // p has an outgoing edge
	err = g.AddEdge(other2, p, 1)               // now p also gets an incoming edge
	require.ErrorIs(t, err, ErrPortPolarity)
}

func TestEdgeCost_UnreachableSentinel(t *testing.T) {
	g := NewRoutingGraph()
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	a, err := g.EnsurePort(0, 0, "a", 1, 1)
	require.NoError(t, err)
	b, err := g.EnsurePort(0, 0, "b", 1, 1)
	require.NoError(t, err)
	require.Equal(t, UnreachableCost, a.EdgeCost(b))
}

func TestTiles_DeterministicOrder(t *testing.T) {
	g := build2x2(t, 1)
	tiles := g.Tiles()
	require.Len(t, tiles, 4)
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, tl := range tiles {
		require.Equal(t, want[i], [2]int{tl.X, tl.Y})
	}
}

func TestGetPort_MissingIsFatal(t *testing.T) {
	g := NewRoutingGraph()
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	_, err = g.GetPort(0, 0, "nope")
	require.ErrorIs(t, err, ErrPortNotFound)
}

func TestGetPort_UnknownTileIsFatal(t *testing.T) {
	g := NewRoutingGraph()
	_, err := g.GetPort(5, 5, "x")
	require.ErrorIs(t, err, ErrTileNotFound)
}
