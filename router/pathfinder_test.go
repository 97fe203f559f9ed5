package router

import (
	"testing"

	"github.com/cgra-tools/pnr/devgraph"
	"github.com/cgra-tools/pnr/pnrconfig"
	"github.com/stretchr/testify/require"
)

// buildCorners builds a 2x2 grid of tiles wired as a square: (0,0)-(0,1)
// (Bottom/Top), (1,0)-(0,0) (Left/Right) and (0,1)-(1,1) (Right/Left), each
// hop wired on track index 0 only; the switch template has no internal
// wires. A tile gets an "out" port feeding its exit side only if it drives
// a net, and an "in" port fed from its entry side only if it sinks one,
// enough to route three single-hop nets without contention.
func buildCorners(t *testing.T, numTrack int) *devgraph.RoutingGraph {
	t.Helper()
	g := devgraph.NewRoutingGraph()
	sw := devgraph.NewSwitch(1, 1, numTrack, nil)
	g.RegisterSwitch(sw)
	for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		_, err := g.AddTile(c[0], c[1], 1)
		require.NoError(t, err)
		require.NoError(t, g.InstantiateSwitch(c[0], c[1], sw, 1))
	}

	wireHop := func(fromX, fromY int, fromSide devgraph.Side, toX, toY int, toSide devgraph.Side) {
		out, err := g.GetSB(fromX, fromY, 0, fromSide, devgraph.Out)
		require.NoError(t, err)
		in, err := g.GetSB(toX, toY, 0, toSide, devgraph.In)
		require.NoError(t, err)
		require.NoError(t, g.ConnectSwitchBoxes(out, in, 1))
	}
	portOut := func(x, y int, side devgraph.Side) *devgraph.Node {
		p, err := g.EnsurePort(x, y, "out", 1, 1)
		require.NoError(t, err)
		sb, err := g.GetSB(x, y, 0, side, devgraph.Out)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(p, sb, 1))
		return p
	}
	portIn := func(x, y int, side devgraph.Side) *devgraph.Node {
		p, err := g.EnsurePort(x, y, "in", 1, 1)
		require.NoError(t, err)
		sb, err := g.GetSB(x, y, 0, side, devgraph.In)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(sb, p, 1))
		return p
	}

	// n1: p0(0,0).out -> p3(0,1).in, across Bottom/Top.
	portOut(0, 0, devgraph.Bottom)
	portIn(0, 1, devgraph.Top)
	wireHop(0, 0, devgraph.Bottom, 0, 1, devgraph.Top)

	// n2: p1(1,0).out -> p0(0,0).in, across Left/Right.
	portOut(1, 0, devgraph.Left)
	portIn(0, 0, devgraph.Right)
	wireHop(1, 0, devgraph.Left, 0, 0, devgraph.Right)

	// n3: p3(0,1).out -> p2(1,1).in, across Right/Left.
	portOut(0, 1, devgraph.Right)
	portIn(1, 1, devgraph.Left)
	wireHop(0, 1, devgraph.Right, 1, 1, devgraph.Left)

	return g
}

func TestGlobalRouter_TinyBoardNoCongestion(t *testing.T) {
	g := buildCorners(t, 2)
	base := NewRouterBase(g)
	base.AddPlacement(0, 0, "p0")
	base.AddPlacement(1, 0, "p1")
	base.AddPlacement(1, 1, "p2")
	base.AddPlacement(0, 1, "p3")

	_, err := base.AddNet("n1", []PinSpec{{BlockID: "p0", Port: "out"}, {BlockID: "p3", Port: "in"}})
	require.NoError(t, err)
	_, err = base.AddNet("n2", []PinSpec{{BlockID: "p1", Port: "out"}, {BlockID: "p0", Port: "in"}})
	require.NoError(t, err)
	_, err = base.AddNet("n3", []PinSpec{{BlockID: "p3", Port: "out"}, {BlockID: "p2", Port: "in"}})
	require.NoError(t, err)

	cfg := pnrconfig.Default()
	gr := NewGlobalRouter(base, cfg)
	routes, stats, err := gr.Route()
	require.NoError(t, err)
	require.False(t, stats.Overflowed)
	require.Equal(t, 0, stats.Index, "converges on the very first iteration with no congestion")
	require.Len(t, routes, 3)
	for name, segs := range routes {
		require.Lenf(t, segs, 1, "net %s should have exactly one segment", name)
	}
}

func TestGlobalRouter_ForcedContentionIsUnroutable(t *testing.T) {
	// One track, three nets forced across the same single-track crossing:
	// congestion can never clear.
	g := devgraph.NewRoutingGraph()
	sw := devgraph.NewSwitch(1, 1, 1, nil)
	g.RegisterSwitch(sw)
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	_, err = g.AddTile(1, 0, 1)
	require.NoError(t, err)
	require.NoError(t, g.InstantiateSwitch(0, 0, sw, 1))
	require.NoError(t, g.InstantiateSwitch(1, 0, sw, 1))

	sink, err := g.GetSB(1, 0, 0, devgraph.Left, devgraph.In)
	require.NoError(t, err)

	wireSourceSide := func(side devgraph.Side, blockID string) {
		p, err := g.EnsurePort(0, 0, blockID, 1, 1)
		require.NoError(t, err)
		out, err := g.GetSB(0, 0, 0, side, devgraph.Out)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(p, out, 1))
		require.NoError(t, g.AddEdge(out, sink, 1))
	}
	wireSourceSide(devgraph.Right, "outA")
	wireSourceSide(devgraph.Bottom, "outB")
	wireSourceSide(devgraph.Top, "outC")

	sinkPort := func(name string) {
		p, err := g.EnsurePort(1, 0, name, 1, 1)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(sink, p, 1))
	}
	sinkPort("inA")
	sinkPort("inB")
	sinkPort("inC")

	base := NewRouterBase(g)
	base.AddPlacement(0, 0, "src")
	base.AddPlacement(1, 0, "dst")
	_, err = base.AddNet("na", []PinSpec{{BlockID: "src", Port: "outA"}, {BlockID: "dst", Port: "inA"}})
	require.NoError(t, err)
	_, err = base.AddNet("nb", []PinSpec{{BlockID: "src", Port: "outB"}, {BlockID: "dst", Port: "inB"}})
	require.NoError(t, err)
	_, err = base.AddNet("nc", []PinSpec{{BlockID: "src", Port: "outC"}, {BlockID: "dst", Port: "inC"}})
	require.NoError(t, err)

	cfg := pnrconfig.Default()
	cfg.NumIteration = 5
	gr := NewGlobalRouter(base, cfg)
	_, _, err = gr.Route()
	require.ErrorIs(t, err, ErrUnableToRoute)
}

func TestGlobalRouter_RegisterChainFixUp(t *testing.T) {
	// The sink tile (1,0) carries, alongside the switch box the register
	// sink's A* search actually targets (a free switch box with a free
	// outgoing switch-box neighbour), a second free switch box (sbFree)
	// satisfying that neighbour condition, and the register itself
	// one hop further out, whose sole out-neighbour (p1) is what lets the
	// register-net fix-up locate and splice it in.
	g := devgraph.NewRoutingGraph()
	sw := devgraph.NewSwitch(1, 1, 2, nil)
	g.RegisterSwitch(sw)
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	_, err = g.AddTile(1, 0, 1)
	require.NoError(t, err)
	require.NoError(t, g.InstantiateSwitch(0, 0, sw, 1))
	require.NoError(t, g.InstantiateSwitch(1, 0, sw, 1))

	p0, err := g.EnsurePort(0, 0, "out", 1, 1)
	require.NoError(t, err)
	sbOut, err := g.GetSB(0, 0, 0, devgraph.Right, devgraph.Out)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(p0, sbOut, 1))
	sbIn, err := g.GetSB(1, 0, 0, devgraph.Left, devgraph.In)
	require.NoError(t, err)
	require.NoError(t, g.ConnectSwitchBoxes(sbOut, sbIn, 1))

	// sbFree gives sbIn the free switch-box out-neighbour its A* goal test
	// requires; it is otherwise unused.
	sbFree, err := g.GetSB(1, 0, 1, devgraph.Left, devgraph.In)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(sbIn, sbFree, 1))

	reg, err := g.EnsureRegister(1, 0, "reg", 1, 0, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(sbIn, reg, 1))
	p1, err := g.EnsurePort(1, 0, "in", 1, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(reg, p1, 1))

	base := NewRouterBase(g)
	base.AddPlacement(0, 0, "p0")
	base.AddPlacement(1, 0, "r0")
	base.AddPlacement(1, 0, "p1")

	_, err = base.AddNet("n1", []PinSpec{{BlockID: "p0", Port: "out"}, {BlockID: "r0", Port: "reg"}})
	require.NoError(t, err)
	_, err = base.AddNet("n2", []PinSpec{{BlockID: "r0", Port: "out"}, {BlockID: "p1", Port: "in"}})
	require.NoError(t, err)

	cfg := pnrconfig.Default()
	gr := NewGlobalRouter(base, cfg)
	routes, stats, err := gr.Route()
	require.NoError(t, err)
	require.False(t, stats.Overflowed)

	n1Last := routes["n1"][0].Last()
	n2First := routes["n2"][0][0]
	require.NotNil(t, n1Last)
	require.Same(t, n1Last, n2First, "n1's sink and n2's source must be the same register node after fix-up")
	require.Equal(t, devgraph.KindRegister, n1Last.Kind)
}
