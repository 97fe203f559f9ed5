package astar

import (
	"testing"

	"github.com/cgra-tools/pnr/devgraph"
	"github.com/stretchr/testify/require"
)

// chain builds a straight line of n register nodes, 0..n-1, each connected
// to the next with unit cost, one per tile. Registers rather than ports:
// the interior nodes carry both in- and out-edges, which the port-polarity
// invariant forbids for ports.
func chain(t *testing.T, n int) []*devgraph.Node {
	t.Helper()
	g := devgraph.NewRoutingGraph()
	nodes := make([]*devgraph.Node, n)
	for i := 0; i < n; i++ {
		_, err := g.AddTile(i, 0, 1)
		require.NoError(t, err)
		r, err := g.EnsureRegister(i, 0, "r", 1, 0, 1)
		require.NoError(t, err)
		nodes[i] = r
	}
	for i := 0; i+1 < n; i++ {
		require.NoError(t, g.AddEdge(nodes[i], nodes[i+1], 1))
	}
	return nodes
}

func TestSearch_FindsShortestPath(t *testing.T) {
	nodes := chain(t, 5)
	path, err := SearchToNode(nodes[0], nodes[4], ZeroCost, nil)
	require.NoError(t, err)
	require.Len(t, path, 5)
	require.Equal(t, nodes[0], path[0])
	require.Equal(t, nodes[4], path[len(path)-1])
}

func TestSearch_UnreachableGoalFails(t *testing.T) {
	nodes := chain(t, 3)
	// Build a disconnected extra node.
	g := devgraph.NewRoutingGraph()
	_, err := g.AddTile(99, 99, 1)
	require.NoError(t, err)
	isolated, err := g.EnsureRegister(99, 99, "iso", 1, 0, 1)
	require.NoError(t, err)

	_, err = SearchToNode(nodes[0], isolated, ZeroCost, nil)
	require.ErrorIs(t, err, ErrUnableToRoute)
}

func TestSearch_ReconstructedPathRespectsEdges(t *testing.T) {
	nodes := chain(t, 6)
	path, err := SearchToNode(nodes[0], nodes[5], ZeroCost, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(path); i++ {
		require.True(t, path[i].HasOutEdge(path[i+1]), "route validity: every adjacent pair must be a real edge")
	}
}

func TestSearchToCoord_ReachesAnyNodeAtCoordinate(t *testing.T) {
	g := devgraph.NewRoutingGraph()
	_, err := g.AddTile(0, 0, 1)
	require.NoError(t, err)
	_, err = g.AddTile(1, 0, 1)
	require.NoError(t, err)
	start, err := g.EnsurePort(0, 0, "start", 1, 1)
	require.NoError(t, err)
	a, err := g.EnsurePort(1, 0, "a", 1, 1)
	require.NoError(t, err)
	b, err := g.EnsurePort(1, 0, "b", 1, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(start, a, 1))
	require.NoError(t, g.AddEdge(start, b, 1))

	path, err := SearchToCoord(start, 1, 0, ZeroCost, nil)
	require.NoError(t, err)
	require.Equal(t, 1, path[len(path)-1].X)
	require.Equal(t, 0, path[len(path)-1].Y)
}

func TestZeroCostZeroHeuristicDegeneratesToDijkstra(t *testing.T) {
	nodes := chain(t, 4)
	path, err := Search(nodes[0], func(n *devgraph.Node) bool { return n == nodes[3] }, ZeroCost, ZeroHeuristic)
	require.NoError(t, err)
	require.Len(t, path, 4)
}
