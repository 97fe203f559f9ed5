package partition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func twoCliqueNets() [][]string {
	return [][]string{
		{"a0", "a1"},
		{"a1", "a2"},
		{"a2", "a0"},
		{"a0", "a2"},
		{"b0", "b1"},
		{"b1", "b2"},
		{"b2", "b0"},
		{"b0", "b2"},
		{"a0", "b0"}, // single bridging edge between the two cliques
	}
}

func TestPartition_SeparatesTwoCliques(t *testing.T) {
	g := BuildGraph(twoCliqueNets())
	clusters := g.Partition(0, 15)

	membership := make(map[string]int)
	for id, members := range clusters {
		for _, b := range members {
			membership[b] = id
		}
	}

	require.Equal(t, membership["a0"], membership["a1"])
	require.Equal(t, membership["a1"], membership["a2"])
	require.Equal(t, membership["b0"], membership["b1"])
	require.Equal(t, membership["b1"], membership["b2"])
	require.NotEqual(t, membership["a0"], membership["b0"])
}

func TestPartition_IsDeterministicAcrossRuns(t *testing.T) {
	nets := twoCliqueNets()
	g1 := BuildGraph(nets)
	g2 := BuildGraph(nets)

	c1 := g1.Partition(0, 15)
	c2 := g2.Partition(0, 15)
	require.Equal(t, c1, c2)
}

func TestAddEdge_DropsSelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddBlock("x")
	require.NoError(t, g.AddEdge("x", "x", 1))
	require.Equal(t, []string{"x"}, g.Blocks())
	require.Zero(t, g.degree(g.index["x"]))
}

func TestAddEdge_UnknownBlockFails(t *testing.T) {
	g := NewGraph()
	g.AddBlock("p")
	require.ErrorIs(t, g.AddEdge("p", "ghost", 1), ErrUnknownBlock)
}

func TestMerge_BreaksInterClusterCycle(t *testing.T) {
	// Two singleton clusters with edges in both directions form a 2-cycle
	// at the cluster level; Merge must fold them into one cluster.
	g := NewGraph()
	g.AddBlock("p")
	g.AddBlock("q")
	require.NoError(t, g.AddEdge("p", "q", 1))
	require.NoError(t, g.AddEdge("q", "p", 1))

	clusters := Clustering{0: {"p"}, 1: {"q"}}
	merged := g.Merge(clusters, 0)

	require.Len(t, merged, 1)
	require.ElementsMatch(t, []string{"p", "q"}, merged[0])
}

func TestMerge_LeavesAcyclicClustersAlone(t *testing.T) {
	g := NewGraph()
	g.AddBlock("p")
	g.AddBlock("q")
	require.NoError(t, g.AddEdge("p", "q", 1))

	clusters := Clustering{0: {"p"}, 1: {"q"}}
	merged := g.Merge(clusters, 0)
	require.Len(t, merged, 2)
}

func TestOptimize_RespectsSizeCap(t *testing.T) {
	g := BuildGraph(twoCliqueNets())
	clusters := Clustering{
		0: {"a0", "a1", "a2", "b0"},
		1: {"b1", "b2"},
	}
	out := g.Optimize(clusters, 3)
	for _, members := range out {
		require.LessOrEqual(t, len(members), 3)
	}
}

func TestOptimize_MovesBlockToReduceCrossing(t *testing.T) {
	g := BuildGraph(twoCliqueNets())
	// "b0" starts stranded in the a-cluster despite being fully wired to b1/b2.
	clusters := Clustering{
		0: {"a0", "a1", "a2", "b0"},
		1: {"b1", "b2"},
	}
	out := g.Optimize(clusters, 0)

	membership := make(map[string]int)
	for id, members := range out {
		for _, b := range members {
			membership[b] = id
		}
	}
	require.Equal(t, membership["b1"], membership["b0"])
}
