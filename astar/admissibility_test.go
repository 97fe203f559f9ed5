package astar

import (
	"testing"

	"github.com/cgra-tools/pnr/devgraph"
	"pgregory.net/rapid"
)

// gridGraph builds a w×h grid of register nodes (registers, not ports: the
// interior nodes carry both in- and out-edges, which the port-polarity
// invariant forbids for ports), each tile holding one, with unit-cost edges
// to its right and down neighbours (a DAG, so "any other valid path" in the
// admissibility property is well-defined without cycles confusing the
// comparison).
func gridGraph(t *rapid.T, w, h int) (*devgraph.RoutingGraph, [][]*devgraph.Node) {
	g := devgraph.NewRoutingGraph()
	nodes := make([][]*devgraph.Node, h)
	for y := 0; y < h; y++ {
		nodes[y] = make([]*devgraph.Node, w)
		for x := 0; x < w; x++ {
			_, err := g.AddTile(x, y, 1)
			if err != nil {
				t.Fatal(err)
			}
			n, err := g.EnsureRegister(x, y, "r", 1, 0, 1)
			if err != nil {
				t.Fatal(err)
			}
			nodes[y][x] = n
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				if err := g.AddEdge(nodes[y][x], nodes[y][x+1], 1); err != nil {
					t.Fatal(err)
				}
			}
			if y+1 < h {
				if err := g.AddEdge(nodes[y][x], nodes[y+1][x], 1); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	return g, nodes
}

// TestAStar_AdmissibleOnUnitCostManhattanGrid checks the A* admissibility
// property: on a graph where every edge cost is 1 and the
// heuristic is Manhattan distance, the returned path length never exceeds
// the only possible path length on this DAG grid (right/down moves only),
// which is exactly the Manhattan distance between the two corners.
func TestAStar_AdmissibleOnUnitCostManhattanGrid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 6).Draw(rt, "w")
		h := rapid.IntRange(1, 6).Draw(rt, "h")
		_, nodes := gridGraph(rt, w, h)
		start := nodes[0][0]
		goal := nodes[h-1][w-1]

		path, err := SearchToNode(start, goal, ZeroCost, nil)
		if err != nil {
			rt.Fatalf("search failed on %dx%d grid: %v", w, h, err)
		}

		want := (w - 1) + (h - 1) + 1 // Manhattan distance + the start node itself
		if len(path) != want {
			rt.Fatalf("path length %d != optimal %d", len(path), want)
		}
	})
}
