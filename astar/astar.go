package astar

import (
	"container/heap"

	"github.com/cgra-tools/pnr/devgraph"
)

// GoalFunc reports whether n satisfies the search's termination predicate.
type GoalFunc func(n *devgraph.Node) bool

// CostFunc is an additional, directional cost term c(u,v) folded into edge
// relaxation alongside the edge's own wire delay: tentative = g[u] +
// edge_cost(u,v) + c(u,v). A CostFunc that always returns 0
// degenerates the search to using only wire delay.
type CostFunc func(u, v *devgraph.Node) int

// HeuristicFunc estimates the remaining cost from n to the nearest goal. It
// must never overestimate, or the returned path is not guaranteed shortest.
type HeuristicFunc func(n *devgraph.Node) int

// ZeroCost and ZeroHeuristic degenerate Search to plain Dijkstra.
func ZeroCost(u, v *devgraph.Node) int { return 0 }
func ZeroHeuristic(n *devgraph.Node) int { return 0 }

// Search finds the shortest node sequence from start to the first node
// satisfying isGoal, under g[start]=0, f[start]=h(start), relaxing
// neighbours with tentative = g[u] + edgeCost(u,v) + cost(u,v), expanding
// the lowest-f open node each step and terminating the moment a popped node
// satisfies isGoal. Returns ErrUnableToRoute if the open set empties first.
func Search(start *devgraph.Node, isGoal GoalFunc, cost CostFunc, heuristic HeuristicFunc) ([]*devgraph.Node, error) {
	if start == nil {
		return nil, ErrNilStart
	}

	g := map[*devgraph.Node]int{start: 0}
	cameFrom := map[*devgraph.Node]*devgraph.Node{}
	visited := map[*devgraph.Node]bool{}

	open := &openSet{}
	heap.Init(open)
	var seq int
	heap.Push(open, &item{node: start, f: heuristic(start), seq: seq})

	for open.Len() > 0 {
		it := heap.Pop(open).(*item)
		u := it.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if isGoal(u) {
			return reconstruct(cameFrom, start, u), nil
		}

		for _, v := range u.OutNeighbours() {
			if visited[v] {
				continue
			}
			edgeCost := u.EdgeCost(v)
			if edgeCost >= devgraph.UnreachableCost {
				continue
			}
			tentative := g[u] + edgeCost + cost(u, v)
			if prev, ok := g[v]; ok && tentative >= prev {
				continue
			}
			g[v] = tentative
			cameFrom[v] = u
			seq++
			heap.Push(open, &item{node: v, f: tentative + heuristic(v), seq: seq})
		}
	}

	return nil, ErrUnableToRoute
}

// reconstruct walks cameFrom back from goal to start and returns the
// sequence start..goal inclusive of both endpoints.
func reconstruct(cameFrom map[*devgraph.Node]*devgraph.Node, start, goal *devgraph.Node) []*devgraph.Node {
	path := []*devgraph.Node{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// item is one open-set entry: a node with its current f-score and the
// insertion sequence used to break ties deterministically.
type item struct {
	node *devgraph.Node
	f    int
	seq  int
}

// openSet is a lazy-decrease-key min-heap over item, ordered by f ascending
// and, on ties, by insertion sequence ascending.
type openSet []*item

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x interface{}) {
	*o = append(*o, x.(*item))
}
func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	it := old[n-1]
	*o = old[:n-1]
	return it
}
