package router

import (
	"fmt"
	"math"
	"sort"

	"github.com/cgra-tools/pnr/astar"
	"github.com/cgra-tools/pnr/devgraph"
	"github.com/cgra-tools/pnr/netlist"
	"github.com/cgra-tools/pnr/pnrconfig"
	"go.uber.org/zap"
)

// GlobalRouter layers the PathFinder negotiated-congestion loop over a
// RouterBase. Net order and per-net sink order are fixed once, at
// construction, from the placement already loaded into the base — they
// never change across iterations, keeping the routing a deterministic
// function of the input.
type GlobalRouter struct {
	*RouterBase
	cfg pnrconfig.Config

	order        []int                 // net ids, final routing order
	netPins      map[int][]netlist.Pin // net id -> source-first, sink-sorted pins
	downstreamOf map[int]int           // driver net id -> downstream net id (register chains)
	driverOf     map[int]int           // downstream net id -> driver net id (register chains)
	driverSink   map[int]string        // downstream net id -> driver's sink pin key at the register tile
	logger       *zap.Logger
}

// NewGlobalRouter builds a GlobalRouter over base, precomputing the fixed
// net and per-net pin order.
func NewGlobalRouter(base *RouterBase, cfg pnrconfig.Config) *GlobalRouter {
	gr := &GlobalRouter{
		RouterBase: base,
		cfg:        cfg,
		netPins:    make(map[int][]netlist.Pin),
		driverSink: make(map[int]string),
		logger:     base.Logger(),
	}
	gr.precompute()
	return gr
}

// precompute fixes netPins (source-first, sinks Manhattan-sorted) and order
// (register chains first, then the rest, each group fan-out ordered) from
// the nets already registered on the base.
func (gr *GlobalRouter) precompute() {
	nets := gr.Nets()

	for _, net := range nets {
		gr.netPins[net.ID] = sortPins(net)
	}

	sourceByBlockID := make(map[string]int, len(nets))
	for _, net := range nets {
		sourceByBlockID[net.Source().BlockID] = net.ID
	}

	downstreamOf := make(map[int]int)
	isDownstream := make(map[int]bool)
	for _, net := range nets {
		for _, sink := range net.Sinks() {
			if !sink.IsRegisterSink() || sink.Port != "reg" {
				continue
			}
			if downID, ok := sourceByBlockID[sink.BlockID]; ok {
				downstreamOf[net.ID] = downID
				isDownstream[downID] = true
			}
		}
	}
	gr.downstreamOf = downstreamOf
	gr.driverOf = make(map[int]int, len(downstreamOf))
	for driverID, downID := range downstreamOf {
		gr.driverOf[downID] = driverID
	}

	type chain struct {
		nets   []int
		fanOut int
	}
	var chains []chain
	chained := make(map[int]bool)
	for _, net := range nets {
		if isDownstream[net.ID] {
			continue
		}
		if _, drives := downstreamOf[net.ID]; !drives {
			continue
		}
		seq := []int{net.ID}
		total := net.FanOut()
		cur := net.ID
		for {
			next, ok := downstreamOf[cur]
			if !ok {
				break
			}
			seq = append(seq, next)
			if n, ok := gr.NetByID(next); ok {
				total += n.FanOut()
			}
			cur = next
		}
		for _, id := range seq {
			chained[id] = true
		}
		chains = append(chains, chain{nets: seq, fanOut: total})
	}
	sort.SliceStable(chains, func(i, j int) bool { return chains[i].fanOut > chains[j].fanOut })

	var rest []*netlist.Net
	for _, net := range nets {
		if !chained[net.ID] {
			rest = append(rest, net)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].FanOut() > rest[j].FanOut() })

	order := make([]int, 0, len(nets))
	for _, c := range chains {
		order = append(order, c.nets...)
	}
	for _, net := range rest {
		order = append(order, net.ID)
	}
	gr.order = order
}

// sortPins returns net's pins with sinks ordered by ascending Manhattan
// distance to the source (stable), the source pinned at index 0.
func sortPins(net *netlist.Net) []netlist.Pin {
	src := net.Source()
	sinks := append([]netlist.Pin(nil), net.Sinks()...)
	sort.SliceStable(sinks, func(i, j int) bool {
		return manhattan(src, sinks[i]) < manhattan(src, sinks[j])
	})
	return append([]netlist.Pin{src}, sinks...)
}

func manhattan(a, b netlist.Pin) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func slackKey(netID int, pinKey string) string {
	return fmt.Sprintf("%d:%s", netID, pinKey)
}

// Route runs the PathFinder outer loop until no node is congested or the
// iteration budget is exhausted.
func (gr *GlobalRouter) Route() (map[string][]RouteSegment, IterationStats, error) {
	var stats IterationStats
	resolvedSource := make(map[int]*devgraph.Node)
	resolvedSink := make(map[string]*devgraph.Node)

	for iter := 0; iter < gr.cfg.NumIteration; iter++ {
		slack := gr.computeSlack(iter)

		gr.BeginIteration()
		for k := range resolvedSource {
			delete(resolvedSource, k)
		}
		for k := range resolvedSink {
			delete(resolvedSink, k)
		}

		netsRouted := 0
		for _, netID := range gr.order {
			if err := gr.routeNet(netID, slack, resolvedSource, resolvedSink); err != nil {
				return nil, stats, err
			}
			netsRouted++
		}
		gr.AssignHistory()

		stats = IterationStats{Index: iter, Overflowed: gr.Overflowed(), NetsRouted: netsRouted}
		gr.logger.Debug("pathfinder iteration",
			zap.Int("iteration", iter),
			zap.Bool("overflowed", stats.Overflowed),
			zap.Int("nets_routed", netsRouted),
		)
		if !gr.Overflowed() {
			return gr.Realize(), stats, nil
		}
	}
	return nil, stats, ErrUnableToRoute
}

// computeSlack returns the slack value for every (net, sink) pair routed
// last iteration, keyed by slackKey(netID, pinKey). Iteration 0 assigns 1
// to every pair; later iterations normalise last iteration's segment delays
// linearly to [0, 1].
func (gr *GlobalRouter) computeSlack(iter int) map[string]float64 {
	slack := make(map[string]float64)
	if iter == 0 {
		for _, net := range gr.Nets() {
			for _, sink := range net.Sinks() {
				slack[slackKey(net.ID, sink.Key())] = 1
			}
		}
		return slack
	}

	raw := make(map[string]int)
	min, max := math.MaxInt, math.MinInt
	for _, net := range gr.Nets() {
		for _, sink := range net.Sinks() {
			key := slackKey(net.ID, sink.Key())
			seg, ok := gr.CurrentRoute(net.ID, sink.Key())
			if !ok {
				continue
			}
			d := seg.Delay()
			raw[key] = d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
	}
	for _, net := range gr.Nets() {
		for _, sink := range net.Sinks() {
			key := slackKey(net.ID, sink.Key())
			if min == max {
				slack[key] = 1
				continue
			}
			d, ok := raw[key]
			if !ok {
				slack[key] = 1
				continue
			}
			slack[key] = float64(d-min) / float64(max-min)
		}
	}
	return slack
}

// pathfinderCost returns the CostFunc A* folds into edge relaxation for a
// sink routed with slack a_n, evaluating
//
//	a_n*d(u,v) + (1-a_n)*(d(u,v) + history(v)*hn_factor)*p(v,u)
//
// The A* contract already adds the edge's own wire delay once into
// tentative = g[u] + edge_cost(u,v) + c(u,v), but the formula's d(u,v)
// term already counts that
// same wire delay — so the value returned here is the full PathFinder
// expression minus one copy of edge_cost(u,v), leaving the net contribution
// to tentative equal to the PathFinder formula exactly once.
func (gr *GlobalRouter) pathfinderCost(an float64) astar.CostFunc {
	return func(u, v *devgraph.Node) int {
		d := u.EdgeCost(v)
		h := float64(gr.History(v)) * gr.cfg.HnFactor
		p := gr.presenceCost(v, u)
		total := an*float64(d) + (1-an)*(float64(d)+h)*float64(p)
		return int(math.Round(total)) - d
	}
}

// presenceCost is p(v,u): v's predecessor-set size, minus one if u is
// already a registered predecessor of v. "Predecessor" here is the A*
// parent of v in the in-progress search, not a committed-route entry.
func (gr *GlobalRouter) presenceCost(v, u *devgraph.Node) int {
	size := gr.Presence(v)
	if gr.HasPredecessor(v, u) {
		size--
	}
	return size
}

// routeNet routes every sink of net netID in its fixed pin order, resolving
// register sources/sinks through resolvedSource/resolvedSink, and commits
// each segment as it completes.
func (gr *GlobalRouter) routeNet(netID int, slack map[string]float64, resolvedSource map[int]*devgraph.Node, resolvedSink map[string]*devgraph.Node) error {
	net, ok := gr.NetByID(netID)
	if !ok {
		return fmt.Errorf("router: routeNet(%d): %w", netID, ErrUnknownNet)
	}
	pins := gr.netPins[netID]
	srcPin := pins[0]

	srcNode := srcPin.Node
	if srcNode == nil {
		srcNode = resolvedSource[netID]
	}
	if srcNode == nil {
		return fmt.Errorf("router: net %s: source unresolved: %w", net.Name, ErrInvariantViolation)
	}

	sinkPins := pins[1:]
	var segmentsSoFar []RouteSegment
	for i, sinkPin := range sinkPins {
		key := sinkPin.Key()
		an := slack[slackKey(netID, key)] * gr.cfg.SlackFactor
		delayDriven := slack[slackKey(netID, key)] > gr.cfg.RouteStrategyRatio
		cost := gr.pathfinderCost(an)

		start := srcNode
		if !delayDriven {
			if cand := gr.findReuseCandidate(segmentsSoFar, sinkPin); cand != nil {
				start = cand
			}
		}

		var segment []*devgraph.Node
		var err error
		if sinkPin.IsRegisterSink() {
			// Register sink: the A* goal is any free switch box at the sink's
			// mandated tile with at least one free switch-box out-neighbour —
			// not the register node itself. The concrete register is chosen
			// afterwards, by the register-net fix-up below, when the
			// downstream net is routed.
			goal := func(n *devgraph.Node) bool {
				return n.Kind == devgraph.KindSwitchBox && gr.Presence(n) == 0 && hasCompatibleNeighbour(gr.RouterBase, n, nil)
			}
			segment, err = astar.SearchToCoordWithPredicate(start, sinkPin.X, sinkPin.Y, goal, cost, nil)
			if err != nil {
				return fmt.Errorf("router: net %s sink %s: %w", net.Name, key, ErrNoFreeRegisterCell)
			}
			sbNode := RouteSegment(segment).Last()
			resolvedSink[slackKey(netID, key)] = sbNode
			if downID, ok := gr.downstreamOf[netID]; ok {
				resolvedSource[downID] = sbNode
				gr.driverSink[downID] = key
			}
		} else {
			target := sinkPin.Node
			segment, err = astar.SearchToNode(start, target, cost, nil)
			if err != nil {
				return fmt.Errorf("router: net %s sink %s: %w", net.Name, key, err)
			}
			// Register-net fix-up: the first sink of a net whose own source
			// is a register (i.e. the downstream half of a register chain)
			// triggers the splice: the driver's segment,
			// which currently ends at the free switch box backpatched above
			// as this net's source, is extended through the concrete
			// register node, and that register becomes this net's own route
			// source instead of the switch box.
			if i == 0 && srcPin.IsRegisterSink() {
				if driverID, ok := gr.driverOf[netID]; ok {
					segment = gr.spliceRegisterChain(driverID, netID, segment)
				}
			}
		}

		gr.CommitSegment(netID, key, segment)
		segmentsSoFar = append(segmentsSoFar, segment)
	}
	return nil
}

// spliceRegisterChain repairs a register chain: it searches segment (the downstream net's freshly routed first segment,
// which starts at the free switch box the driver net backpatched as this
// net's source) for a node with an unused Register out-neighbour whose own
// single out-neighbour also lies on segment. When found, it extends the
// driver net's already-committed route (at its register-sink pin key) up to
// and including that register, and returns segment rewritten to start at
// the register instead of the switch box. If no such register is found,
// segment is returned unchanged (register folding did not apply here).
func (gr *GlobalRouter) spliceRegisterChain(driverID, downstreamID int, segment []*devgraph.Node) []*devgraph.Node {
	driverKey, ok := gr.driverSink[downstreamID]
	if !ok {
		return segment
	}
	driverSeg, ok := gr.CurrentRoute(driverID, driverKey)
	if !ok {
		return segment
	}

	for k, n := range segment {
		for _, reg := range n.OutNeighbours() {
			if reg.Kind != devgraph.KindRegister || gr.Presence(reg) != 0 {
				continue
			}
			regOuts := reg.OutNeighbours()
			if len(regOuts) != 1 {
				continue
			}
			j := indexOfNode(segment, regOuts[0])
			if j < 0 {
				continue
			}
			// segment[0] is the driver's last node, so the driver route
			// gains segment[1..k] and then the register.
			extendedDriver := append(append(RouteSegment(nil), driverSeg...), segment[1:k+1]...)
			extendedDriver = append(extendedDriver, reg)
			gr.CommitSegment(driverID, driverKey, extendedDriver)

			spliced := make(RouteSegment, 0, len(segment)-j+1)
			spliced = append(spliced, reg)
			spliced = append(spliced, segment[j:]...)
			return spliced
		}
	}
	return segment
}

// indexOfNode returns the index of target in seg, or -1 if absent.
func indexOfNode(seg []*devgraph.Node, target *devgraph.Node) int {
	for i, n := range seg {
		if n == target {
			return i
		}
	}
	return -1
}

// findReuseCandidate implements PathFinder's congestion-driven source
// reuse: among nodes already on this net's segments routed so far
// this iteration, find an uncongested switch box with a free (or
// compatible) switch-box out-neighbour, and return the one closest to
// sinkPin by Manhattan distance. Returns nil when no candidate qualifies,
// so the caller falls back to the net's source.
func (gr *GlobalRouter) findReuseCandidate(segments []RouteSegment, sinkPin netlist.Pin) *devgraph.Node {
	var best *devgraph.Node
	bestDist := math.MaxInt

	for _, seg := range segments {
		for i, node := range seg {
			if node.Kind != devgraph.KindSwitchBox || gr.Presence(node) > 1 {
				continue
			}
			var pred *devgraph.Node
			if i > 0 {
				pred = seg[i-1]
			}
			if !hasCompatibleNeighbour(gr.RouterBase, node, pred) {
				continue
			}
			dist := absInt(node.X-sinkPin.X) + absInt(node.Y-sinkPin.Y)
			if dist < bestDist {
				bestDist = dist
				best = node
			}
		}
	}
	return best
}

// hasCompatibleNeighbour reports whether node has an out-neighbouring
// switch box that is either unused, or used with exactly node's own
// in-path predecessor as its sole predecessor.
func hasCompatibleNeighbour(base *RouterBase, node, pred *devgraph.Node) bool {
	for _, nb := range node.OutNeighbours() {
		if nb.Kind != devgraph.KindSwitchBox {
			continue
		}
		p := base.Presence(nb)
		if p == 0 {
			return true
		}
		if p == 1 && pred != nil && base.HasPredecessor(nb, pred) {
			return true
		}
	}
	return false
}
