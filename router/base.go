package router

import (
	"fmt"

	"github.com/cgra-tools/pnr/devgraph"
	"github.com/cgra-tools/pnr/netlist"
	"go.uber.org/zap"
)

// Option configures a RouterBase at construction time.
type Option func(*RouterBase)

// WithLogger injects a *zap.Logger for progress reporting. A nil logger
// (the default) is replaced with zap.NewNop(), so callers never need a nil
// check in hot code.
func WithLogger(l *zap.Logger) Option {
	return func(r *RouterBase) {
		if l != nil {
			r.logger = l
		}
	}
}

// RouterBase owns the immutable device graph and the mutable routing state:
// per-node predecessor sets, history counters and net-id sets, plus the
// current route table.
type RouterBase struct {
	Graph *devgraph.RoutingGraph

	nets      []*netlist.Net
	netByID   map[int]*netlist.Net
	netByName map[string]*netlist.Net
	nextNetID int

	placement map[string][2]int

	state      map[*devgraph.Node]*nodeState
	routes     map[int]map[string]RouteSegment // netID -> pin key -> segment
	overflowed bool

	logger *zap.Logger
}

// NewRouterBase constructs a RouterBase over an already-built device graph.
func NewRouterBase(graph *devgraph.RoutingGraph, opts ...Option) *RouterBase {
	r := &RouterBase{
		Graph:     graph,
		netByID:   make(map[int]*netlist.Net),
		netByName: make(map[string]*netlist.Net),
		placement: make(map[string][2]int),
		state:     make(map[*devgraph.Node]*nodeState),
		routes:    make(map[int]map[string]RouteSegment),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddPlacement records that block blockID sits at tile (x,y).
func (r *RouterBase) AddPlacement(x, y int, blockID string) {
	r.placement[blockID] = [2]int{x, y}
}

// PinSpec names one (block id, port name) pair passed to AddNet.
type PinSpec struct {
	BlockID string
	Port    string
}

// AddNet registers a net named name whose first PinSpec is the source and
// the rest are sinks. Pins whose block id begins with 'r' (register sinks,
// and the register source of a downstream net) are recorded with their
// placed coordinate but an unresolved Node, since the concrete register is
// chosen during routing. All other pins resolve immediately via
// Graph.GetPort.
func (r *RouterBase) AddNet(name string, pins []PinSpec) (*netlist.Net, error) {
	if len(pins) == 0 {
		return nil, fmt.Errorf("router: AddNet(%s): %w", name, netlist.ErrEmptyPins)
	}
	resolved := make([]netlist.Pin, 0, len(pins))
	for i, ps := range pins {
		coord, ok := r.placement[ps.BlockID]
		if !ok {
			return nil, fmt.Errorf("router: AddNet(%s): block %s: %w", name, ps.BlockID, ErrUnplacedBlock)
		}
		pin := netlist.Pin{
			ID:      i,
			X:       coord[0],
			Y:       coord[1],
			BlockID: ps.BlockID,
			Port:    ps.Port,
		}
		// A register-prefixed block id is left unresolved whether it is this
		// net's source (e.g. "r0.out" driving a downstream net) or one of its
		// sinks: both are filled in during routing, not at registration time.
		if !pin.IsRegisterSink() {
			node, err := r.Graph.GetPort(coord[0], coord[1], ps.Port)
			if err != nil {
				return nil, fmt.Errorf("router: AddNet(%s): %w", name, err)
			}
			pin.Node = node
			pin.Width = node.Width
		}
		resolved = append(resolved, pin)
	}

	id := r.nextNetID
	r.nextNetID++
	net, err := netlist.NewNet(id, name, resolved, 0, false)
	if err != nil {
		return nil, err
	}
	r.nets = append(r.nets, net)
	r.netByID[id] = net
	r.netByName[name] = net
	r.routes[id] = make(map[string]RouteSegment)
	return net, nil
}

// Nets returns every registered net in registration order.
func (r *RouterBase) Nets() []*netlist.Net { return r.nets }

// NetByID looks up a registered net by id.
func (r *RouterBase) NetByID(id int) (*netlist.Net, bool) {
	n, ok := r.netByID[id]
	return n, ok
}

// ensureState returns n's nodeState, creating it if this is the node's
// first appearance in any route.
func (r *RouterBase) ensureState(n *devgraph.Node) *nodeState {
	s, ok := r.state[n]
	if !ok {
		s = newNodeState()
		r.state[n] = s
	}
	return s
}

// Presence returns node n's current predecessor-set cardinality.
func (r *RouterBase) Presence(n *devgraph.Node) int {
	if s, ok := r.state[n]; ok {
		return s.Presence()
	}
	return 0
}

// HasPredecessor reports whether p is currently a registered predecessor of
// n.
func (r *RouterBase) HasPredecessor(n, p *devgraph.Node) bool {
	s, ok := r.state[n]
	if !ok {
		return false
	}
	_, ok = s.predecessors[p]
	return ok
}

// History returns node n's accumulated history counter.
func (r *RouterBase) History(n *devgraph.Node) int {
	if s, ok := r.state[n]; ok {
		return s.history
	}
	return 0
}

// NetIDs returns the set of net ids currently using node n.
func (r *RouterBase) NetIDs(n *devgraph.Node) map[int]struct{} {
	if s, ok := r.state[n]; ok {
		return s.nets
	}
	return nil
}

// Overflowed reports whether any node is currently congested, i.e. has a
// predecessor set larger than one.
func (r *RouterBase) Overflowed() bool { return r.overflowed }

// ClearConnections zeroes predecessor sets and net-id sets for every
// tracked node, leaving history counters intact, and resets the overflowed
// flag. Calling it twice in sequence is idempotent: the second call finds
// every predecessor/net set already empty and leaves history untouched
// either way.
func (r *RouterBase) ClearConnections() {
	for _, s := range r.state {
		s.predecessors = make(map[*devgraph.Node]struct{})
		s.nets = make(map[int]struct{})
	}
	r.overflowed = false
}

// BeginIteration wipes every net's current routes and resets per-node
// predecessor/net-id sets, leaving history counters intact — the start-of
// -iteration rip-up of every net at once.
func (r *RouterBase) BeginIteration() {
	r.ClearConnections()
	for id := range r.routes {
		r.routes[id] = make(map[string]RouteSegment)
	}
}

// AssignHistory increments the history counter of every node that appears
// in at least one committed route this iteration: called once per
// PathFinder iteration, after routing every net and before checking for
// overflow.
func (r *RouterBase) AssignHistory() {
	for _, s := range r.state {
		if len(s.nets) > 0 {
			s.history++
		}
	}
}

// RipUpNet removes a net's routes from the per-node predecessor sets and
// net-id sets, and drops it from the current-routes map.
func (r *RouterBase) RipUpNet(id int) {
	segs, ok := r.routes[id]
	if !ok {
		return
	}
	for _, seg := range segs {
		for i := 1; i < len(seg); i++ {
			if s, ok := r.state[seg[i]]; ok {
				delete(s.predecessors, seg[i-1])
			}
		}
		for _, n := range seg {
			if s, ok := r.state[n]; ok {
				delete(s.nets, id)
			}
		}
	}
	r.routes[id] = make(map[string]RouteSegment)
}

// CommitSegment records seg as the route for net id's sink identified by
// pinKey: every consecutive pair (u,v) adds u to v's predecessor set (and
// sets overflowed if that set's size now exceeds one), and every node along
// the segment gets id added to its net-id set.
func (r *RouterBase) CommitSegment(id int, pinKey string, seg RouteSegment) {
	if _, ok := r.routes[id]; !ok {
		r.routes[id] = make(map[string]RouteSegment)
	}
	r.routes[id][pinKey] = seg
	for i := 1; i < len(seg); i++ {
		s := r.ensureState(seg[i])
		s.predecessors[seg[i-1]] = struct{}{}
		if len(s.predecessors) > 1 {
			r.overflowed = true
		}
	}
	for _, n := range seg {
		s := r.ensureState(n)
		s.nets[id] = struct{}{}
	}
}

// CurrentRoute returns the segment currently committed for net id's sink
// pinKey, and whether one exists.
func (r *RouterBase) CurrentRoute(id int, pinKey string) (RouteSegment, bool) {
	segs, ok := r.routes[id]
	if !ok {
		return nil, false
	}
	seg, ok := segs[pinKey]
	return seg, ok
}

// Realize returns, for each net name, the ordered sequence of route
// segments in pin order.
func (r *RouterBase) Realize() map[string][]RouteSegment {
	out := make(map[string][]RouteSegment, len(r.nets))
	for _, net := range r.nets {
		segs := make([]RouteSegment, 0, len(net.Sinks()))
		for _, sink := range net.Sinks() {
			if seg, ok := r.CurrentRoute(net.ID, sink.Key()); ok {
				segs = append(segs, seg)
			}
		}
		out[net.Name] = segs
	}
	return out
}

// Logger exposes the router's configured logger for components (e.g.
// GlobalRouter) layered on top of RouterBase.
func (r *RouterBase) Logger() *zap.Logger { return r.logger }
