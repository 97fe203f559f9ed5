package detail

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cgra-tools/pnr/layout"
	"github.com/cgra-tools/pnr/pnrconfig"
)

// registerType is a reserved pseudo block-type used to index folded register
// instances separately from the CLB/special-block cells they fold onto:
// a folded register occupies a switch-box node, not a discrete CLB cell,
// so it never competes with a CLB block for
// the same cell. No on-disk layout character can parse to a negative rune,
// so this never collides with a real Type.
const registerType layout.Type = -1

// BlockSpec is one movable block: its cluster-local id, display name, block
// type (which cell pool it draws from) and whether it is a register subject
// to folding.
type BlockSpec struct {
	ID         int
	Name       string
	Type       layout.Type
	IsRegister bool
}

// RegisterGroup associates a driving register block with the downstream
// sink blocks it feeds, used to build the forbidden-tile constraint: a
// driving register must not share a tile with any of its downstream sinks.
type RegisterGroup struct {
	DriverID int
	SinkIDs  []int
}

// Net is an unordered group of block ids sharing a net, used by the HPWL
// bounding-box energy.
type Net struct {
	Blocks []int
}

// Instance is one occupant of a cell: a regular block, or a dummy filling a
// spare cell of its type; dummies have names equal to the single-character
// block type.
type Instance struct {
	ID       int
	Name     string
	Type     layout.Type
	BlockID  int // -1 for dummies; fixed external pins keep their block id
	X, Y     int
	Dummy    bool
	Register bool
	Fixed    bool // external fixed-position pin, never moved by SA
}

// Option configures a Placer.
type Option func(*Placer)

// WithLogger injects a structured logger for per-temperature SA summaries.
func WithLogger(l *zap.Logger) Option {
	return func(p *Placer) {
		if l != nil {
			p.logger = l
		}
	}
}

// Placer runs the intra-cluster simulated-annealing placement pass.
type Placer struct {
	Cfg    pnrconfig.Config
	logger *zap.Logger

	instances []*Instance
	byBlockID map[int]*Instance

	typeRange map[layout.Type][2]int         // [start,end) into instances, contiguous per type
	posIndex  map[layout.Type]map[[2]int]int // (x,y) -> instance id, per type

	// registerCells is a deterministic (sorted) iteration order over the
	// cells folded registers may occupy, since posIndex's map order is not
	// stable.
	registerCells [][2]int

	groups []RegisterGroup
	nets   []Net

	// netTouch maps instance id -> indices of nets.nets it participates in,
	// used to restrict incremental HPWL recomputation to touched nets.
	netTouch map[int][]int

	// driverSinks/sinkDrivers index RegisterGroup by block id in both
	// directions, used by the forbidden-tile check.
	driverSinks map[int][]int
	sinkDrivers map[int][]int

	// maxDim is the larger of the cluster footprint's width/height, the
	// upper clamp for d_limit.
	maxDim int
}

// NewPlacer materialises one Instance per block plus a dummy per spare
// cell, builds the type-index ranges and position index, and wires the
// register-group forbidden constraints.
func NewPlacer(blocks []BlockSpec, cells map[layout.Type][][2]int, fixed map[int][2]int, groups []RegisterGroup, nets []Net, cfg pnrconfig.Config, opts ...Option) (*Placer, error) {
	p := &Placer{
		Cfg:       cfg,
		logger:    zap.NewNop(),
		byBlockID: make(map[int]*Instance),
		typeRange: make(map[layout.Type][2]int),
		posIndex:  make(map[layout.Type]map[[2]int]int),
		groups:    groups,
		nets:      nets,
	}
	for _, opt := range opts {
		opt(p)
	}

	byType := make(map[layout.Type][]BlockSpec)
	var order []layout.Type
	for _, b := range blocks {
		if b.IsRegister && cfg.RegisterFolding {
			continue
		}
		if _, ok := byType[b.Type]; !ok {
			order = append(order, b.Type)
		}
		byType[b.Type] = append(byType[b.Type], b)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, t := range order {
		blist := byType[t]
		cellList := append([][2]int(nil), cells[t]...)
		sort.Slice(cellList, func(i, j int) bool {
			if cellList[i][0] != cellList[j][0] {
				return cellList[i][0] < cellList[j][0]
			}
			return cellList[i][1] < cellList[j][1]
		})
		if len(cellList) == 0 {
			return nil, fmt.Errorf("detail: NewPlacer(%c): %w", rune(t), ErrUnknownType)
		}
		if len(blist) > len(cellList) {
			return nil, fmt.Errorf("detail: NewPlacer(%c): %w", rune(t), ErrCellShortage)
		}
		start := len(p.instances)
		for i, b := range blist {
			c := cellList[i]
			inst := &Instance{ID: start + i, Name: b.Name, Type: t, BlockID: b.ID, X: c[0], Y: c[1]}
			p.instances = append(p.instances, inst)
			p.byBlockID[b.ID] = inst
		}
		for i := len(blist); i < len(cellList); i++ {
			c := cellList[i]
			inst := &Instance{ID: len(p.instances), Name: string(rune(t)), Type: t, BlockID: -1, X: c[0], Y: c[1], Dummy: true}
			p.instances = append(p.instances, inst)
		}
		p.typeRange[t] = [2]int{start, len(p.instances)}
		idx := make(map[[2]int]int, len(cellList))
		for i := start; i < len(p.instances); i++ {
			idx[[2]int{p.instances[i].X, p.instances[i].Y}] = p.instances[i].ID
		}
		p.posIndex[t] = idx
	}

	if cfg.RegisterFolding {
		var regs []BlockSpec
		for _, b := range blocks {
			if b.IsRegister {
				regs = append(regs, b)
			}
		}
		if len(regs) > 0 {
			allCells := unionCells(cells)
			start := len(p.instances)
			for i, b := range regs {
				c := allCells[i%len(allCells)]
				inst := &Instance{ID: start + i, Name: b.Name, Type: registerType, BlockID: b.ID, X: c[0], Y: c[1], Register: true}
				p.instances = append(p.instances, inst)
				p.byBlockID[b.ID] = inst
			}
			p.typeRange[registerType] = [2]int{start, len(p.instances)}
			idx := make(map[[2]int]int, len(allCells))
			for _, c := range allCells {
				idx[c] = -1
			}
			for i := start; i < len(p.instances); i++ {
				idx[[2]int{p.instances[i].X, p.instances[i].Y}] = p.instances[i].ID
			}
			p.posIndex[registerType] = idx
			p.registerCells = allCells
		}
	}

	for blockID, c := range fixed {
		if _, ok := p.byBlockID[blockID]; ok {
			continue
		}
		inst := &Instance{ID: len(p.instances), Name: fmt.Sprintf("fixed-%d", blockID), BlockID: blockID, X: c[0], Y: c[1], Fixed: true}
		p.instances = append(p.instances, inst)
		p.byBlockID[blockID] = inst
	}

	p.driverSinks = make(map[int][]int, len(groups))
	p.sinkDrivers = make(map[int][]int)
	for _, g := range groups {
		p.driverSinks[g.DriverID] = append(p.driverSinks[g.DriverID], g.SinkIDs...)
		for _, s := range g.SinkIDs {
			p.sinkDrivers[s] = append(p.sinkDrivers[s], g.DriverID)
		}
	}

	p.netTouch = make(map[int][]int)
	for ni, n := range p.nets {
		for _, bid := range n.Blocks {
			inst, ok := p.byBlockID[bid]
			if !ok {
				continue
			}
			p.netTouch[inst.ID] = append(p.netTouch[inst.ID], ni)
		}
	}

	p.maxDim = boardSpan(cells)
	if p.maxDim < 1 {
		p.maxDim = 1
	}

	return p, nil
}

// boardSpan returns the larger of the width/height spanned by every cell in
// cells, used to bound the detailed placer's search-radius schedule.
func boardSpan(cells map[layout.Type][][2]int) int {
	minX, minY := 1<<62, 1<<62
	maxX, maxY := -(1 << 62), -(1 << 62)
	any := false
	for _, cl := range cells {
		for _, c := range cl {
			any = true
			if c[0] < minX {
				minX = c[0]
			}
			if c[0] > maxX {
				maxX = c[0]
			}
			if c[1] < minY {
				minY = c[1]
			}
			if c[1] > maxY {
				maxY = c[1]
			}
		}
	}
	if !any {
		return 1
	}
	w, h := maxX-minX+1, maxY-minY+1
	if w > h {
		return w
	}
	return h
}

func unionCells(cells map[layout.Type][][2]int) [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	var types []layout.Type
	for t := range cells {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		for _, c := range cells[t] {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// Result maps every non-dummy, non-fixed block id to its placed cell and
// display name (the name lets callers like the multi-place driver filter
// cluster-centroid synthetic blocks by naming convention).
type Result struct {
	Positions map[int][2]int
	Names     map[int]string
}

// Instances exposes the current instance slice, read-only use by callers
// inspecting an in-progress or final placement (e.g. tests, pnrviz).
func (p *Placer) Instances() []*Instance { return p.instances }
