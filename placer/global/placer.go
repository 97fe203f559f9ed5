package global

import (
	"go.uber.org/zap"

	"github.com/cgra-tools/pnr/internal/prng"
	"github.com/cgra-tools/pnr/layout"
	"github.com/cgra-tools/pnr/pnrconfig"
)

// Option configures a GlobalPlacer.
type Option func(*GlobalPlacer)

// WithLogger injects a structured logger for per-phase summaries. A nil
// logger (the default) is replaced by zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(p *GlobalPlacer) {
		if l != nil {
			p.logger = l
		}
	}
}

// GlobalPlacer runs the cluster-level analytical-plus-SA placement phase.
type GlobalPlacer struct {
	Layout *layout.Layout
	CLB    layout.Type
	Cfg    pnrconfig.Config
	logger *zap.Logger
}

// NewGlobalPlacer constructs a GlobalPlacer over lo, treating clb as the
// primary CLB block type.
func NewGlobalPlacer(lo *layout.Layout, clb layout.Type, cfg pnrconfig.Config, opts ...Option) *GlobalPlacer {
	p := &GlobalPlacer{Layout: lo, CLB: clb, Cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ClusterSpec is one cluster's placement input: its CLB count and its
// special-block demand by type.
type ClusterSpec struct {
	ID      string
	CLBSize int
	Demand  map[layout.Type]int
}

// FixedBlock is an already-placed block that participates in nets but is
// never moved; it becomes a w=h=1 fixed box.
type FixedBlock struct {
	ID   string
	X, Y int
}

// shouldSkipAnalytical reports whether the CG+SA phase should be bypassed
// in favour of handing the board straight to the detailed placer. With at
// most one cluster there is no inter-cluster wirelength or overlap to
// optimise, so the analytical phase has nothing to do.
func shouldSkipAnalytical(clusterCount int) bool { return clusterCount <= 1 }

// Place runs the full global-placement phase: build cluster/fixed boxes,
// (unless bypassed) run the CG optimiser followed by cluster-box SA, then
// realize cells. clusters and fixed give the placement inputs; nets group
// box ids (cluster ids and fixed block ids) that share a net.
func (p *GlobalPlacer) Place(clusters []ClusterSpec, fixed []FixedBlock, nets []Net) (*Realized, error) {
	if len(clusters) == 0 {
		return nil, ErrNoClusters
	}

	rl := NewReducedLayout(p.Layout, p.CLB)
	demand := make(map[string]map[layout.Type]int, len(clusters))
	legal := make(map[string]*LegalitySpline, len(clusters))

	boxes := make([]*Box, 0, len(clusters)+len(fixed))
	if shouldSkipAnalytical(len(clusters)) {
		c := clusters[0]
		b := &Box{ID: c.ID, CX: float64(rl.Width()) / 2, CY: float64(p.Layout.Height) / 2, W: rl.Width(), H: p.Layout.Height, CLBSize: c.CLBSize}
		b.recompute()
		boxes = append(boxes, b)
		demand[c.ID] = c.Demand
		legal[c.ID] = NewLegalitySpline(rl, c.Demand)
	} else {
		rng := prng.New(p.Cfg.Seed)
		for _, c := range clusters {
			cx := float64(rng.IntRange(0, max(1, rl.Width()-1))) + 0.5
			cy := float64(rng.IntRange(0, max(1, p.Layout.Height-1))) + 0.5
			boxes = append(boxes, NewClusterBox(c.ID, c.CLBSize, p.Cfg.AspectRatio, cx, cy))
			demand[c.ID] = c.Demand
			legal[c.ID] = NewLegalitySpline(rl, c.Demand)
		}
	}
	for _, f := range fixed {
		reducedX, ok := rl.toReduced(f.X)
		if !ok {
			reducedX = 0
		}
		boxes = append(boxes, NewFixedBox(f.ID, reducedX, f.Y))
	}

	problem := NewProblem(boxes, nets, legal, p.Cfg, rl.Width(), p.Layout.Height)

	if !shouldSkipAnalytical(len(clusters)) {
		_, bestHPWL := RunCG(problem)
		p.logger.Info("global placer: CG complete", zap.Float64("hpwl", bestHPWL), zap.Int("clusters", len(clusters)))

		annealParam := AnnealParam(problem, bestHPWL, len(clusters))
		rng := prng.New(p.Cfg.Seed)
		Anneal(problem, rng, annealParam, rl.Width(), p.Layout.Height)
		p.logger.Info("global placer: anneal complete", zap.Float64("anneal_param", annealParam))
	}

	return Realize(problem, rl, p.Layout, p.CLB, demand)
}

// toReduced is the inverse of ReducedLayout.ToOriginal.
func (rl *ReducedLayout) toReduced(originalX int) (int, bool) {
	rx, ok := rl.originalToReduced[originalX]
	return rx, ok
}
