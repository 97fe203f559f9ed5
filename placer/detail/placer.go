package detail

import (
	"go.uber.org/zap"

	"github.com/cgra-tools/pnr/internal/prng"
)

// Place runs the full intra-cluster pass: materialise instances, legalize
// any
// register/sink conflict, anneal, then refine, and return every non-dummy,
// non-fixed block's final cell.
func (p *Placer) Place(rng *prng.RNG) *Result {
	p.legalizeStart()
	p.logger.Info("detail placer: start", zap.Int("instances", len(p.instances)), zap.Int("energy", p.Energy()))

	p.Anneal(rng)
	p.Refine(rng, p.Cfg.DetailRefineNumIter, p.Cfg.DetailRefineThreshold)

	p.logger.Info("detail placer: done", zap.Int("energy", p.Energy()))

	positions := make(map[int][2]int)
	names := make(map[int]string)
	for _, inst := range p.instances {
		if inst.Dummy || inst.Fixed || inst.BlockID < 0 {
			continue
		}
		positions[inst.BlockID] = [2]int{inst.X, inst.Y}
		names[inst.BlockID] = inst.Name
	}
	return &Result{Positions: positions, Names: names}
}
