package detail

import (
	"math"

	"go.uber.org/zap"

	"github.com/cgra-tools/pnr/internal/prng"
)

// coolingMultiplier is the piecewise SA temperature schedule: halve at
// tmax, ·0.9 down to 0.1·tmax, ·0.95 down to 0.0001·tmax, ·0.8 below that.
func coolingMultiplier(temp, tmax float64) float64 {
	switch {
	case temp > 0.5*tmax:
		return 0.5
	case temp > 0.1*tmax:
		return 0.9
	case temp > 0.0001*tmax:
		return 0.95
	default:
		return 0.8
	}
}

// movableIDs returns every non-fixed instance id: dummies participate in
// swaps as targets; only Fixed instances never move.
func (p *Placer) movableIDs() []int {
	var out []int
	for _, inst := range p.instances {
		if !inst.Fixed {
			out = append(out, inst.ID)
		}
	}
	return out
}

// sampleMove picks a uniformly random movable instance, then a swap partner
// of the same type: uniform over the whole type range when dLimit covers
// the board, otherwise a point lookup within an L∞ box of radius dLimit/2.
func (p *Placer) sampleMove(rng *prng.RNG, dLimit float64) (a, b *Instance) {
	movable := p.movableIDs()
	a = p.instances[movable[rng.Intn(len(movable))]]
	return a, p.samplePartner(rng, a, dLimit)
}

// samplePartner picks a's swap partner of the same type: uniform over the
// whole type range when dLimit covers the board, otherwise a point lookup
// within an L∞ box of radius dLimit/2.
func (p *Placer) samplePartner(rng *prng.RNG, a *Instance, dLimit float64) (b *Instance) {
	rng2 := p.typeRange[a.Type]
	span := rng2[1] - rng2[0]
	if span <= 1 {
		return nil
	}

	if dLimit >= float64(p.maxDim) {
		j := rng2[0] + rng.Intn(span)
		b = p.instances[j]
		if b.ID == a.ID {
			return nil
		}
		return b
	}

	radius := int(math.Max(1, dLimit/2))
	idx := p.posIndex[a.Type]
	var candidates [][2]int
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			pos := [2]int{a.X + dx, a.Y + dy}
			if _, ok := idx[pos]; ok {
				candidates = append(candidates, pos)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	pick := candidates[rng.Intn(len(candidates))]
	bid := idx[pick]
	if bid < 0 {
		return nil
	}
	return p.instances[bid]
}

// applySwap exchanges a and b's (X, Y) and their posIndex entries in place,
// leaving Type/Name/BlockID/Dummy/Register/ID untouched (swap partners
// always share a type).
func (p *Placer) applySwap(a, b *Instance) {
	idx := p.posIndex[a.Type]
	idx[[2]int{a.X, a.Y}] = b.ID
	idx[[2]int{b.X, b.Y}] = a.ID
	a.X, b.X = b.X, a.X
	a.Y, b.Y = b.Y, a.Y
}

// legalAfterSwap reports whether the current position of a (and b, if present)
// satisfies the register-folding forbidden-tile constraint.
func (p *Placer) legalAfterSwap(a, b *Instance) bool {
	if p.forbiddenAt(a, a.X, a.Y) {
		return false
	}
	if b != nil && p.forbiddenAt(b, b.X, b.Y) {
		return false
	}
	return true
}

// Anneal runs the adaptive-schedule SA: tmax = 20·sqrt(variance) of
// num_blocks sampled random-move energies (variance taken over
// num_blocks+1), tmin =
// 0.005·E/|nets|, swaps per temperature = round(10·num_blocks^1.33), d_limit
// adapted after every temperature by (1 - 0.44 + r_accept) clamped to
// [1, max_dim].
func (p *Placer) Anneal(rng *prng.RNG) {
	movable := p.movableIDs()
	numBlocks := len(movable)
	if numBlocks == 0 {
		return
	}

	tmax := p.sampleTmax(rng, numBlocks)
	e0 := float64(p.Energy())
	tmin := 0.005 * e0 / float64(max(1, len(p.nets)))
	if tmin <= 0 {
		tmin = 1e-6
	}
	if tmax <= tmin {
		tmax = 2 * tmin
	}
	swapsPerTemp := int(math.Round(10 * math.Pow(float64(numBlocks), 1.33)))
	if swapsPerTemp < 1 {
		swapsPerTemp = 1
	}

	dLimit := float64(p.maxDim)
	temp := tmax

	for temp > tmin {
		accepted := 0
		for s := 0; s < swapsPerTemp; s++ {
			a, b := p.sampleMove(rng, dLimit)
			if b == nil {
				continue
			}
			touched := p.touchedNets(a, b)
			before := p.touchedEnergy(touched)
			p.applySwap(a, b)
			if !p.legalAfterSwap(a, b) {
				p.applySwap(a, b) // undo
				continue
			}
			after := p.touchedEnergy(touched)
			delta := after - before
			accept := delta <= 0 || rng.Float64() < math.Exp(-float64(delta)/temp)
			if accept {
				accepted++
			} else {
				p.applySwap(a, b) // undo
			}
		}
		rAccept := float64(accepted) / float64(swapsPerTemp)
		dLimit *= 1 - 0.44 + rAccept
		if dLimit < 1 {
			dLimit = 1
		}
		if dLimit > float64(p.maxDim) {
			dLimit = float64(p.maxDim)
		}
		p.logger.Info("detail placer: temperature step",
			zap.Float64("temp", temp), zap.Int("energy", p.Energy()), zap.Float64("accept_ratio", rAccept))
		temp *= coolingMultiplier(temp, tmax)
	}
}

// sampleTmax walks the placement through numBlocks random moves, left in
// place (no revert) whether or not they'd pass a PathFinder-style accept
// test, and returns 20·sqrt(variance) of the resulting energy trace, where
// the summed squared deviations are divided by numBlocks+1. This mirrors the reference placer's own tmax estimator: it
// deliberately perturbs the starting placement rather than probing it, so
// the SA proper begins from a lightly shuffled state, not the legalized one.
func (p *Placer) sampleTmax(rng *prng.RNG, numBlocks int) float64 {
	samples := make([]float64, 0, numBlocks)
	for i := 0; i < numBlocks; i++ {
		a, b := p.sampleMove(rng, float64(p.maxDim))
		if b == nil {
			samples = append(samples, float64(p.Energy()))
			continue
		}
		p.applySwap(a, b)
		if !p.legalAfterSwap(a, b) {
			p.applySwap(a, b)
			samples = append(samples, float64(p.Energy()))
			continue
		}
		samples = append(samples, float64(p.Energy()))
	}
	if len(samples) == 0 {
		return 1
	}
	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))
	var variance float64
	for _, s := range samples {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(samples) + 1)
	return 20 * math.Sqrt(variance)
}

// Refine runs a pure-downhill post-pass (accept iff ΔE < 0),
// repeating up to numIter outer rounds until the relative improvement over
// a round falls to or below threshold. It searches a local neighbourhood —
// d_limit = sqrt(max_dim)·2, not the whole board — so refinement polishes
// positions near where annealing left them instead of re-randomizing large
// swaps.
func (p *Placer) Refine(rng *prng.RNG, numIter int, threshold float64) {
	dLimit := math.Sqrt(float64(p.maxDim)) * 2
	prevEnergy := float64(p.Energy())
	for round := 0; round < numIter; round++ {
		movable := p.movableIDs()
		for _, id := range movable {
			a := p.instances[id]
			b := p.samplePartner(rng, a, dLimit)
			if b == nil {
				continue
			}
			touched := p.touchedNets(a, b)
			before := p.touchedEnergy(touched)
			p.applySwap(a, b)
			if !p.legalAfterSwap(a, b) {
				p.applySwap(a, b)
				continue
			}
			after := p.touchedEnergy(touched)
			if after >= before {
				p.applySwap(a, b)
			}
		}
		energy := float64(p.Energy())
		if prevEnergy > 0 && (prevEnergy-energy)/prevEnergy <= threshold {
			prevEnergy = energy
			break
		}
		prevEnergy = energy
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
