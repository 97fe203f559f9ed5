package global

import (
	"math"

	"github.com/cgra-tools/pnr/internal/prng"
)

// clusterAnnealLevels is the number of temperature steps the cluster-box SA
// takes from tmax down to tmin. The detailed placer's piecewise schedule
// (halve, ·0.9, ·0.95, ·0.8 by band) assumes tmax is sampled far above
// tmin; here tmax = 2·tmin, so that schedule's first band (temp > 0.5·tmax,
// i.e. temp > tmin) would already cover the entire [tmin, tmax] range and
// collapse the loop to a single temperature. A small fixed geometric
// schedule spanning the same interval gives the cluster-box SA an actual
// anneal instead.
const clusterAnnealLevels = 12

// clusterCoolingRatio returns the per-level multiplicative step that takes
// temp from tmax to tmin over clusterAnnealLevels geometric steps.
func clusterCoolingRatio(tmax, tmin float64) float64 {
	if tmax <= 0 || tmin <= 0 {
		return 1
	}
	return math.Pow(tmin/tmax, 1.0/float64(clusterAnnealLevels))
}

// linearHPWL is the plain (non-squared) bounding-box HPWL used as the SA
// energy's wirelength term.
func (p *Problem) linearHPWL() float64 {
	var total float64
	for _, net := range p.Nets {
		if len(net.Boxes) < 2 {
			continue
		}
		minX, maxX := math.Inf(1), math.Inf(-1)
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, id := range net.Boxes {
			b := p.box(id)
			minX, maxX = math.Min(minX, b.CX), math.Max(maxX, b.CX)
			minY, maxY = math.Min(minY, b.CY), math.Max(maxY, b.CY)
		}
		total += (maxX - minX) + (maxY - minY)
	}
	return total
}

// overlapCells sums the integer-grid rectangle-intersection area between
// every pair of non-fixed boxes.
func (p *Problem) overlapCells() int {
	total := 0
	for i := 0; i < len(p.Boxes); i++ {
		a := p.Boxes[i]
		if a.Fixed {
			continue
		}
		for j := i + 1; j < len(p.Boxes); j++ {
			b := p.Boxes[j]
			if b.Fixed {
				continue
			}
			ox := min(a.XMax, b.XMax) - max(a.XMin, b.XMin)
			oy := min(a.YMax, b.YMax) - max(a.YMin, b.YMin)
			if ox > 0 && oy > 0 {
				total += ox * oy
			}
		}
	}
	return total
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// saEnergy is the annealer's objective: linear HPWL plus an annealParam-
// weighted overlap-cell count plus a fixed-weight special-block deficit.
func (p *Problem) saEnergy(annealParam float64) float64 {
	return p.linearHPWL() + annealParam*float64(p.overlapCells()) + 10*p.legal()
}

// AnnealParam computes the SA's overlap weight, set once from the post-CG
// HPWL: (|nets|/|clusters|·1.4)² · hpwl_param · user_factor · HPWL.
func AnnealParam(p *Problem, postCGHPWL float64, clusterCount int) float64 {
	if clusterCount == 0 || len(p.Nets) == 0 {
		return 0
	}
	ratio := float64(len(p.Nets)) / float64(clusterCount) * 1.4
	return ratio * ratio * p.Cfg.HPWLParam * p.Cfg.AnnealUserFactor * postCGHPWL
}

// Anneal runs the cluster-box SA: translate ±1, rotate (swap
// w/h), reshape by ±2, teleport inside the reduced layout, or swap two
// boxes' centroids, accepted/rejected by the Metropolis criterion.
func Anneal(p *Problem, rng *prng.RNG, annealParam float64, reducedWidth, height int) {
	boxes := p.movable()
	if len(boxes) == 0 {
		return
	}

	totalEnergy := p.saEnergy(annealParam)
	tmin := 0.005 * totalEnergy / float64(max(1, len(p.Nets)))
	if tmin <= 0 {
		tmin = 1e-6
	}
	tmax := 2 * tmin
	steps := int(math.Round(math.Pow(float64(len(boxes))*float64(max(1, len(p.Nets))), 1.8)))
	if steps < 1 {
		steps = 1
	}

	energy := totalEnergy
	temp := tmax
	ratio := clusterCoolingRatio(tmax, tmin)

	for level := 0; level < clusterAnnealLevels; level++ {
		for s := 0; s < steps; s++ {
			snap := takeSnapshot(p)
			applyRandomMove(p, rng, boxes, reducedWidth, height)

			newEnergy := p.saEnergy(annealParam)
			accept := newEnergy <= energy || rng.Float64() < math.Exp((energy-newEnergy)/temp)
			if accept {
				energy = newEnergy
			} else {
				p.restore(snap)
			}
		}
		temp *= ratio
	}
}

// applyRandomMove mutates the problem in place with one of the five move
// kinds. The move's energy effect is measured by the caller via full
// re-evaluation.
func applyRandomMove(p *Problem, rng *prng.RNG, boxes []*Box, reducedWidth, height int) {
	b := boxes[rng.Intn(len(boxes))]
	switch rng.Intn(5) {
	case 0: // translate ±1
		if rng.Intn(2) == 0 {
			b.CX += float64(rng.IntRange(0, 1)*2 - 1)
		} else {
			b.CY += float64(rng.IntRange(0, 1)*2 - 1)
		}
	case 1: // rotate
		b.W, b.H = b.H, b.W
	case 2: // reshape by ±2
		delta := rng.IntRange(0, 1)*4 - 2
		newW := b.W + delta
		if newW < 1 {
			newW = 1
		}
		b.W = newW
		b.H = int(math.Ceil(float64(b.CLBSize) / float64(b.W)))
		if b.H < 1 {
			b.H = 1
		}
	case 3: // teleport
		b.CX = float64(rng.IntRange(0, max(0, reducedWidth-1))) + 0.5
		b.CY = float64(rng.IntRange(0, max(0, height-1))) + 0.5
	case 4: // swap two boxes' centroids
		other := boxes[rng.Intn(len(boxes))]
		b.CX, other.CX = other.CX, b.CX
		b.CY, other.CY = other.CY, b.CY
	}
	p.syncBounds()
}
