package global

import (
	"math"

	"github.com/cgra-tools/pnr/pnrconfig"
)

// Problem bundles everything the continuous objective needs:
// the box set (clusters plus fixed-position blocks), the star-model nets
// between them, and each cluster's special-block demand expressed as a
// legality spline built once against the reduced layout's hidden columns.
type Problem struct {
	Boxes        []*Box
	byID         map[string]*Box
	Nets         []Net
	Legal        map[string]*LegalitySpline // clusterID -> spline set, nil if no special demand
	Cfg          pnrconfig.Config
	midAxisIsX   bool
	midline      float64
	aspectSigma2 float64
}

// NewProblem indexes boxes and precomputes the aspect midline and its
// variance σ² = (2·aspect_ratio)⁴.
func NewProblem(boxes []*Box, nets []Net, legal map[string]*LegalitySpline, cfg pnrconfig.Config, reducedWidth, height int) *Problem {
	p := &Problem{Boxes: boxes, Nets: nets, Legal: legal, Cfg: cfg, byID: make(map[string]*Box, len(boxes))}
	for _, b := range boxes {
		p.byID[b.ID] = b
	}
	p.midAxisIsX = reducedWidth >= height
	if p.midAxisIsX {
		p.midline = float64(reducedWidth) / 2
	} else {
		p.midline = float64(height) / 2
	}
	s := 2 * cfg.AspectRatio
	p.aspectSigma2 = s * s * s * s
	return p
}

func (p *Problem) box(id string) *Box { return p.byID[id] }

// hpwl is the star-model quadratic proxy: for each net's N
// boxes with centroid (x̄,ȳ), Σ_i (x_i-x̄)² + (y_i-ȳ)².
func (p *Problem) hpwl() float64 {
	var total float64
	for _, net := range p.Nets {
		n := len(net.Boxes)
		if n < 2 {
			continue
		}
		var sx, sy float64
		for _, id := range net.Boxes {
			b := p.box(id)
			sx += b.CX
			sy += b.CY
		}
		mx, my := sx/float64(n), sy/float64(n)
		for _, id := range net.Boxes {
			b := p.box(id)
			dx, dy := b.CX-mx, b.CY-my
			total += dx*dx + dy*dy
		}
	}
	return total
}

// overlap sums (d²-ref²)² over non-fixed box pairs whose centre-distance²
// is below ref² = ((w1+w2+h1+h2)/2)².
func (p *Problem) overlap() float64 {
	var total float64
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
			dx, dy := a.CX-b.CX, a.CY-b.CY
			d2 := dx*dx + dy*dy
			refSum := float64(a.W+b.W+a.H+b.H) / 2
			ref2 := refSum * refSum
			if d2 < ref2 {
				diff := d2 - ref2
				total += diff * diff
			}
		}
	}
	return total
}

// legal sums every cluster's per-type spline evaluated at its current
// xmin.
func (p *Problem) legal() float64 {
	var total float64
	for _, b := range p.Boxes {
		ls, ok := p.Legal[b.ID]
		if !ok || ls == nil {
			continue
		}
		for _, t := range ls.Types() {
			v, _ := ls.Eval(t, float64(b.XMin))
			total += v
		}
	}
	return total
}

// aspect pulls every non-fixed box toward the board midline of its longer
// dimension via a Gaussian penalty: cost grows from 0 at the
// midline toward 1 far away from it.
func (p *Problem) aspect() float64 {
	var total float64
	for _, b := range p.Boxes {
		if b.Fixed {
			continue
		}
		var d float64
		if p.midAxisIsX {
			d = b.CX - p.midline
		} else {
			d = b.CY - p.midline
		}
		total += 1 - math.Exp(-(d*d)/(2*p.aspectSigma2))
	}
	return total
}

// Evaluate returns F and its HPWL term; CG tracks HPWL separately as its
// stops-improving stopping signal.
func (p *Problem) Evaluate() (f, hpwlVal float64) {
	hpwlVal = p.hpwl()
	f = p.Cfg.HPWLParam*hpwlVal + p.Cfg.PotentialParam*p.overlap() + p.Cfg.LegalParam*p.legal() + p.Cfg.AspectParam*p.aspect()
	return f, hpwlVal
}

// syncBounds recomputes every box's integer bounds from its centroid; call
// after mutating CX/CY directly.
func (p *Problem) syncBounds() {
	for _, b := range p.Boxes {
		b.recompute()
	}
}

// movable returns every non-fixed box, in a stable order matching Boxes.
func (p *Problem) movable() []*Box {
	out := make([]*Box, 0, len(p.Boxes))
	for _, b := range p.Boxes {
		if !b.Fixed {
			out = append(out, b)
		}
	}
	return out
}
