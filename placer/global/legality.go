package global

import (
	"sort"

	"github.com/cgra-tools/pnr/layout"
)

// LegalitySpline precomputes, per block type a cluster still needs, the
// smooth "still needed at this xmin" curve: the knot values are
// a monotonically non-increasing step of remaining demand as xmin sweeps
// past each hidden-column centre of that type, natural-cubic-smoothed so
// the CG optimizer has a usable gradient.
type LegalitySpline struct {
	demand map[layout.Type]int
	spline map[layout.Type]*NaturalCubicSpline
}

// NewLegalitySpline builds splines for every type in demand, using rl's
// hidden column centres.
func NewLegalitySpline(rl *ReducedLayout, demand map[layout.Type]int) *LegalitySpline {
	ls := &LegalitySpline{demand: demand, spline: make(map[layout.Type]*NaturalCubicSpline)}
	for t, need := range demand {
		if need <= 0 {
			continue
		}
		centres := rl.HiddenCentres[t]
		if len(centres) == 0 {
			continue
		}
		xs := make([]float64, 0, len(centres)+2)
		ys := make([]float64, 0, len(centres)+2)
		xs = append(xs, centres[0]-1)
		ys = append(ys, float64(need))
		remaining := need
		for _, c := range centres {
			if remaining > 0 {
				remaining--
			}
			xs = append(xs, c)
			ys = append(ys, float64(remaining))
		}
		xs = append(xs, centres[len(centres)-1]+1)
		ys = append(ys, float64(remaining))
		ls.spline[t] = NewNaturalCubicSpline(xs, ys)
	}
	return ls
}

// Eval returns the still-needed value and its derivative at xmin for type t.
func (ls *LegalitySpline) Eval(t layout.Type, xmin float64) (value, deriv float64) {
	s, ok := ls.spline[t]
	if !ok {
		return 0, 0
	}
	v := s.Eval(xmin)
	if v < 0 {
		v = 0
	}
	return v, s.Derivative(xmin)
}

// Types returns every block type this spline set covers, in ascending type
// order so summation over them stays deterministic.
func (ls *LegalitySpline) Types() []layout.Type {
	out := make([]layout.Type, 0, len(ls.spline))
	for t := range ls.spline {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
