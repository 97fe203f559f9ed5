package global

import "sort"

// NaturalCubicSpline is a standard natural (zero second-derivative at the
// endpoints) cubic spline through a set of knots, evaluable at any x along
// with its first derivative. Outside the knot range the first or last
// segment's cubic is extrapolated; the value is not clamped.
type NaturalCubicSpline struct {
	x, y       []float64
	a, b, c, d []float64 // per-segment coefficients: S_i(t) = a + b*t + c*t^2 + d*t^3, t = x - x_i
}

// NewNaturalCubicSpline fits a natural cubic spline through (x[i], y[i]).
// Points need not be pre-sorted; NewNaturalCubicSpline sorts them by x. At
// least two distinct knots are required; fewer collapses to a constant.
func NewNaturalCubicSpline(xs, ys []float64) *NaturalCubicSpline {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })
	x := make([]float64, n)
	y := make([]float64, n)
	for i, id := range idx {
		x[i] = xs[id]
		y[i] = ys[id]
	}

	s := &NaturalCubicSpline{x: x, y: y}
	if n < 2 {
		s.a = append([]float64(nil), y...)
		s.b = make([]float64, n)
		s.c = make([]float64, n)
		s.d = make([]float64, n)
		return s
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
		if h[i] == 0 {
			h[i] = 1e-9
		}
	}

	// Tridiagonal system for the second derivatives (natural boundary: c[0]=c[n-1]=0).
	alpha := make([]float64, n)
	for i := 1; i < n-1; i++ {
		alpha[i] = 3*(y[i+1]-y[i])/h[i] - 3*(y[i]-y[i-1])/h[i-1]
	}

	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]float64, n)
	l[0] = 1
	for i := 1; i < n-1; i++ {
		l[i] = 2*(x[i+1]-x[i-1]) - h[i-1]*mu[i-1]
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}
	l[n-1] = 1

	c := make([]float64, n)
	b := make([]float64, n)
	d := make([]float64, n-1)
	for j := n - 2; j >= 0; j-- {
		c[j] = z[j] - mu[j]*c[j+1]
		b[j] = (y[j+1]-y[j])/h[j] - h[j]*(c[j+1]+2*c[j])/3
		d[j] = (c[j+1] - c[j]) / (3 * h[j])
	}

	s.a = y
	s.b = b
	s.c = c
	s.d = append(d, 0)
	return s
}

// segment returns the index i such that x lies in [x[i], x[i+1]), clamping
// to the first/last segment outside the domain.
func (s *NaturalCubicSpline) segment(x float64) int {
	n := len(s.x)
	if n <= 1 {
		return 0
	}
	if x <= s.x[0] {
		return 0
	}
	if x >= s.x[n-1] {
		return n - 2
	}
	lo, hi := 0, n-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.x[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Eval returns the spline's value at x.
func (s *NaturalCubicSpline) Eval(x float64) float64 {
	if len(s.x) == 0 {
		return 0
	}
	if len(s.x) == 1 {
		return s.y[0]
	}
	i := s.segment(x)
	t := x - s.x[i]
	return s.a[i] + s.b[i]*t + s.c[i]*t*t + s.d[i]*t*t*t
}

// Derivative returns the spline's first derivative at x.
func (s *NaturalCubicSpline) Derivative(x float64) float64 {
	if len(s.x) < 2 {
		return 0
	}
	i := s.segment(x)
	t := x - s.x[i]
	return s.b[i] + 2*s.c[i]*t + 3*s.d[i]*t*t
}
