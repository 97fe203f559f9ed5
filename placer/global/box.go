package global

import "math"

// Box is a cluster's (or a fixed block's) bounding rectangle in reduced
// x-space, original y-space.
type Box struct {
	ID      string
	CX, CY  float64
	W, H    int
	CLBSize int
	Fixed   bool

	XMin, YMin, XMax, YMax int
}

// recompute derives the integer-valued (xmin,ymin,xmax,ymax) bounds from
// the current centroid and dimensions.
func (b *Box) recompute() {
	b.XMin = int(math.Round(b.CX - float64(b.W)/2))
	b.YMin = int(math.Round(b.CY - float64(b.H)/2))
	b.XMax = b.XMin + b.W
	b.YMax = b.YMin + b.H
}

// NewClusterBox sizes a box from its CLB demand and the target aspect
// ratio: width ≈ ceil(sqrt(clbSize/aspectRatio)), height ≈ ceil(clbSize/w).
func NewClusterBox(id string, clbSize int, aspectRatio, cx, cy float64) *Box {
	w := int(math.Ceil(math.Sqrt(float64(clbSize) / aspectRatio)))
	if w < 1 {
		w = 1
	}
	h := int(math.Ceil(float64(clbSize) / float64(w)))
	if h < 1 {
		h = 1
	}
	b := &Box{ID: id, CX: cx, CY: cy, W: w, H: h, CLBSize: clbSize}
	b.recompute()
	return b
}

// NewFixedBox builds a w=h=1 fixed box at (x,y).
func NewFixedBox(id string, x, y int) *Box {
	b := &Box{ID: id, CX: float64(x) + 0.5, CY: float64(y) + 0.5, W: 1, H: 1, CLBSize: 1, Fixed: true}
	b.recompute()
	return b
}

// Net is an undirected group of box ids sharing a net, used by the HPWL
// star model. Placer nets are unordered pin groups, unlike the routed
// netlist.Net whose Pins[0] is a distinguished source.
type Net struct {
	Boxes []string
}
