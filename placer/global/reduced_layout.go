package global

import (
	"sort"

	"github.com/cgra-tools/pnr/layout"
)

// ReducedLayout hides every column whose primary block type at every row is
// neither the CLB type nor empty. A column survives the
// reduction if at least one row in it is CLB or has no assigned type at
// all; special-block-only columns (memory, IO, DSP, …) are hidden so the
// CG optimizer only ever moves cluster boxes across CLB-addressable space.
type ReducedLayout struct {
	Layout *layout.Layout
	CLB    layout.Type

	// ReducedToOriginal[i] is the original x coordinate of reduced column i.
	ReducedToOriginal []int
	originalToReduced  map[int]int

	// HiddenCentres[t] lists the x+0.5 centre of every hidden column whose
	// sole occupant type is t, used to evaluate how many special-block slots
	// a cluster's bounding rectangle covers.
	HiddenCentres map[layout.Type][]float64
}

// NewReducedLayout builds the reduction described above.
func NewReducedLayout(lo *layout.Layout, clb layout.Type) *ReducedLayout {
	rl := &ReducedLayout{
		Layout:            lo,
		CLB:               clb,
		originalToReduced: make(map[int]int),
		HiddenCentres:     make(map[layout.Type][]float64),
	}

	for x := 0; x < lo.Width; x++ {
		keep := false
		hiddenType := layout.Type(0)
		sawType := false
		uniform := true
		for y := 0; y < lo.Height; y++ {
			t, err := lo.GetBlkType(x, y)
			if err != nil {
				keep = true // empty cell: column survives
				continue
			}
			if t == clb {
				keep = true
				continue
			}
			if !sawType {
				hiddenType = t
				sawType = true
			} else if hiddenType != t {
				uniform = false
			}
		}
		if keep {
			reducedX := len(rl.ReducedToOriginal)
			rl.ReducedToOriginal = append(rl.ReducedToOriginal, x)
			rl.originalToReduced[x] = reducedX
			continue
		}
		if sawType && uniform {
			rl.HiddenCentres[hiddenType] = append(rl.HiddenCentres[hiddenType], float64(x)+0.5)
		}
	}

	for t := range rl.HiddenCentres {
		sort.Float64s(rl.HiddenCentres[t])
	}
	return rl
}

// ToOriginal maps a reduced-space x back to the original board's x.
func (rl *ReducedLayout) ToOriginal(reducedX int) int {
	if reducedX < 0 {
		return 0
	}
	if reducedX >= len(rl.ReducedToOriginal) {
		return rl.Layout.Width - 1
	}
	return rl.ReducedToOriginal[reducedX]
}

// Width is the number of reduced columns.
func (rl *ReducedLayout) Width() int { return len(rl.ReducedToOriginal) }
