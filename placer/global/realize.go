package global

import (
	"fmt"
	"sort"

	"github.com/cgra-tools/pnr/layout"
)

// Realized is the outcome of cell realization: for every
// cluster, the set of original-board cells it owns, split into its CLB
// cells and its special-block cells by type.
type Realized struct {
	CLBCells     map[string][][2]int
	SpecialCells map[string]map[layout.Type][][2]int
}

// Realize materialises every cluster's bounding rectangle, resolves
// overlap by contested-cell distribution, and assigns special-block cells
// to the nearest cluster still short of its demand, reserving two cells of
// slack per special type.
func Realize(p *Problem, rl *ReducedLayout, lo *layout.Layout, clb layout.Type, demand map[string]map[layout.Type]int) (*Realized, error) {
	clusters := p.movable()
	owner := make(map[[2]int]string)
	contested := make(map[[2]int][]string)

	rectCells := make(map[string][][2]int, len(clusters))
	for _, b := range clusters {
		var cells [][2]int
		for rx := b.XMin; rx < b.XMax; rx++ {
			ox := rl.ToOriginal(rx)
			for oy := b.YMin; oy < b.YMax; oy++ {
				if oy < 0 || oy >= lo.Height {
					continue
				}
				t, err := lo.GetBlkType(ox, oy)
				if err != nil || t != clb {
					continue
				}
				cells = append(cells, [2]int{ox, oy})
			}
		}
		rectCells[b.ID] = cells
	}

	for _, b := range clusters {
		for _, c := range rectCells[b.ID] {
			contested[c] = append(contested[c], b.ID)
		}
	}

	claimed := make(map[string]map[[2]int]bool, len(clusters))
	for _, b := range clusters {
		claimed[b.ID] = make(map[[2]int]bool)
	}

	var contestedCells [][2]int
	for c, owners := range contested {
		if len(owners) == 1 {
			owner[c] = owners[0]
			claimed[owners[0]][c] = true
		} else {
			contestedCells = append(contestedCells, c)
		}
	}
	sort.Slice(contestedCells, func(i, j int) bool {
		if contestedCells[i][0] != contestedCells[j][0] {
			return contestedCells[i][0] < contestedCells[j][0]
		}
		return contestedCells[i][1] < contestedCells[j][1]
	})

	sort.Slice(clusters, func(i, j int) bool {
		ri := float64(len(rectCells[clusters[i].ID])) / float64(max(1, len(contested)))
		rj := float64(len(rectCells[clusters[j].ID])) / float64(max(1, len(contested)))
		if ri != rj {
			return ri > rj
		}
		return clusters[i].ID < clusters[j].ID
	})

	for _, b := range clusters {
		need := b.CLBSize - len(claimed[b.ID])
		if need <= 0 {
			continue
		}
		candidates := make([][2]int, 0)
		for _, c := range contestedCells {
			if owner[c] != "" {
				continue
			}
			for _, cand := range contested[c] {
				if cand == b.ID {
					candidates = append(candidates, c)
					break
				}
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return manhattanToCentre(candidates[i], b) < manhattanToCentre(candidates[j], b)
		})
		for _, c := range candidates {
			if need <= 0 {
				break
			}
			owner[c] = b.ID
			claimed[b.ID][c] = true
			need--
		}
	}

	// Grow outward into unclaimed board CLB cells for any cluster still
	// short, ordered by Manhattan distance from its centroid.
	for _, b := range clusters {
		need := b.CLBSize - len(claimed[b.ID])
		if need <= 0 {
			continue
		}
		var pool [][2]int
		for x := 0; x < lo.Width; x++ {
			for y := 0; y < lo.Height; y++ {
				c := [2]int{x, y}
				if owner[c] != "" {
					continue
				}
				t, err := lo.GetBlkType(x, y)
				if err != nil || t != clb {
					continue
				}
				pool = append(pool, c)
			}
		}
		sort.SliceStable(pool, func(i, j int) bool {
			return manhattanToCentre(pool[i], b) < manhattanToCentre(pool[j], b)
		})
		for _, c := range pool {
			if need <= 0 {
				break
			}
			owner[c] = b.ID
			claimed[b.ID][c] = true
			need--
		}
		if need > 0 {
			return nil, fmt.Errorf("global: Realize(%s): %w", b.ID, ErrInsufficientCells)
		}
	}

	clbOut := make(map[string][][2]int, len(clusters))
	for _, b := range clusters {
		cells := make([][2]int, 0, len(claimed[b.ID]))
		for c := range claimed[b.ID] {
			cells = append(cells, c)
		}
		sort.Slice(cells, func(i, j int) bool {
			if cells[i][0] != cells[j][0] {
				return cells[i][0] < cells[j][0]
			}
			return cells[i][1] < cells[j][1]
		})
		clbOut[b.ID] = cells
	}

	specialOut, err := assignSpecialCells(clusters, lo, clb, demand)
	if err != nil {
		return nil, err
	}

	if err := checkDisjoint(clbOut); err != nil {
		return nil, err
	}
	return &Realized{CLBCells: clbOut, SpecialCells: specialOut}, nil
}

// checkDisjoint verifies no cell was claimed by two clusters; a collision
// is fatal.
func checkDisjoint(claims map[string][][2]int) error {
	seen := make(map[[2]int]string)
	for id, cells := range claims {
		for _, c := range cells {
			if other, ok := seen[c]; ok && other != id {
				return fmt.Errorf("global: checkDisjoint(%v): clusters %s and %s: %w", c, other, id, ErrCellCollision)
			}
			seen[c] = id
		}
	}
	return nil
}

func manhattanToCentre(c [2]int, b *Box) int {
	dx := c[0] - int(b.CX)
	dy := c[1] - int(b.CY)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// assignSpecialCells assigns every non-CLB, non-empty board cell to the
// nearest cluster still short of its demand for that type, intentionally
// reserving two cells of slack per type.
func assignSpecialCells(clusters []*Box, lo *layout.Layout, clb layout.Type, demand map[string]map[layout.Type]int) (map[string]map[layout.Type][][2]int, error) {
	byType := make(map[layout.Type][][2]int)
	for x := 0; x < lo.Width; x++ {
		for y := 0; y < lo.Height; y++ {
			t, err := lo.GetBlkType(x, y)
			if err != nil || t == clb {
				continue
			}
			byType[t] = append(byType[t], [2]int{x, y})
		}
	}

	remaining := make(map[string]map[layout.Type]int, len(clusters))
	for _, b := range clusters {
		remaining[b.ID] = make(map[layout.Type]int)
		for t, n := range demand[b.ID] {
			if n > 0 && lo.Layer(t) == nil {
				return nil, fmt.Errorf("global: assignSpecialCells(%s,%c): %w", b.ID, rune(t), ErrUnknownBlockType)
			}
			remaining[b.ID][t] = n
		}
	}

	out := make(map[string]map[layout.Type][][2]int, len(clusters))
	for _, b := range clusters {
		out[b.ID] = make(map[layout.Type][][2]int)
	}

	for t, cells := range byType {
		totalDemand := 0
		for _, b := range clusters {
			totalDemand += remaining[b.ID][t]
		}
		supply := len(cells) - 2 // slack
		if supply < totalDemand {
			return nil, fmt.Errorf("global: assignSpecialCells(%c): %w", rune(t), ErrInsufficientCells)
		}

		sort.Slice(cells, func(i, j int) bool {
			if cells[i][0] != cells[j][0] {
				return cells[i][0] < cells[j][0]
			}
			return cells[i][1] < cells[j][1]
		})

		for _, c := range cells {
			var best *Box
			bestDist := -1
			for _, b := range clusters {
				if remaining[b.ID][t] <= 0 {
					continue
				}
				d := manhattanToCentre(c, b)
				if bestDist == -1 || d < bestDist {
					bestDist = d
					best = b
				}
			}
			if best == nil {
				continue
			}
			out[best.ID][t] = append(out[best.ID][t], c)
			remaining[best.ID][t]--
		}
	}

	return out, nil
}
