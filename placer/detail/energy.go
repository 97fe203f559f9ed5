package detail

// netHPWL returns net index ni's half-perimeter wirelength over the blocks'
// current instance positions.
func (p *Placer) netHPWL(ni int) int {
	n := p.nets[ni]
	if len(n.Blocks) < 2 {
		return 0
	}
	minX, minY := 1<<62, 1<<62
	maxX, maxY := -(1 << 62), -(1 << 62)
	any := false
	for _, bid := range n.Blocks {
		inst, ok := p.byBlockID[bid]
		if !ok {
			continue
		}
		any = true
		if inst.X < minX {
			minX = inst.X
		}
		if inst.X > maxX {
			maxX = inst.X
		}
		if inst.Y < minY {
			minY = inst.Y
		}
		if inst.Y > maxY {
			maxY = inst.Y
		}
	}
	if !any {
		return 0
	}
	return (maxX - minX) + (maxY - minY)
}

// Energy returns the full placement's HPWL: the sum over every net.
func (p *Placer) Energy() int {
	total := 0
	for ni := range p.nets {
		total += p.netHPWL(ni)
	}
	return total
}

// touchedNets returns the deduplicated set of net indices either instance
// participates in, used to restrict move-energy recomputation to the nets
// the move can actually change.
func (p *Placer) touchedNets(a, b *Instance) []int {
	seen := make(map[int]bool)
	var out []int
	add := func(id int) {
		for _, ni := range p.netTouch[id] {
			if !seen[ni] {
				seen[ni] = true
				out = append(out, ni)
			}
		}
	}
	add(a.ID)
	if b != nil {
		add(b.ID)
	}
	return out
}

// touchedEnergy sums netHPWL over a set of net indices.
func (p *Placer) touchedEnergy(nets []int) int {
	total := 0
	for _, ni := range nets {
		total += p.netHPWL(ni)
	}
	return total
}
