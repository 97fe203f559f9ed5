package detail

// forbiddenAt reports whether placing inst at (x,y) would violate the
// register-folding forbidden-tile constraint.
// A driving register must not coincide with any downstream sink's current
// cell, and vice versa — checked symmetrically since either side of the
// pair may be the one moving.
func (p *Placer) forbiddenAt(inst *Instance, x, y int) bool {
	if inst.BlockID < 0 {
		return false
	}
	for _, sinkID := range p.driverSinks[inst.BlockID] {
		if sink, ok := p.byBlockID[sinkID]; ok && sink.X == x && sink.Y == y {
			return true
		}
	}
	for _, driverID := range p.sinkDrivers[inst.BlockID] {
		if drv, ok := p.byBlockID[driverID]; ok && drv.X == x && drv.Y == y {
			return true
		}
	}
	return false
}

// legalizeStart runs a one-shot legalization pass before the first SA
// temperature: any
// register instance currently coinciding with a downstream sink's tile is
// relocated to the first free register cell, in ascending (x, y) order of
// registerCells, that clears the conflict.
func (p *Placer) legalizeStart() {
	rng, ok := p.typeRange[registerType]
	if !ok {
		return
	}
	idx := p.posIndex[registerType]
	for i := rng[0]; i < rng[1]; i++ {
		inst := p.instances[i]
		if !p.forbiddenAt(inst, inst.X, inst.Y) {
			continue
		}
		for _, pos := range p.registerCells {
			occupant, tracked := idx[pos]
			if tracked && occupant != -1 && occupant != inst.ID {
				continue
			}
			if p.forbiddenAt(inst, pos[0], pos[1]) {
				continue
			}
			old := [2]int{inst.X, inst.Y}
			idx[old] = -1
			inst.X, inst.Y = pos[0], pos[1]
			idx[pos] = inst.ID
			break
		}
	}
}
