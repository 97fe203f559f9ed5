package devgraph

// Wire is one internal connection of a Switch template: track trackFrom on
// side sideFrom connects to track trackTo on side sideTo, both within the
// same tile boundary.
type Wire struct {
	TrackFrom int
	SideFrom  Side
	TrackTo   int
	SideTo    Side
}

// Switch is a reusable switch-box template: for a given bit width, id and
// track count it enumerates the internal wires connecting a
// tile's 4*NumTrack boundary positions (one In and one Out node at each,
// 8*NumTrack nodes in all). A Switch is instantiated into every tile
// that uses it; templates are compared by ID to deduplicate on dump (the
// persistence side is out of this repo's scope, but the ID field exists so a
// future loader/dumper can do so).
type Switch struct {
	ID       int
	Width    int
	NumTrack int
	Wires    []Wire
}

// NewSwitch constructs a Switch template from an explicit wire list.
func NewSwitch(id, width, numTrack int, wires []Wire) *Switch {
	return &Switch{ID: id, Width: width, NumTrack: numTrack, Wires: wires}
}

// allSides enumerates the four sides in a fixed, deterministic order.
var allSides = [4]Side{Right, Bottom, Left, Top}

// DisjointWires builds the "disjoint" switch pattern: every outgoing track
// on every side connects to the same-index track on each of the three other
// sides, giving numTrack*4*3 wires.
func DisjointWires(numTrack int) []Wire {
	wires := make([]Wire, 0, numTrack*4*3)
	for _, sideFrom := range allSides {
		for _, sideTo := range allSides {
			if sideFrom == sideTo {
				continue
			}
			for t := 0; t < numTrack; t++ {
				wires = append(wires, Wire{TrackFrom: t, SideFrom: sideFrom, TrackTo: t, SideTo: sideTo})
			}
		}
	}
	return wires
}

// WiltonWires builds the Wilton switch pattern: track t entering side
// sideFrom exits side sideTo on track (t + offset) mod numTrack, where
// offset is derived from the rotational distance between sideFrom and
// sideTo (1 side away: +1 track rotation per published Wilton formula; 2
// sides away, i.e. straight-through: no rotation; the asymmetry between
// clockwise and counter-clockwise turns is what distinguishes Wilton from
// the disjoint pattern).
func WiltonWires(numTrack int) []Wire {
	wires := make([]Wire, 0, numTrack*4*3)
	for _, sideFrom := range allSides {
		for _, sideTo := range allSides {
			if sideFrom == sideTo {
				continue
			}
			offset := wiltonOffset(sideFrom, sideTo)
			for t := 0; t < numTrack; t++ {
				to := ((t+offset)%numTrack + numTrack) % numTrack
				wires = append(wires, Wire{TrackFrom: t, SideFrom: sideFrom, TrackTo: to, SideTo: sideTo})
			}
		}
	}
	return wires
}

// wiltonOffset encodes the per-turn track rotation of the Wilton pattern:
// straight-through (opposite side) keeps the same track; a clockwise turn
// shifts by +1; a counter-clockwise turn shifts by -1.
func wiltonOffset(from, to Side) int {
	d := (int(to) - int(from) + 4) % 4
	switch d {
	case 2: // straight through
		return 0
	case 1: // clockwise
		return 1
	case 3: // counter-clockwise
		return -1
	default:
		return 0
	}
}

// ImranWires builds the Imran switch pattern: like Wilton but the rotation
// offset also depends on parity of the track index, giving a denser,
// less-regular permutation that trades a slightly longer critical path for
// fewer systematic correlations between adjacent tracks.
func ImranWires(numTrack int) []Wire {
	wires := make([]Wire, 0, numTrack*4*3)
	for _, sideFrom := range allSides {
		for _, sideTo := range allSides {
			if sideFrom == sideTo {
				continue
			}
			base := wiltonOffset(sideFrom, sideTo)
			for t := 0; t < numTrack; t++ {
				offset := base
				if t%2 == 1 {
					offset = -base
				}
				to := ((t+offset)%numTrack + numTrack) % numTrack
				wires = append(wires, Wire{TrackFrom: t, SideFrom: sideFrom, TrackTo: to, SideTo: sideTo})
			}
		}
	}
	return wires
}
