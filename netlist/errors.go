package netlist

import "errors"

// Sentinel errors for netlist construction.
var (
	// ErrEmptyPins indicates a Net was constructed with no pins at all,
	// leaving it without a source.
	ErrEmptyPins = errors.New("netlist: net has no pins")

	// ErrWidthMismatch indicates a pin's declared width disagrees with the
	// net's own bus width.
	ErrWidthMismatch = errors.New("netlist: pin width disagrees with net bus width")

	// ErrSourceNotFirst is an invariant violation: a Net's first pin must be
	// its source after any reordering.
	ErrSourceNotFirst = errors.New("netlist: source pin is not at index 0")
)
