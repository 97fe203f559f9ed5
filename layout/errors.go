package layout

import "errors"

// Sentinel errors for layout construction.
var (
	// ErrDimensionMismatch indicates a layer mask's (width, height) disagrees
	// with the layout's already-established dimensions.
	ErrDimensionMismatch = errors.New("layout: layer dimensions mismatch")

	// ErrOutOfBounds indicates a coordinate query fell outside the layout's
	// (width, height).
	ErrOutOfBounds = errors.New("layout: coordinate out of bounds")

	// ErrNoType indicates get_blk_type found no layer whose mask is true at
	// the queried coordinate.
	ErrNoType = errors.New("layout: no block type at coordinate")

	// ErrDuplicateType indicates AddLayer was called twice with the same
	// block-type character.
	ErrDuplicateType = errors.New("layout: duplicate block type")
)
