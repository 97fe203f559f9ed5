package detail

import "errors"

// Sentinel errors for detailed placement.
var (
	// ErrCellShortage indicates a block type has more blocks than cells.
	ErrCellShortage = errors.New("detail: more blocks than cells for type")

	// ErrUnknownType indicates a block references a type with no cells at
	// all in this cluster.
	ErrUnknownType = errors.New("detail: no cells of type")
)
