package global

import "errors"

var (
	// ErrNoClusters is returned when Place is called with an empty cluster
	// set: there is nothing to lay out.
	ErrNoClusters = errors.New("global: no clusters to place")

	// ErrUnknownBlockType indicates a cluster's special-block demand names a
	// type absent from the Layout.
	ErrUnknownBlockType = errors.New("global: unknown block type")

	// ErrInsufficientCells is returned by Realize when a cluster's bounding
	// rectangle plus its exterior growth cannot supply clb_size CLB cells,
	// or when special-block demand exceeds the board's supply.
	ErrInsufficientCells = errors.New("global: insufficient cells to satisfy cluster demand")

	// ErrCellCollision indicates two clusters claimed the same cell during
	// realization; always fatal.
	ErrCellCollision = errors.New("global: colliding cell claim")
)
