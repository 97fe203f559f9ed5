package router

import "errors"

// Sentinel errors for router operations.
var (
	// ErrUnplacedBlock indicates add_net referenced a block id with no
	// prior add_placement call.
	ErrUnplacedBlock = errors.New("router: block has no placement")

	// ErrUnknownNet indicates an operation referenced a net id/name that
	// was never registered via add_net.
	ErrUnknownNet = errors.New("router: unknown net")

	// ErrUnableToRoute is the outer PathFinder failure: the iteration
	// budget was exhausted with overflow still present.
	ErrUnableToRoute = errors.New("router: unable to route within iteration budget")

	// ErrNoFreeRegisterCell indicates no free switch-box node exists at the
	// register sink's mandated tile.
	ErrNoFreeRegisterCell = errors.New("router: no free register cell in mandated tile")

	// ErrInvariantViolation flags a programming-error condition: e.g. a
	// net whose source node is still unresolved when the net is routed.
	ErrInvariantViolation = errors.New("router: invariant violation")
)
