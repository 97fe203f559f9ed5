package router

// IterationStats reports the outcome of one PathFinder iteration, returned
// alongside the final routing result for callers that want progress
// diagnostics without re-deriving them from the committed routes.
type IterationStats struct {
	Index      int
	Overflowed bool
	NetsRouted int
}
