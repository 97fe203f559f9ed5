package astar

import "errors"

// ErrUnableToRoute is returned when the open set empties before any node
// satisfying the goal predicate is popped.
var ErrUnableToRoute = errors.New("astar: unable to route: open set exhausted before goal reached")

// ErrNilStart is returned when Search is called with a nil start node.
var ErrNilStart = errors.New("astar: start node is nil")
