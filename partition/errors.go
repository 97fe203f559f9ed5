package partition

import "errors"

// ErrUnknownBlock indicates AddEdge referenced a block id never registered
// by AddBlock.
var ErrUnknownBlock = errors.New("partition: unknown block id")
