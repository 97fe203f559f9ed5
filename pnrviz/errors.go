package pnrviz

import "errors"

// ErrEmptyLayout indicates the layout has zero width or height.
var ErrEmptyLayout = errors.New("pnrviz: layout has zero width or height")
