package multiplace

import "errors"

// ErrClusterFailed wraps a single cluster's detailed-placement failure,
// identified by cluster id.
var ErrClusterFailed = errors.New("multiplace: cluster placement failed")
