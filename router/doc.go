// Package router implements the device-graph router: RouterBase owns the
// immutable device graph and the mutable per-node routing state and exposes
// the primitives ripped up / committed / realized by the PathFinder loop in
// GlobalRouter (pathfinder.go).
//
// RouterBase is single-threaded: it is never accessed from more than one
// goroutine, so it holds no locks at all.
package router
