// Package devgraph models the device routing graph: a typed, tile-owned node
// graph with switch-box side/direction semantics, used both as the global
// router's search space and as the device description's in-memory form.
//
// A RoutingGraph is a map from (x,y) to Tile. Each Tile owns its boundary
// SwitchBoxNodes (grouped by side and track), its named PortNodes and its
// named RegisterNodes — all three are represented by the single tagged Node
// type (see node.go) rather than an interface hierarchy, since the three
// kinds differ only in which attributes apply, not in behavior.
//
// Switch is a reusable per-tile template: given a width, id and track count,
// it enumerates the internal wires connecting a tile's boundary nodes. Three
// generators are provided (disjoint, Wilton, Imran); a Switch is instantiated
// into as many tiles as share it.
//
// All "node not found" and "width mismatch" conditions are reported via the
// sentinel errors in errors.go and are always fatal to the caller: they
// indicate a malformed device description, never a routability failure.
package devgraph
