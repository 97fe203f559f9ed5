// Package netlist models a packed netlist: nets as ordered (source,
// sinks…) pin lists. A Pin carries a tile coordinate, a block id, a port
// name, an optional resolved devgraph.Node and an id; pin index 0 of a Net
// is always its source.
//
// Register-sink pins (block id beginning with 'r') are
// constructed with an unresolved Node. The concrete location is chosen
// during routing by router.GlobalRouter, which keeps it in its own
// per-iteration state; the Pin's Node field is not updated and stays nil.
package netlist
