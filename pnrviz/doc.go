// Package pnrviz renders a placement and (optionally) a routed netlist to
// SVG for debugging and inspection. It draws node and cell geometry only —
// it does not encode programming bits.
package pnrviz
