// Package layout models the device's 2-D block-type floorplan:
// one boolean availability mask per block-type character, each carrying a
// (priority_major, priority_minor) pair used to resolve which type owns a
// cell when more than one layer claims it.
package layout
