package netlist

import (
	"fmt"
	"strings"

	"github.com/cgra-tools/pnr/devgraph"
)

// RegisterSinkPrefix is the block-id prefix that marks a sink pin as a
// register sink whose concrete location is chosen during routing rather
// than known up front.
const RegisterSinkPrefix = "r"

// Pin is one endpoint of a Net: a block id at a tile coordinate, bound to a
// named port, optionally resolved to a concrete devgraph.Node.
type Pin struct {
	ID      int
	X, Y    int
	BlockID string
	Port    string
	Node    *devgraph.Node // nil until resolved (register sinks pre-route)
	Width   int
}

// IsRegisterSink reports whether this pin's block id marks it as a
// register sink.
func (p Pin) IsRegisterSink() bool {
	return strings.HasPrefix(p.BlockID, RegisterSinkPrefix)
}

// Key returns a stable identifier for the pin, used as a map key by router
// state that must be keyed by sink identity rather than positional index:
// the router reorders sinks, so positions are not stable.
func (p Pin) Key() string {
	return fmt.Sprintf("%s:%s", p.BlockID, p.Port)
}

// Net is an ordered (source, sinks…) pin list. Pins[0] is always the
// source.
type Net struct {
	ID    int
	Name  string
	Pins  []Pin
	Fixed bool
	Width int // declared bus width, 0 if the net is unbussed
}

// NewNet constructs a Net, validating that it is non-empty and that every
// pin's declared (non-zero) width agrees with width.
func NewNet(id int, name string, pins []Pin, width int, fixed bool) (*Net, error) {
	if len(pins) == 0 {
		return nil, fmt.Errorf("netlist: NewNet(%s): %w", name, ErrEmptyPins)
	}
	for _, p := range pins {
		if width != 0 && p.Width != 0 && p.Width != width {
			return nil, fmt.Errorf("netlist: NewNet(%s): pin %s width=%d: %w", name, p.Key(), p.Width, ErrWidthMismatch)
		}
	}
	return &Net{ID: id, Name: name, Pins: pins, Fixed: fixed, Width: width}, nil
}

// Source returns the net's source pin (always Pins[0]).
func (n *Net) Source() Pin { return n.Pins[0] }

// Sinks returns every pin but the source.
func (n *Net) Sinks() []Pin { return n.Pins[1:] }

// FanOut is the number of sinks, used by PathFinder net ordering.
func (n *Net) FanOut() int { return len(n.Pins) - 1 }

// ValidateSourceFirst checks that the pin at index 0 is the one the caller
// designated as source. Callers that reorder sinks must call this after
// reordering, never before.
func ValidateSourceFirst(n *Net, sourceBlockID, sourcePort string) error {
	if len(n.Pins) == 0 {
		return fmt.Errorf("netlist: ValidateSourceFirst(%s): %w", n.Name, ErrEmptyPins)
	}
	if n.Pins[0].BlockID != sourceBlockID || n.Pins[0].Port != sourcePort {
		return fmt.Errorf("netlist: ValidateSourceFirst(%s): %w", n.Name, ErrSourceNotFirst)
	}
	return nil
}
