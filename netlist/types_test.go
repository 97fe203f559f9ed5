package netlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNet_SourceIsPinZero(t *testing.T) {
	pins := []Pin{
		{BlockID: "b0", Port: "out"},
		{BlockID: "b1", Port: "in"},
	}
	n, err := NewNet(1, "n1", pins, 0, false)
	require.NoError(t, err)
	require.Equal(t, "b0", n.Source().BlockID)
	require.Len(t, n.Sinks(), 1)
	require.Equal(t, 1, n.FanOut())
}

func TestNewNet_EmptyPinsRejected(t *testing.T) {
	_, err := NewNet(1, "n1", nil, 0, false)
	require.ErrorIs(t, err, ErrEmptyPins)
}

func TestNewNet_WidthMismatchRejected(t *testing.T) {
	pins := []Pin{
		{BlockID: "b0", Port: "out", Width: 4},
		{BlockID: "b1", Port: "in", Width: 8},
	}
	_, err := NewNet(1, "n1", pins, 4, false)
	require.ErrorIs(t, err, ErrWidthMismatch)
}

func TestPin_IsRegisterSink(t *testing.T) {
	require.True(t, Pin{BlockID: "r0"}.IsRegisterSink())
	require.False(t, Pin{BlockID: "b0"}.IsRegisterSink())
}

func TestValidateSourceFirst(t *testing.T) {
	pins := []Pin{{BlockID: "b0", Port: "out"}, {BlockID: "b1", Port: "in"}}
	n, err := NewNet(1, "n1", pins, 0, false)
	require.NoError(t, err)
	require.NoError(t, ValidateSourceFirst(n, "b0", "out"))
	require.ErrorIs(t, ValidateSourceFirst(n, "b1", "in"), ErrSourceNotFirst)
}
