package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fullMask(w, h int) [][]bool {
	m := make([][]bool, h)
	for y := range m {
		m[y] = make([]bool, w)
		for x := range m[y] {
			m[y][x] = true
		}
	}
	return m
}

func TestGetBlkType_HighestPriorityWins(t *testing.T) {
	lo := NewLayout(2, 2)
	require.NoError(t, lo.AddLayer('b', fullMask(2, 2), 0, 0))
	memMask := [][]bool{{true, false}, {false, false}}
	require.NoError(t, lo.AddLayer('m', memMask, 1, 0))

	typ, err := lo.GetBlkType(0, 0)
	require.NoError(t, err)
	require.Equal(t, Type('m'), typ)

	typ, err = lo.GetBlkType(1, 0)
	require.NoError(t, err)
	require.Equal(t, Type('b'), typ, "memory mask false here, CLB is the only available layer")
}

func TestGetBlkTypes_SharesHighestMajor(t *testing.T) {
	lo := NewLayout(1, 1)
	require.NoError(t, lo.AddLayer('b', fullMask(1, 1), 0, 0))
	require.NoError(t, lo.AddLayer('m', fullMask(1, 1), 1, 0))
	require.NoError(t, lo.AddLayer('i', fullMask(1, 1), 1, 1))

	types, err := lo.GetBlkTypes(0, 0)
	require.NoError(t, err)
	require.ElementsMatch(t, []Type{'m', 'i'}, types, "only the two major=1 layers share the highest major")
}

func TestAddLayer_DimensionMismatchRejected(t *testing.T) {
	lo := NewLayout(3, 2)
	require.ErrorIs(t, lo.AddLayer('b', fullMask(2, 2), 0, 0), ErrDimensionMismatch)
}

func TestProduceAvailablePos_CountsMatchMask(t *testing.T) {
	lo := NewLayout(2, 2)
	require.NoError(t, lo.AddLayer('b', fullMask(2, 2), 0, 0))
	memMask := [][]bool{{true, false}, {false, true}}
	require.NoError(t, lo.AddLayer('m', memMask, 1, 0))

	pos := lo.ProduceAvailablePos()
	require.Len(t, pos['m'], 2)
	require.Len(t, pos['b'], 2, "the two cells memory doesn't claim")
}
