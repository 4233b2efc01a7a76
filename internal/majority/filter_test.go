package majority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_CenterTakesNeighborhoodMode(t *testing.T) {
	data := []int32{
		1, 1, 1,
		2, 2, 3,
		-1, -1, -1,
	}

	out, err := Filter(data, 3, 3, 3)
	require.NoError(t, err)
	// Three votes for 1 against two for 2; the missing row never votes.
	assert.Equal(t, int32(1), out[4])
}

func TestFilter_MissingNeverVotes(t *testing.T) {
	data := []int32{
		-1, -1, -1,
		-1, 7, -1,
		-1, -1, -1,
	}

	out, err := Filter(data, 3, 3, 3)
	require.NoError(t, err)
	for _, v := range out {
		assert.Equal(t, int32(7), v)
	}
}

func TestFilter_AllMissingYieldsNoData(t *testing.T) {
	data := []int32{-1, -1, -1, -1}

	out, err := Filter(data, 2, 2, 3)
	require.NoError(t, err)
	for _, v := range out {
		assert.Equal(t, NoData, v)
	}
}

func TestFilter_AlternatingColumns(t *testing.T) {
	// Uniform columns of 5 and 2: every 3x3 neighborhood resolves to
	// whichever column dominates it.
	data := []int32{
		5, 2, 5, 2,
		5, 2, 5, 2,
		5, 2, 5, 2,
	}

	out, err := Filter(data, 4, 3, 3)
	require.NoError(t, err)
	// Column 1 sees columns 0..2: six 5s against three 2s.
	assert.Equal(t, int32(5), out[4+1])
	// Column 2 sees columns 1..3: three 5s against six 2s.
	assert.Equal(t, int32(2), out[4+2])
	// Column 0 replicates its left edge: six 5s, three 2s.
	assert.Equal(t, int32(5), out[4])
	// Column 3 replicates its right edge: six 2s, three 5s.
	assert.Equal(t, int32(2), out[4+3])
}

func TestFilter_ExactTie(t *testing.T) {
	// The center neighborhood holds four 9s, four 4s and one missing
	// pixel: the tie resolves to the smaller value.
	data := []int32{
		9, 9, 4,
		4, -1, 9,
		9, 4, 4,
	}

	out, err := Filter(data, 3, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(4), out[4])
}

func TestFilter_EdgeReplication(t *testing.T) {
	data := []int32{
		1, 2,
		1, 2,
	}

	out, err := Filter(data, 2, 2, 3)
	require.NoError(t, err)
	// Pixel (0,0) sees replicated column 0 twice: six 1s, three 2s.
	assert.Equal(t, int32(1), out[0])
	assert.Equal(t, int32(2), out[1])
}

func TestFilter_RejectsBadParameters(t *testing.T) {
	data := make([]int32, 9)

	_, err := Filter(data, 3, 3, 4)
	assert.Error(t, err)
	_, err = Filter(data, 3, 3, 1)
	assert.Error(t, err)
	_, err = Filter(data, 4, 3, 3)
	assert.Error(t, err)
}
