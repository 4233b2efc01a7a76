package stack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

var nan = math.NaN()

func TestFillFromNeighbors(t *testing.T) {
	prev := raster.NewGridFromData(2, 2, []float64{0.40, 0.30, nan, nan})
	target := raster.NewGridFromData(2, 2, []float64{nan, nan, nan, 0.90})
	next := raster.NewGridFromData(2, 2, []float64{0.60, nan, nan, 0.10})
	slices := []*raster.Grid{prev, target, next}

	report, err := FillFromNeighbors(slices, 1)
	require.NoError(t, err)

	filled := slices[1]
	// Both neighbors valid: their mean.
	assert.InDelta(t, 0.50, filled.At(0, 0), 1e-12)
	// Only the earlier neighbor valid.
	assert.Equal(t, 0.30, filled.At(0, 1))
	// Neither neighbor valid.
	assert.True(t, math.IsNaN(filled.At(1, 0)))
	// Already valid pixels stay untouched.
	assert.Equal(t, 0.90, filled.At(1, 1))

	assert.Equal(t, GapFillReport{KeptOriginal: 1, Filled: 2, StillMissing: 1}, report)
}

func TestFillFromNeighbors_OnlyLaterNeighbor(t *testing.T) {
	slices := []*raster.Grid{
		raster.NewGridFromData(1, 1, []float64{nan}),
		raster.NewGridFromData(1, 1, []float64{nan}),
		raster.NewGridFromData(1, 1, []float64{0.75}),
	}

	_, err := FillFromNeighbors(slices, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.75, slices[1].At(0, 0))
}

func TestFillFromNeighbors_NeighborsAreReadOnly(t *testing.T) {
	prev := raster.NewGridFromData(1, 1, []float64{0.2})
	next := raster.NewGridFromData(1, 1, []float64{0.4})
	slices := []*raster.Grid{prev, raster.NewGridFromData(1, 1, []float64{nan}), next}

	_, err := FillFromNeighbors(slices, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.2, prev.At(0, 0))
	assert.Equal(t, 0.4, next.At(0, 0))
}

func TestFillFromNeighbors_EdgeSliceIsError(t *testing.T) {
	slices := []*raster.Grid{
		raster.NewGridFromData(1, 1, []float64{0.1}),
		raster.NewGridFromData(1, 1, []float64{0.2}),
	}

	_, err := FillFromNeighbors(slices, 0)
	assert.Error(t, err)
	_, err = FillFromNeighbors(slices, 1)
	assert.Error(t, err)
}
