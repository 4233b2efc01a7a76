package stack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

func singlePixelSlices(values ...float64) []*raster.Grid {
	slices := make([]*raster.Grid, 0, len(values))
	for _, v := range values {
		slices = append(slices, raster.NewGridFromData(1, 1, []float64{v}))
	}
	return slices
}

func TestReduce_SkipsMissingSamples(t *testing.T) {
	stats, err := Reduce(singlePixelSlices(0.2, nan, 0.5, 0.8))
	require.NoError(t, err)

	assert.Equal(t, 0.5, stats.Median.At(0, 0))
	assert.Equal(t, 0.2, stats.Min.At(0, 0))
	assert.Equal(t, 0.8, stats.Max.At(0, 0))
	// Population deviation of {0.2, 0.5, 0.8}: mean 0.5, sqrt(0.06).
	assert.InDelta(t, math.Sqrt(0.06), stats.StdDev.At(0, 0), 1e-12)
}

func TestReduce_EvenCountMediansMiddlePair(t *testing.T) {
	stats, err := Reduce(singlePixelSlices(0.1, 0.9, 0.3, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, 0.4, stats.Median.At(0, 0), 1e-12)
}

func TestReduce_AllMissingStaysMissing(t *testing.T) {
	stats, err := Reduce(singlePixelSlices(nan, nan, nan))
	require.NoError(t, err)

	assert.True(t, math.IsNaN(stats.Median.At(0, 0)))
	assert.True(t, math.IsNaN(stats.Min.At(0, 0)))
	assert.True(t, math.IsNaN(stats.Max.At(0, 0)))
	assert.True(t, math.IsNaN(stats.StdDev.At(0, 0)))
}

func TestReduce_SingleSample(t *testing.T) {
	stats, err := Reduce(singlePixelSlices(0.6))
	require.NoError(t, err)

	assert.Equal(t, 0.6, stats.Median.At(0, 0))
	assert.Equal(t, 0.6, stats.Min.At(0, 0))
	assert.Equal(t, 0.6, stats.Max.At(0, 0))
	assert.Equal(t, 0.0, stats.StdDev.At(0, 0))
}

func TestReduce_OrderIndependent(t *testing.T) {
	a, err := Reduce(singlePixelSlices(0.7, 0.1, 0.4))
	require.NoError(t, err)
	b, err := Reduce(singlePixelSlices(0.4, 0.7, 0.1))
	require.NoError(t, err)

	assert.Equal(t, a.Median.At(0, 0), b.Median.At(0, 0))
	assert.Equal(t, a.Min.At(0, 0), b.Min.At(0, 0))
	assert.Equal(t, a.Max.At(0, 0), b.Max.At(0, 0))
	assert.Equal(t, a.StdDev.At(0, 0), b.StdDev.At(0, 0))
}

func TestReduce_ShapeMismatchIsError(t *testing.T) {
	slices := []*raster.Grid{
		raster.NewGrid(2, 2),
		raster.NewGrid(3, 2),
	}
	_, err := Reduce(slices)
	assert.Error(t, err)
}

func TestReduce_NoSlicesIsError(t *testing.T) {
	_, err := Reduce(nil)
	assert.Error(t, err)
}
