package stack

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// Stats holds the per-pixel temporal summaries of a band stack.
type Stats struct {
	Median *raster.Grid
	Min    *raster.Grid
	Max    *raster.Grid
	StdDev *raster.Grid
}

// Reduce computes per-pixel median, min, max and population standard
// deviation across the time axis, skipping NaN samples. A pixel with no
// valid sample in any slice is NaN in all four outputs. The result depends
// only on the set of valid values per pixel, not on slice order.
func Reduce(slices []*raster.Grid) (Stats, error) {
	if len(slices) == 0 {
		return Stats{}, fmt.Errorf("no slices to reduce")
	}
	width, height := slices[0].Width, slices[0].Height
	for i, s := range slices {
		if s.Width != width || s.Height != height {
			return Stats{}, fmt.Errorf("slice %d has shape %dx%d, expected %dx%d",
				i, s.Width, s.Height, width, height)
		}
	}

	stats := Stats{
		Median: raster.NewGrid(width, height),
		Min:    raster.NewGrid(width, height),
		Max:    raster.NewGrid(width, height),
		StdDev: raster.NewGrid(width, height),
	}

	values := make([]float64, 0, len(slices))
	for i := 0; i < width*height; i++ {
		values = values[:0]
		for _, s := range slices {
			if v := s.Data[i]; !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		sort.Float64s(values)
		stats.Min.Data[i] = values[0]
		stats.Max.Data[i] = values[len(values)-1]
		stats.Median.Data[i] = medianSorted(values)
		stats.StdDev.Data[i] = stat.PopStdDev(values, nil)
	}

	return stats, nil
}

// medianSorted averages the two middle samples on even counts.
func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
