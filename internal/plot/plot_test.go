package plot

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampasat/ndvi-stack/internal/legend"
	"github.com/pampasat/ndvi-stack/internal/raster"
)

var nan = math.NaN()

func TestReadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.txt")
	content := "Band 1: landcover_summer\nBand 2: median\n\nBand 3: NDVI_2024-01\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"landcover_summer", "median", "NDVI_2024-01"}, names)
}

func TestReadManifest_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.txt")
	require.NoError(t, os.WriteFile(path, []byte("no separator here\n"), 0644))

	_, err := ReadManifest(path)
	assert.Error(t, err)
}

func TestCategorySeries(t *testing.T) {
	l := &legend.Legend{Categories: []legend.Category{
		{Value: 10, Label: "Annual crop", Color: color.RGBA{A: 255}},
		{Value: 12, Label: "Pasture", Color: color.RGBA{A: 255}},
		{Value: 25, Label: "Water", Color: color.RGBA{A: 255}},
	}}

	c := &Composite{
		Category: raster.NewGridFromData(2, 2, []float64{10, 10, 12, 25}),
		Months: []MonthBand{
			{Month: "2024-01", Grid: raster.NewGridFromData(2, 2, []float64{0.2, 0.4, 0.6, 0.9})},
			{Month: "2024-02", Grid: raster.NewGridFromData(2, 2, []float64{nan, 0.8, nan, 0.9})},
		},
	}

	points := CategorySeries(c, l, []int{25})
	require.Len(t, points, 3)

	assert.Equal(t, SeriesPoint{Category: "Annual crop", Code: 10, Month: "2024-01", MeanNDVI: 0.3, ValidPixels: 2}, points[0])
	assert.Equal(t, SeriesPoint{Category: "Annual crop", Code: 10, Month: "2024-02", MeanNDVI: 0.8, ValidPixels: 1}, points[1])
	// Pasture has no valid pixel in 2024-02, so only one point remains,
	// and the excluded water category never appears.
	assert.Equal(t, SeriesPoint{Category: "Pasture", Code: 12, Month: "2024-01", MeanNDVI: 0.6, ValidPixels: 1}, points[2])
}

func TestHistogram(t *testing.T) {
	g := raster.NewGridFromData(3, 2, []float64{-1, -0.99, 0, 0.5, 1, nan})
	bins := Histogram(g)

	total := 0
	for _, count := range bins {
		total += count
	}
	assert.Equal(t, 5, total)

	// -1 and -0.99 share the first bin, +1 clamps into the last.
	assert.Equal(t, 2, bins[0])
	assert.Equal(t, 1, bins[histogramBins-1])
	assert.Equal(t, 1, bins[histogramBins/2])
}

func TestDrawCategoryMap(t *testing.T) {
	l := &legend.Legend{Categories: []legend.Category{
		{Value: 10, Label: "Annual crop", Color: color.RGBA{R: 0xe8, G: 0xb6, B: 0x22, A: 255}},
	}}
	category := raster.NewGridFromData(2, 2, []float64{10, 10, nan, 99})

	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, DrawCategoryMap(path, category, l))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
