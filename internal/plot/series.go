package plot

import (
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pampasat/ndvi-stack/internal/legend"
)

// SeriesPoint is the mean NDVI of one land-cover category in one month.
type SeriesPoint struct {
	Category    string  `csv:"category"`
	Code        int     `csv:"code"`
	Month       string  `csv:"month"`
	MeanNDVI    float64 `csv:"mean_ndvi"`
	ValidPixels int     `csv:"valid_pixels"`
}

// CategorySeries averages each month's NDVI over the pixels of every
// legend category, skipping NaN samples and the excluded codes.
func CategorySeries(c *Composite, l *legend.Legend, excluded []int) []SeriesPoint {
	excludedSet := make(map[int]bool, len(excluded))
	for _, v := range excluded {
		excludedSet[v] = true
	}

	var points []SeriesPoint
	for _, category := range l.Categories {
		if excludedSet[category.Value] {
			continue
		}
		for _, month := range c.Months {
			var values []float64
			for i, v := range month.Grid.Data {
				code := c.Category.Data[i]
				if math.IsNaN(code) || int(code) != category.Value || math.IsNaN(v) {
					continue
				}
				values = append(values, v)
			}
			if len(values) == 0 {
				continue
			}
			points = append(points, SeriesPoint{
				Category:    category.Label,
				Code:        category.Value,
				Month:       month.Month,
				MeanNDVI:    stat.Mean(values, nil),
				ValidPixels: len(values),
			})
		}
	}
	return points
}

// WriteSeriesCSV exports the per-category series for further analysis.
func WriteSeriesCSV(path string, points []SeriesPoint) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create series file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&points, file); err != nil {
		return fmt.Errorf("failed to write series file: %w", err)
	}
	return nil
}

const (
	chartWidth   = 1200
	chartHeight  = 700
	chartMarginX = 90.0
	chartMarginY = 60.0
)

// DrawSeriesChart renders the per-category time series as one line per
// category, colored from the legend.
func DrawSeriesChart(path string, points []SeriesPoint, l *legend.Legend, months []string) error {
	if len(points) == 0 {
		return fmt.Errorf("no series points to draw")
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minY = math.Min(minY, p.MeanNDVI)
		maxY = math.Max(maxY, p.MeanNDVI)
	}
	pad := (maxY - minY) * 0.1
	if pad == 0 {
		pad = 0.05
	}
	minY -= pad
	maxY += pad

	monthX := make(map[string]float64, len(months))
	plotWidth := float64(chartWidth) - 2*chartMarginX
	for i, m := range months {
		x := chartMarginX
		if len(months) > 1 {
			x += plotWidth * float64(i) / float64(len(months)-1)
		}
		monthX[m] = x
	}
	toY := func(v float64) float64 {
		return float64(chartHeight) - chartMarginY - (v-minY)/(maxY-minY)*(float64(chartHeight)-2*chartMarginY)
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Axes and month labels.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	dc.DrawLine(chartMarginX, chartMarginY, chartMarginX, float64(chartHeight)-chartMarginY)
	dc.DrawLine(chartMarginX, float64(chartHeight)-chartMarginY, float64(chartWidth)-chartMarginX, float64(chartHeight)-chartMarginY)
	dc.Stroke()
	for _, m := range months {
		dc.DrawStringAnchored(m, monthX[m], float64(chartHeight)-chartMarginY+18, 0.5, 0.5)
	}
	for _, tick := range []float64{minY, (minY + maxY) / 2, maxY} {
		dc.DrawStringAnchored(fmt.Sprintf("%.2f", tick), chartMarginX-12, toY(tick), 1, 0.5)
	}
	dc.DrawStringAnchored("Mean NDVI by land-cover category", float64(chartWidth)/2, chartMarginY/2, 0.5, 0.5)

	byCategory := make(map[int][]SeriesPoint)
	for _, p := range points {
		byCategory[p.Code] = append(byCategory[p.Code], p)
	}

	legendY := chartMarginY
	for _, category := range l.Categories {
		series, ok := byCategory[category.Value]
		if !ok {
			continue
		}
		dc.SetRGB255(int(category.Color.R), int(category.Color.G), int(category.Color.B))
		dc.SetLineWidth(2)
		for i := 1; i < len(series); i++ {
			dc.DrawLine(monthX[series[i-1].Month], toY(series[i-1].MeanNDVI), monthX[series[i].Month], toY(series[i].MeanNDVI))
		}
		dc.Stroke()
		for _, p := range series {
			dc.DrawCircle(monthX[p.Month], toY(p.MeanNDVI), 3)
			dc.Fill()
		}

		dc.DrawStringAnchored(category.Label, float64(chartWidth)-chartMarginX+8, legendY, 0, 0.5)
		legendY += 16
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}
