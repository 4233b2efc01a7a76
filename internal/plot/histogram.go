package plot

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

const histogramBins = 50

// Histogram bins the valid samples of a grid over [-1,1], the NDVI range.
func Histogram(g *raster.Grid) [histogramBins]int {
	var bins [histogramBins]int
	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}
		bin := int((v + 1) / 2 * histogramBins)
		if bin < 0 {
			bin = 0
		}
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		bins[bin]++
	}
	return bins
}

// DrawHistograms writes one NDVI distribution PNG per month into dir.
func DrawHistograms(dir string, months []MonthBand) error {
	for _, month := range months {
		path := filepath.Join(dir, fmt.Sprintf("histogram_%s.png", month.Month))
		if err := drawHistogram(path, month.Month, Histogram(month.Grid)); err != nil {
			return err
		}
	}
	return nil
}

func drawHistogram(path, month string, bins [histogramBins]int) error {
	maxCount := 0
	for _, count := range bins {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		return fmt.Errorf("month %s has no valid samples to plot", month)
	}

	const width, height = 800, 500
	const margin = 60.0

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotWidth := float64(width) - 2*margin
	plotHeight := float64(height) - 2*margin
	barWidth := plotWidth / histogramBins

	dc.SetRGB(0.2, 0.5, 0.2)
	for i, count := range bins {
		barHeight := plotHeight * float64(count) / float64(maxCount)
		dc.DrawRectangle(margin+float64(i)*barWidth, float64(height)-margin-barHeight, barWidth-1, barHeight)
	}
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	dc.DrawLine(margin, margin, margin, float64(height)-margin)
	dc.DrawLine(margin, float64(height)-margin, float64(width)-margin, float64(height)-margin)
	dc.Stroke()
	for _, tick := range []float64{-1, -0.5, 0, 0.5, 1} {
		x := margin + (tick+1)/2*plotWidth
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", tick), x, float64(height)-margin+18, 0.5, 0.5)
	}
	dc.DrawStringAnchored(fmt.Sprintf("NDVI distribution %s", month), float64(width)/2, margin/2, 0.5, 0.5)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save histogram: %w", err)
	}
	return nil
}
