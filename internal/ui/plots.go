package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pampasat/ndvi-stack/internal/legend"
	"github.com/pampasat/ndvi-stack/internal/plot"
)

// RenderPlots reads a written composite back and produces the series
// chart, the monthly histograms and the colored category map.
func RenderPlots() {
	rasterPath := ReadString("Composite raster", defaultCompositePath())
	manifestPath := ReadString("Band manifest", defaultManifestPath())
	legendPath := ReadString("QGIS legend (.qml)", defaultLegendPath())
	outputDir := ReadString("Output directory", dataPath("plots"))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		PrintError(err.Error())
		return
	}

	l, err := legend.Load(legendPath)
	if err != nil {
		PrintError(fmt.Sprintf("Failed to load legend: %s", err.Error()))
		return
	}

	c, err := plot.LoadComposite(rasterPath, manifestPath)
	if err != nil {
		PrintError(fmt.Sprintf("Failed to load composite: %s", err.Error()))
		return
	}

	excluded := make([]int, 0, len(defaultExcludedCategories))
	for _, v := range defaultExcludedCategories {
		excluded = append(excluded, int(v))
	}

	points := plot.CategorySeries(c, l, excluded)
	if err := plot.WriteSeriesCSV(filepath.Join(outputDir, "category_series.csv"), points); err != nil {
		PrintError(err.Error())
		return
	}

	months := make([]string, 0, len(c.Months))
	for _, m := range c.Months {
		months = append(months, m.Month)
	}
	if err := plot.DrawSeriesChart(filepath.Join(outputDir, "category_series.png"), points, l, months); err != nil {
		PrintError(err.Error())
		return
	}
	if err := plot.DrawHistograms(outputDir, c.Months); err != nil {
		PrintError(err.Error())
		return
	}
	if err := plot.DrawCategoryMap(filepath.Join(outputDir, "category_map.png"), c.Category, l); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess(fmt.Sprintf("Plots written to %s", outputDir))
}
