package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/pampasat/ndvi-stack/internal/legend"
	"github.com/pampasat/ndvi-stack/internal/raster"
)

// DrawCategoryMap renders the category band as a PNG colored from the
// legend. Pixels without a category, and codes missing from the legend,
// stay transparent.
func DrawCategoryMap(path string, category *raster.Grid, l *legend.Legend) error {
	img := image.NewRGBA(image.Rect(0, 0, category.Width, category.Height))

	for row := 0; row < category.Height; row++ {
		for col := 0; col < category.Width; col++ {
			v := category.At(row, col)
			if math.IsNaN(v) {
				continue
			}
			entry, ok := l.Lookup(int(v))
			if !ok {
				continue
			}
			img.Set(col, row, color.RGBA{R: entry.Color.R, G: entry.Color.G, B: entry.Color.B, A: 255})
		}
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	defer outputFile.Close()

	if err := png.Encode(outputFile, img); err != nil {
		return fmt.Errorf("failed to encode PNG file: %w", err)
	}

	fmt.Println("Category map created successfully at", path)
	return nil
}
