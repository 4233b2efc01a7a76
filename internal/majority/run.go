package majority

import (
	"fmt"
	"math"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// Run applies the majority filter to a classified raster file. The input
// is read as categories (anything negative or nodata is treated as
// missing) and the smoothed result is written as int32 with the -1
// sentinel.
func Run(inputPath, outputPath string, size int) error {
	file, err := raster.Open(inputPath)
	if err != nil {
		return err
	}
	defer file.Close()
	meta := file.Meta()

	grid, err := file.ReadFull()
	if err != nil {
		return err
	}

	categories := make([]int32, len(grid.Data))
	for i, v := range grid.Data {
		if math.IsNaN(v) || v < 0 {
			categories[i] = NoData
			continue
		}
		categories[i] = int32(math.Round(v))
	}

	fmt.Printf("Applying %dx%d majority filter...\n", size, size)
	filtered, err := Filter(categories, meta.Width, meta.Height, size)
	if err != nil {
		return err
	}

	if err := raster.WriteInt32(outputPath, meta.Transform, meta.Projection, meta.Width, meta.Height, filtered, NoData); err != nil {
		return err
	}

	fmt.Printf("Smoothed raster written to %s\n", outputPath)
	return nil
}
