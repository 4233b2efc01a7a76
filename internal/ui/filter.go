package ui

import (
	"fmt"

	"github.com/pampasat/ndvi-stack/internal/majority"
)

// ApplyMajorityFilter smooths a classified raster with a moving-window
// mode filter.
func ApplyMajorityFilter() {
	inputPath := ReadString("Classified raster", dataPath("proc/classification.tif"))
	outputPath := ReadString("Filtered output path", dataPath("proc/classification_majority.tif"))
	size, err := ReadInt("Window size (odd)", 3, 3, 15)
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := majority.Run(inputPath, outputPath, size); err != nil {
		PrintError(fmt.Sprintf("Majority filter failed: %s", err.Error()))
		return
	}
	PrintSuccess(fmt.Sprintf("Filtered raster written to %s", outputPath))
}
