package ui

import (
	"fmt"

	"github.com/pampasat/ndvi-stack/internal/composite"
)

// CropLandCover cuts the national land-cover raster down to the study
// area so it does not dominate the composite run's memory.
func CropLandCover() {
	inputPath := ReadString("Land-cover raster", defaultCategoryPath())
	outputPath := ReadString("Cropped output path", dataPath("proc/landcover_cropped.tif"))

	aoi := composite.AOI{}
	var err error
	if aoi.Lon, err = ReadFloat("Center longitude", defaultLon); err != nil {
		PrintError(err.Error())
		return
	}
	if aoi.Lat, err = ReadFloat("Center latitude", defaultLat); err != nil {
		PrintError(err.Error())
		return
	}
	if aoi.BufferMeters, err = ReadFloat("Buffer radius in meters", defaultBufferMeters); err != nil {
		PrintError(err.Error())
		return
	}

	if err := composite.CropCategoryRaster(inputPath, outputPath, aoi); err != nil {
		PrintError(fmt.Sprintf("Crop failed: %s", err.Error()))
		return
	}
	PrintSuccess(fmt.Sprintf("Cropped land cover written to %s", outputPath))
}
