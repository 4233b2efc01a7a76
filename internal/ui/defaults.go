package ui

import (
	"fmt"

	"github.com/pampasat/ndvi-stack/internal/properties"
)

// Study-area defaults: the Coronel Suárez summer campaign.
var (
	defaultMonths = []string{
		"2023-12", "2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06",
	}
	defaultDeficientMonth = "2024-05"

	defaultLon          = -61.93294
	defaultLat          = -37.45859
	defaultBufferMeters = 14000.0

	// Land-cover codes left out of every analysis: nodata, water and the
	// non-agricultural classes.
	defaultExcludedCategories = []float64{255, 0, 25, 31}
)

func dataPath(relative string) string {
	return fmt.Sprintf("%s/data/%s", properties.RootPath(), relative)
}

func defaultNDVIDir() string {
	return dataPath("raw/sentinel_23_24")
}

func defaultCategoryPath() string {
	return dataPath("raw/landcover/MNC_summer-2024.tif")
}

func defaultCompositePath() string {
	return dataPath("proc/ndvi_landcover_summer.tif")
}

func defaultManifestPath() string {
	return dataPath("proc/ndvi_landcover_summer_bands.txt")
}

func defaultLegendPath() string {
	return dataPath("raw/landcover/MNC_summer-2024.qml")
}
