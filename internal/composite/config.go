package composite

import "github.com/pampasat/ndvi-stack/internal/align"

// CropPolicy selects how the common pixel window is derived.
type CropPolicy int

const (
	// CropIntersection intersects the valid windows of every monthly
	// raster. Fails when the rasters do not overlap.
	CropIntersection CropPolicy = iota
	// CropMargin trims a fixed fraction off every border of the first
	// monthly raster's full extent, ignoring the other rasters.
	CropMargin
)

// Config is the full parameterization of one composite run, built once at
// the entry point and passed through every stage.
type Config struct {
	// NDVIDir holds the monthly rasters, named NDVI_<month>.tif.
	NDVIDir string
	// CategoryPath is the categorical land-cover raster.
	CategoryPath string
	// OutputPath is the multi-band GeoTIFF to produce; ManifestPath the
	// plain-text band list next to it.
	OutputPath   string
	ManifestPath string

	// Months in temporal order, formatted YYYY-MM.
	Months []string

	Crop CropPolicy
	// MarginFraction is the per-border trim of CropMargin, e.g. 0.05.
	MarginFraction float64

	// DeficientMonth names the slice eligible for temporal gap filling,
	// empty for none. It is excluded from window computation and filled
	// from its neighbors only when its valid fraction is below
	// ValidThreshold.
	DeficientMonth string
	ValidThreshold float64

	// ExcludedCategories are land-cover codes converted to nodata.
	ExcludedCategories []float64

	TileSize int
}

func (c Config) deficientIndex(months []string) int {
	if c.DeficientMonth == "" {
		return -1
	}
	for i, m := range months {
		if m == c.DeficientMonth {
			return i
		}
	}
	return -1
}

func (c Config) tileSize() int {
	if c.TileSize <= 0 {
		return align.DefaultTileSize
	}
	return c.TileSize
}
