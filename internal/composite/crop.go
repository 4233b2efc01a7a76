package composite

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/pampasat/ndvi-stack/internal/align"
	"github.com/pampasat/ndvi-stack/internal/raster"
)

// AOI is the study area: a center point plus a buffer radius, matching
// the footprint the downloader requests.
type AOI struct {
	Lon          float64
	Lat          float64
	BufferMeters float64
}

// Bound returns the axis-aligned WGS84 box around the buffered center.
func (a AOI) Bound() orb.Bound {
	return geo.NewBoundAroundPoint(orb.Point{a.Lon, a.Lat}, a.BufferMeters)
}

// CropCategoryRaster cuts the national land-cover raster down to the AOI
// and writes the piece as a single-band raster on the source grid. The
// AOI box is projected into the raster's CRS, converted to a pixel window
// and clamped to the raster extent; an empty intersection is fatal.
func CropCategoryRaster(inputPath, outputPath string, aoi AOI) error {
	file, err := raster.Open(inputPath)
	if err != nil {
		return err
	}
	defer file.Close()
	meta := file.Meta()

	bound := aoi.Bound()
	xs := []float64{bound.Min[0], bound.Max[0], bound.Min[0], bound.Max[0]}
	ys := []float64{bound.Min[1], bound.Min[1], bound.Max[1], bound.Max[1]}
	if err := transformFromWGS84(meta.Projection, xs, ys); err != nil {
		return fmt.Errorf("failed to project AOI into the raster CRS: %w", err)
	}

	minCol, minRow := math.Inf(1), math.Inf(1)
	maxCol, maxRow := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		col, row := meta.Transform.GeoToPixel(xs[i], ys[i])
		minCol = math.Min(minCol, col)
		maxCol = math.Max(maxCol, col)
		minRow = math.Min(minRow, row)
		maxRow = math.Max(maxRow, row)
	}

	window := align.Window{
		Row0: int(math.Floor(minRow)),
		Row1: int(math.Ceil(maxRow)),
		Col0: int(math.Floor(minCol)),
		Col1: int(math.Ceil(maxCol)),
	}
	window = window.Intersect(align.Window{Row0: 0, Row1: meta.Height, Col0: 0, Col1: meta.Width})
	if window.IsEmpty() {
		return fmt.Errorf("the AOI does not intersect %s", inputPath)
	}

	grid, err := file.ReadRegion(window.Col0, window.Row0, window.Width(), window.Height())
	if err != nil {
		return err
	}

	cropped, err := align.NewCommonGrid(window, meta.Transform)
	if err != nil {
		return err
	}

	fmt.Printf("Cropped %s to %dx%d\n", inputPath, window.Width(), window.Height())
	return raster.WriteMultiBand(outputPath, cropped.Transform, meta.Projection, []raster.Band{
		{Name: "landcover_summer", Grid: grid},
	})
}

func transformFromWGS84(projection string, xs, ys []float64) error {
	if projection == "" {
		return fmt.Errorf("raster has no CRS")
	}

	wgs84, err := godal.NewSpatialRefFromEPSG(4326)
	if err != nil {
		return fmt.Errorf("failed to create WGS84 reference: %w", err)
	}
	defer wgs84.Close()

	target, err := godal.NewSpatialRefFromWKT(projection)
	if err != nil {
		return fmt.Errorf("failed to parse raster CRS: %w", err)
	}
	defer target.Close()

	if wgs84.IsSame(target) {
		return nil
	}

	transform, err := godal.NewTransform(wgs84, target)
	if err != nil {
		return fmt.Errorf("failed to create coordinate transform: %w", err)
	}
	defer transform.Close()

	return transform.TransformEx(xs, ys, nil, nil)
}
