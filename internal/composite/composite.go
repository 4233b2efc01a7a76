// Package composite builds the summer land-cover/NDVI composite: it
// aligns the monthly NDVI rasters on one common grid, resamples the
// land-cover raster onto it, fills the deficient month from its temporal
// neighbors, reduces the stack to summary statistics and assembles the
// labelled band list.
package composite

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/pampasat/ndvi-stack/internal/align"
	"github.com/pampasat/ndvi-stack/internal/raster"
	"github.com/pampasat/ndvi-stack/internal/stack"
)

// MonthInput is one monthly raster read in full, nodata already NaN.
type MonthInput struct {
	Name string
	Grid *raster.Grid
}

// Result is the in-memory composite before it is written out.
type Result struct {
	Grid    align.CommonGrid
	Bands   []raster.Band
	GapFill *stack.GapFillReport
}

// BandNames returns the labels in band order.
func (r *Result) BandNames() []string {
	names := make([]string, 0, len(r.Bands))
	for _, b := range r.Bands {
		names = append(names, b.Name)
	}
	return names
}

// Build assembles the composite from in-memory inputs. The months must
// share one shape; refTransform is the geotransform of the first monthly
// raster, which defines the output grid. The category raster arrives as a
// windowed reader plus the coordinate transform into its CRS (nil when
// both share a CRS); categorySameGrid short-circuits resampling when the
// category raster already sits on the months' exact grid.
func Build(cfg Config, months []MonthInput, refTransform raster.GeoTransform, category align.SourceReader, toCategory align.PointTransform, categorySameGrid bool) (*Result, error) {
	if len(months) == 0 {
		return nil, fmt.Errorf("no monthly rasters to combine")
	}
	width, height := months[0].Grid.Width, months[0].Grid.Height
	for _, m := range months[1:] {
		if m.Grid.Width != width || m.Grid.Height != height {
			return nil, fmt.Errorf("raster %s has shape %dx%d, expected %dx%d",
				m.Name, m.Grid.Width, m.Grid.Height, width, height)
		}
	}

	deficient := cfg.deficientIndex(monthNames(months))
	deficientBelowThreshold := false
	if deficient >= 0 {
		fraction := months[deficient].Grid.ValidFraction()
		deficientBelowThreshold = fraction < cfg.ValidThreshold
		if deficientBelowThreshold {
			fmt.Printf("[WARN] %s has only %.2f%% valid pixels\n", months[deficient].Name, fraction*100)
		}
	}

	window, err := commonWindow(cfg, months, width, height, deficient, deficientBelowThreshold)
	if err != nil {
		return nil, err
	}
	grid, err := align.NewCommonGrid(window, refTransform)
	if err != nil {
		return nil, err
	}

	slices := make([]*raster.Grid, len(months))
	for i, m := range months {
		slices[i] = align.Crop(m.Grid, window)
	}

	categoryBand, err := categoryOnGrid(cfg, grid, category, toCategory, categorySameGrid)
	if err != nil {
		return nil, fmt.Errorf("failed to place category raster on the common grid: %w", err)
	}

	var gapFill *stack.GapFillReport
	if deficient >= 0 && deficientBelowThreshold {
		report, err := stack.FillFromNeighbors(slices, deficient)
		if err != nil {
			fmt.Printf("[WARN] cannot gap-fill %s: %v\n", months[deficient].Name, err)
		} else {
			gapFill = &report
			fmt.Printf("Gap-filled %s: %d filled, %d kept, %d still missing\n",
				months[deficient].Name, report.Filled, report.KeptOriginal, report.StillMissing)
		}
	}

	stats, err := stack.Reduce(slices)
	if err != nil {
		return nil, err
	}

	bands := []raster.Band{
		{Name: "landcover_summer", Grid: categoryBand},
		{Name: "median", Grid: stats.Median},
		{Name: "min", Grid: stats.Min},
		{Name: "max", Grid: stats.Max},
		{Name: "sd", Grid: stats.StdDev},
	}
	for i, m := range months {
		bands = append(bands, raster.Band{Name: "NDVI_" + m.Name, Grid: slices[i]})
	}

	return &Result{Grid: grid, Bands: bands, GapFill: gapFill}, nil
}

func monthNames(months []MonthInput) []string {
	names := make([]string, 0, len(months))
	for _, m := range months {
		names = append(names, m.Name)
	}
	return names
}

func commonWindow(cfg Config, months []MonthInput, width, height, deficient int, deficientBelowThreshold bool) (align.Window, error) {
	switch cfg.Crop {
	case CropMargin:
		return align.MarginWindow(width, height, cfg.MarginFraction)
	case CropIntersection:
		windows := make([]align.Window, 0, len(months))
		for i, m := range months {
			if i == deficient && deficientBelowThreshold {
				// The deficient month stays in the stack but must not
				// shrink the shared area.
				continue
			}
			w, ok := align.DetectValidWindow(m.Grid)
			if !ok {
				fmt.Printf("[WARN] raster %s has no valid data\n", m.Name)
				continue
			}
			windows = append(windows, w)
		}
		return align.IntersectWindows(windows)
	default:
		return align.Window{}, fmt.Errorf("unknown crop policy %d", cfg.Crop)
	}
}

func categoryOnGrid(cfg Config, grid align.CommonGrid, category align.SourceReader, toCategory align.PointTransform, sameGrid bool) (*raster.Grid, error) {
	var band *raster.Grid
	if sameGrid {
		var err error
		band, err = category.ReadRegion(grid.Window.Col0, grid.Window.Row0, grid.Width(), grid.Height())
		if err != nil {
			return nil, err
		}
	} else {
		tileSize := cfg.tileSize()
		tiles := ((grid.Width() + tileSize - 1) / tileSize) * ((grid.Height() + tileSize - 1) / tileSize)
		progressBar := progressbar.Default(int64(tiles), "Reprojecting category raster")
		reprojector := align.Reprojector{
			TileSize: tileSize,
			OnTile:   func(done, total int) { progressBar.Add(1) },
		}
		var err error
		band, err = reprojector.Reproject(category, toCategory, grid)
		if err != nil {
			return nil, err
		}
	}
	band.MaskValues(cfg.ExcludedCategories...)
	return band, nil
}
