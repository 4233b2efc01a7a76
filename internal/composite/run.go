package composite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/schollz/progressbar/v3"

	"github.com/pampasat/ndvi-stack/internal/align"
	"github.com/pampasat/ndvi-stack/internal/raster"
)

// MonthFile is one located monthly raster.
type MonthFile struct {
	Name string
	Path string
}

// Inventory locates the configured monthly rasters. A missing month is a
// warning; an empty result or a missing category raster is an error.
func Inventory(cfg Config) ([]MonthFile, error) {
	if _, err := os.Stat(cfg.CategoryPath); err != nil {
		return nil, fmt.Errorf("category raster not found: %s", cfg.CategoryPath)
	}

	var files []MonthFile
	for _, month := range cfg.Months {
		path := filepath.Join(cfg.NDVIDir, fmt.Sprintf("NDVI_%s.tif", month))
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("[WARN] raster not found: %s\n", path)
			continue
		}
		files = append(files, MonthFile{Name: month, Path: path})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no NDVI rasters found in %s", cfg.NDVIDir)
	}
	return files, nil
}

// Run executes the whole composite pipeline against the filesystem and
// writes the multi-band raster plus its band manifest.
func Run(cfg Config) error {
	files, err := Inventory(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d NDVI rasters\n", len(files))

	months := make([]MonthInput, 0, len(files))
	var refMeta raster.Meta

	progressBar := progressbar.Default(int64(len(files)), "Reading NDVI rasters")
	for i, f := range files {
		file, err := raster.Open(f.Path)
		if err != nil {
			return err
		}
		if i == 0 {
			refMeta = file.Meta()
		}
		grid, err := file.ReadFull()
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		months = append(months, MonthInput{Name: f.Name, Grid: grid})
		progressBar.Add(1)
	}

	category, err := raster.Open(cfg.CategoryPath)
	if err != nil {
		return err
	}
	defer category.Close()

	toCategory, cleanup, err := pointTransform(refMeta.Projection, category.Meta().Projection)
	if err != nil {
		return err
	}
	defer cleanup()

	sameGrid := raster.SameGrid(category.Meta(), refMeta)
	if !sameGrid && toCategory == nil {
		fmt.Println("[INFO] category raster shares the CRS but not the grid, resampling")
	}

	result, err := Build(cfg, months, refMeta.Transform, category, toCategory, sameGrid)
	if err != nil {
		return err
	}

	fmt.Printf("Output grid: %dx%d, %d bands\n", result.Grid.Width(), result.Grid.Height(), len(result.Bands))
	if err := raster.WriteMultiBand(cfg.OutputPath, result.Grid.Transform, refMeta.Projection, result.Bands); err != nil {
		return err
	}
	if err := raster.WriteBandManifest(cfg.ManifestPath, result.BandNames()); err != nil {
		return err
	}

	fmt.Printf("Composite written to %s\n", cfg.OutputPath)
	return nil
}

// pointTransform builds the destination-to-source coordinate transform,
// or nil when both projections are the same. The cleanup releases the
// underlying spatial references.
func pointTransform(dstProjection, srcProjection string) (align.PointTransform, func(), error) {
	noop := func() {}
	if dstProjection == srcProjection || dstProjection == "" || srcProjection == "" {
		if dstProjection != srcProjection {
			fmt.Println("[WARN] one raster is missing a CRS, assuming both share a projection")
		}
		return nil, noop, nil
	}

	dstSR, err := godal.NewSpatialRefFromWKT(dstProjection)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to parse destination CRS: %w", err)
	}
	srcSR, err := godal.NewSpatialRefFromWKT(srcProjection)
	if err != nil {
		dstSR.Close()
		return nil, noop, fmt.Errorf("failed to parse source CRS: %w", err)
	}
	if dstSR.IsSame(srcSR) {
		dstSR.Close()
		srcSR.Close()
		return nil, noop, nil
	}

	transform, err := godal.NewTransform(dstSR, srcSR)
	if err != nil {
		dstSR.Close()
		srcSR.Close()
		return nil, noop, fmt.Errorf("failed to create coordinate transform: %w", err)
	}

	cleanup := func() {
		transform.Close()
		dstSR.Close()
		srcSR.Close()
	}
	fn := func(xs, ys []float64) error {
		return transform.TransformEx(xs, ys, nil, nil)
	}
	return fn, cleanup, nil
}
