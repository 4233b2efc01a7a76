package raster

import (
	"fmt"
	"math"
	"os"

	"github.com/airbusgeo/godal"
	"github.com/schollz/progressbar/v3"
)

// Band pairs a grid with the label written to its band description.
type Band struct {
	Name string
	Grid *Grid
}

// WriteMultiBand writes the bands to a float32 GeoTIFF with NaN nodata and
// LZW compression, one description per band. All grids must share the same
// shape; band order in the file follows the slice order.
func WriteMultiBand(path string, transform GeoTransform, projection string, bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("no bands to write")
	}
	width, height := bands[0].Grid.Width, bands[0].Grid.Height
	for _, b := range bands {
		if b.Grid.Width != width || b.Grid.Height != height {
			return fmt.Errorf("band %s has shape %dx%d, expected %dx%d",
				b.Name, b.Grid.Width, b.Grid.Height, width, height)
		}
	}

	ds, err := godal.Create(godal.GTiff, path, len(bands), godal.Float32, width, height,
		godal.CreationOption("COMPRESS=LZW"))
	if err != nil {
		return fmt.Errorf("failed to create output raster %s: %w", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform([6]float64(transform)); err != nil {
		return fmt.Errorf("failed to set geotransform: %w", err)
	}
	if projection != "" {
		if err := ds.SetProjection(projection); err != nil {
			return fmt.Errorf("failed to set projection: %w", err)
		}
	}

	progressBar := progressbar.Default(int64(len(bands)), "Writing bands")
	for i, b := range bands {
		band := ds.Bands()[i]
		if err := band.SetNoData(math.NaN()); err != nil {
			return fmt.Errorf("failed to set nodata on band %d: %w", i+1, err)
		}

		buf := make([]float32, len(b.Grid.Data))
		for j, v := range b.Grid.Data {
			buf[j] = float32(v)
		}
		if err := band.Write(0, 0, buf, width, height); err != nil {
			return fmt.Errorf("failed to write band %d (%s): %w", i+1, b.Name, err)
		}
		if err := band.SetDescription(b.Name); err != nil {
			return fmt.Errorf("failed to set description on band %d: %w", i+1, err)
		}
		progressBar.Add(1)
	}

	return nil
}

// WriteInt32 writes a single int32 band with an explicit nodata sentinel.
func WriteInt32(path string, transform GeoTransform, projection string, width, height int, data []int32, nodata int32) error {
	if len(data) != width*height {
		return fmt.Errorf("data size mismatch: expected %d, got %d", width*height, len(data))
	}

	ds, err := godal.Create(godal.GTiff, path, 1, godal.Int32, width, height,
		godal.CreationOption("COMPRESS=LZW"))
	if err != nil {
		return fmt.Errorf("failed to create output raster %s: %w", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform([6]float64(transform)); err != nil {
		return fmt.Errorf("failed to set geotransform: %w", err)
	}
	if projection != "" {
		if err := ds.SetProjection(projection); err != nil {
			return fmt.Errorf("failed to set projection: %w", err)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(float64(nodata)); err != nil {
		return fmt.Errorf("failed to set nodata: %w", err)
	}
	if err := band.Write(0, 0, data, width, height); err != nil {
		return fmt.Errorf("failed to write band: %w", err)
	}

	return nil
}

// WriteBandManifest writes the plain-text sidecar mapping 1-based band
// indexes to labels.
func WriteBandManifest(path string, names []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create band manifest: %w", err)
	}
	defer file.Close()

	for i, name := range names {
		if _, err := fmt.Fprintf(file, "Band %d: %s\n", i+1, name); err != nil {
			return fmt.Errorf("failed to write band manifest: %w", err)
		}
	}
	return nil
}
