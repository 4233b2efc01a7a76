package raster

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
)

// Meta carries the georeferencing of an open raster file.
type Meta struct {
	Width      int
	Height     int
	Transform  GeoTransform
	Projection string
	NoData     float64
	HasNoData  bool
}

// File is a single-band raster opened for reading.
type File struct {
	ds   *godal.Dataset
	meta Meta
}

func Open(path string) (*File, error) {
	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("%s", msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", path, err)
	}

	gt, err := ds.GeoTransform()
	if err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to read geotransform of %s: %w", path, err)
	}

	meta := Meta{
		Width:      ds.Structure().SizeX,
		Height:     ds.Structure().SizeY,
		Transform:  GeoTransform(gt),
		Projection: ds.Projection(),
	}
	if len(ds.Bands()) > 0 {
		meta.NoData, meta.HasNoData = ds.Bands()[0].NoData()
	}

	return &File{ds: ds, meta: meta}, nil
}

func (f *File) Meta() Meta {
	return f.meta
}

func (f *File) Size() (width, height int) {
	return f.meta.Width, f.meta.Height
}

func (f *File) Transform() GeoTransform {
	return f.meta.Transform
}

func (f *File) Close() error {
	return f.ds.Close()
}

// ReadRegion reads a sub-rectangle of band 1 into a grid, replacing the
// file's nodata marker with NaN.
func (f *File) ReadRegion(col0, row0, width, height int) (*Grid, error) {
	if col0 < 0 || row0 < 0 || col0+width > f.meta.Width || row0+height > f.meta.Height {
		return nil, fmt.Errorf("read region %dx%d at (%d,%d) is outside raster %dx%d",
			width, height, col0, row0, f.meta.Width, f.meta.Height)
	}

	data := make([]float64, width*height)
	band := f.ds.Bands()[0]
	if err := band.Read(col0, row0, data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster data: %w", err)
	}

	grid := NewGridFromData(width, height, data)
	if f.meta.HasNoData && !math.IsNaN(f.meta.NoData) {
		grid.MaskValues(f.meta.NoData)
	}
	return grid, nil
}

// ReadFull reads the whole of band 1.
func (f *File) ReadFull() (*Grid, error) {
	return f.ReadRegion(0, 0, f.meta.Width, f.meta.Height)
}

func (f *File) BandCount() int {
	return len(f.ds.Bands())
}

// ReadBandFull reads one whole band by 0-based index, replacing that
// band's nodata marker with NaN.
func (f *File) ReadBandFull(index int) (*Grid, error) {
	bands := f.ds.Bands()
	if index < 0 || index >= len(bands) {
		return nil, fmt.Errorf("band index %d out of range, raster has %d bands", index, len(bands))
	}

	data := make([]float64, f.meta.Width*f.meta.Height)
	if err := bands[index].Read(0, 0, data, f.meta.Width, f.meta.Height); err != nil {
		return nil, fmt.Errorf("failed to read band %d: %w", index+1, err)
	}

	grid := NewGridFromData(f.meta.Width, f.meta.Height, data)
	if nodata, ok := bands[index].NoData(); ok && !math.IsNaN(nodata) {
		grid.MaskValues(nodata)
	}
	return grid, nil
}

// SameGrid reports whether two rasters share projection, dimensions and
// transform, so that one can be read through the other's pixel window
// without resampling.
func SameGrid(a, b Meta) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	if a.Projection != b.Projection {
		srA, errA := godal.NewSpatialRefFromWKT(a.Projection)
		if errA != nil {
			return false
		}
		defer srA.Close()
		srB, errB := godal.NewSpatialRefFromWKT(b.Projection)
		if errB != nil {
			return false
		}
		defer srB.Close()
		if !srA.IsSame(srB) {
			return false
		}
	}
	return a.Transform == b.Transform
}
