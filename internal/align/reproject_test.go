package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// memSource serves windowed reads from an in-memory grid.
type memSource struct {
	grid      *raster.Grid
	transform raster.GeoTransform
	reads     int
}

func (s *memSource) Size() (int, int) {
	return s.grid.Width, s.grid.Height
}

func (s *memSource) Transform() raster.GeoTransform {
	return s.transform
}

func (s *memSource) ReadRegion(col0, row0, width, height int) (*raster.Grid, error) {
	s.reads++
	return Crop(s.grid, Window{Row0: row0, Row1: row0 + height, Col0: col0, Col1: col0 + width}), nil
}

func sequentialSource(width, height int, transform raster.GeoTransform) *memSource {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = float64(i)
	}
	return &memSource{
		grid:      raster.NewGridFromData(width, height, data),
		transform: transform,
	}
}

func assertGridsEqual(t *testing.T, want, got *raster.Grid) {
	t.Helper()
	require.Equal(t, want.Width, got.Width)
	require.Equal(t, want.Height, got.Height)
	for i := range want.Data {
		if math.IsNaN(want.Data[i]) {
			assert.True(t, math.IsNaN(got.Data[i]), "pixel %d", i)
		} else {
			assert.Equal(t, want.Data[i], got.Data[i], "pixel %d", i)
		}
	}
}

func TestReproject_SameGridCopiesValues(t *testing.T) {
	transform := raster.GeoTransform{0, 10, 0, 100, 0, -10}
	src := sequentialSource(7, 7, transform)

	dst, err := NewCommonGrid(Window{Row0: 1, Row1: 6, Col0: 2, Col1: 7}, transform)
	require.NoError(t, err)

	r := Reprojector{TileSize: 100}
	out, err := r.Reproject(src, nil, dst)
	require.NoError(t, err)

	want := Crop(src.grid, dst.Window)
	assertGridsEqual(t, want, out)
}

func TestReproject_TiledEqualsOnePass(t *testing.T) {
	// Source pixels are twice the destination size, so neighboring
	// destination pixels share source samples across tile boundaries.
	srcTransform := raster.GeoTransform{0, 20, 0, 200, 0, -20}
	src := sequentialSource(10, 10, srcTransform)

	dstTransform := raster.TransformFromBounds(raster.Bounds{Left: 15, Bottom: 35, Right: 185, Top: 195}, 17, 16)
	dst := CommonGrid{Window: Window{Row0: 0, Row1: 16, Col0: 0, Col1: 17}, Transform: dstTransform}

	onePass := Reprojector{TileSize: 1000}
	wantGrid, err := onePass.Reproject(src, nil, dst)
	require.NoError(t, err)

	for _, tileSize := range []int{3, 5, 7} {
		tiled := Reprojector{TileSize: tileSize}
		got, err := tiled.Reproject(src, nil, dst)
		require.NoError(t, err)
		assertGridsEqual(t, wantGrid, got)
	}
}

func TestReproject_TileCallbackCoversAllTiles(t *testing.T) {
	transform := raster.GeoTransform{0, 1, 0, 9, 0, -1}
	src := sequentialSource(9, 9, transform)
	dst, err := NewCommonGrid(Window{Row0: 0, Row1: 9, Col0: 0, Col1: 9}, transform)
	require.NoError(t, err)

	var calls int
	r := Reprojector{
		TileSize: 4,
		OnTile:   func(done, total int) { calls++; assert.Equal(t, 9, total) },
	}
	_, err = r.Reproject(src, nil, dst)
	require.NoError(t, err)
	assert.Equal(t, 9, calls)
}

func TestReproject_OutsideSourceStaysMissing(t *testing.T) {
	srcTransform := raster.GeoTransform{0, 10, 0, 50, 0, -10}
	src := sequentialSource(5, 5, srcTransform)

	// Destination extends 20 m east of the source extent.
	dstTransform := raster.TransformFromBounds(raster.Bounds{Left: 30, Bottom: 20, Right: 70, Top: 40}, 4, 2)
	dst := CommonGrid{Window: Window{Row0: 0, Row1: 2, Col0: 0, Col1: 4}, Transform: dstTransform}

	r := Reprojector{TileSize: 100}
	out, err := r.Reproject(src, nil, dst)
	require.NoError(t, err)

	// Columns 0 and 1 fall inside the source, columns 2 and 3 outside.
	for row := 0; row < 2; row++ {
		assert.False(t, math.IsNaN(out.At(row, 0)))
		assert.False(t, math.IsNaN(out.At(row, 1)))
		assert.True(t, math.IsNaN(out.At(row, 2)))
		assert.True(t, math.IsNaN(out.At(row, 3)))
	}
}

func TestReproject_PointTransformShiftsLookup(t *testing.T) {
	// The source CRS is the destination CRS shifted 100 units east.
	transform := raster.GeoTransform{100, 10, 0, 50, 0, -10}
	src := sequentialSource(5, 5, transform)

	dstTransform := raster.GeoTransform{0, 10, 0, 50, 0, -10}
	dst := CommonGrid{Window: Window{Row0: 0, Row1: 5, Col0: 0, Col1: 5}, Transform: dstTransform}

	shift := func(xs, ys []float64) error {
		for i := range xs {
			xs[i] += 100
		}
		return nil
	}

	r := Reprojector{TileSize: 100}
	out, err := r.Reproject(src, shift, dst)
	require.NoError(t, err)
	assertGridsEqual(t, src.grid, out)
}
