package align

import (
	"fmt"
	"math"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// SourceReader is windowed access to the raster being resampled. Reads
// never cover more than one destination tile's footprint, which is what
// keeps peak memory bounded on large sources.
type SourceReader interface {
	Size() (width, height int)
	Transform() raster.GeoTransform
	ReadRegion(col0, row0, width, height int) (*raster.Grid, error)
}

// PointTransform converts coordinates from the destination CRS to the
// source CRS, in place. A nil PointTransform means both rasters share a
// CRS.
type PointTransform func(xs, ys []float64) error

const DefaultTileSize = 2000

// Reprojector resamples a source raster onto a common grid with
// nearest-neighbor sampling, destination tile by destination tile. The
// tiling is purely a memory device: the result is identical to a one-pass
// reprojection because every destination pixel is mapped through the same
// per-pixel center lookup regardless of tile boundaries.
type Reprojector struct {
	TileSize int
	// OnTile, when set, is called after each completed tile.
	OnTile func(done, total int)
}

// Reproject fills a dst-shaped grid from src. Destination pixels whose
// footprint misses the source extent stay NaN.
func (r *Reprojector) Reproject(src SourceReader, toSource PointTransform, dst CommonGrid) (*raster.Grid, error) {
	tileSize := r.TileSize
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	width, height := dst.Width(), dst.Height()
	out := raster.NewGrid(width, height)

	tilesPerRow := (width + tileSize - 1) / tileSize
	tilesPerCol := (height + tileSize - 1) / tileSize
	totalTiles := tilesPerRow * tilesPerCol
	doneTiles := 0

	for row0 := 0; row0 < height; row0 += tileSize {
		row1 := min(row0+tileSize, height)
		for col0 := 0; col0 < width; col0 += tileSize {
			col1 := min(col0+tileSize, width)

			if err := r.reprojectTile(src, toSource, dst, out, row0, row1, col0, col1); err != nil {
				return nil, fmt.Errorf("failed to reproject tile at (%d,%d): %w", row0, col0, err)
			}

			doneTiles++
			if r.OnTile != nil {
				r.OnTile(doneTiles, totalTiles)
			}
		}
	}

	return out, nil
}

func (r *Reprojector) reprojectTile(src SourceReader, toSource PointTransform, dst CommonGrid, out *raster.Grid, row0, row1, col0, col1 int) error {
	srcWidth, srcHeight := src.Size()
	srcT := src.Transform()

	// Tile corners in the destination CRS, then in the source CRS.
	xs := []float64{float64(col0), float64(col1), float64(col0), float64(col1)}
	ys := []float64{float64(row0), float64(row0), float64(row1), float64(row1)}
	for i := range xs {
		xs[i], ys[i] = dst.Transform.PixelToGeo(xs[i], ys[i])
	}
	if toSource != nil {
		if err := toSource(xs, ys); err != nil {
			return fmt.Errorf("failed to transform tile bounds: %w", err)
		}
	}

	// Corresponding source window, padded one pixel against rounding,
	// clamped to the source extent.
	minCol, minRow := math.Inf(1), math.Inf(1)
	maxCol, maxRow := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		c, rw := srcT.GeoToPixel(xs[i], ys[i])
		minCol = math.Min(minCol, c)
		maxCol = math.Max(maxCol, c)
		minRow = math.Min(minRow, rw)
		maxRow = math.Max(maxRow, rw)
	}
	srcWin := Window{
		Row0: int(math.Floor(minRow)) - 1,
		Row1: int(math.Ceil(maxRow)) + 1,
		Col0: int(math.Floor(minCol)) - 1,
		Col1: int(math.Ceil(maxCol)) + 1,
	}
	srcWin = srcWin.Intersect(Window{Row0: 0, Row1: srcHeight, Col0: 0, Col1: srcWidth})
	if srcWin.IsEmpty() {
		// No overlap: the tile stays all NaN.
		return nil
	}

	chunk, err := src.ReadRegion(srcWin.Col0, srcWin.Row0, srcWin.Width(), srcWin.Height())
	if err != nil {
		return err
	}

	tileWidth := col1 - col0
	rowX := make([]float64, tileWidth)
	rowY := make([]float64, tileWidth)
	for row := row0; row < row1; row++ {
		for i := 0; i < tileWidth; i++ {
			// Pixel centers, so nearest-neighbor picks the sample the
			// destination pixel actually covers.
			rowX[i], rowY[i] = dst.Transform.PixelToGeo(float64(col0+i)+0.5, float64(row)+0.5)
		}
		if toSource != nil {
			if err := toSource(rowX, rowY); err != nil {
				return fmt.Errorf("failed to transform pixel centers: %w", err)
			}
		}
		for i := 0; i < tileWidth; i++ {
			srcColF, srcRowF := srcT.GeoToPixel(rowX[i], rowY[i])
			srcCol := int(math.Floor(srcColF))
			srcRow := int(math.Floor(srcRowF))
			if srcCol < srcWin.Col0 || srcCol >= srcWin.Col1 || srcRow < srcWin.Row0 || srcRow >= srcWin.Row1 {
				continue
			}
			out.Set(row, col0+i, chunk.At(srcRow-srcWin.Row0, srcCol-srcWin.Col0))
		}
	}

	return nil
}
