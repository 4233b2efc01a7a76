package align

import (
	"fmt"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// CommonGrid is the pixel window and geographic transform shared by every
// band of the output: all bands have exactly this width, height and
// transform.
type CommonGrid struct {
	Window    Window
	Transform raster.GeoTransform
}

func (cg CommonGrid) Width() int {
	return cg.Window.Width()
}

func (cg CommonGrid) Height() int {
	return cg.Window.Height()
}

// IntersectWindows combines per-raster valid windows into their common
// intersection: componentwise max of starts, min of ends. A degenerate
// result is an error, not a zero-size output.
func IntersectWindows(windows []Window) (Window, error) {
	if len(windows) == 0 {
		return Window{}, fmt.Errorf("no valid windows to intersect")
	}
	common := windows[0]
	for _, w := range windows[1:] {
		common = common.Intersect(w)
	}
	if common.IsEmpty() {
		return Window{}, fmt.Errorf("common window is degenerate (%dx%d): the rasters do not overlap",
			common.Width(), common.Height())
	}
	return common, nil
}

// MarginWindow trims the given fraction of rows and columns off every
// border of a width x height raster, ignoring other rasters' windows.
func MarginWindow(width, height int, fraction float64) (Window, error) {
	trimRows := int(float64(height) * fraction)
	trimCols := int(float64(width) * fraction)
	w := Window{
		Row0: trimRows,
		Row1: height - trimRows,
		Col0: trimCols,
		Col1: width - trimCols,
	}
	if w.IsEmpty() {
		return Window{}, fmt.Errorf("margin fraction %.2f leaves a degenerate %dx%d window",
			fraction, w.Width(), w.Height())
	}
	return w, nil
}

// NewCommonGrid derives the common grid for a window expressed in the
// reference raster's pixel space: the window corners are mapped through
// the reference transform to geographic bounds, and a fresh transform is
// constructed directly from those bounds so the mapping of pixel (0,0)
// and (width,height) reproduces them exactly.
func NewCommonGrid(w Window, reference raster.GeoTransform) (CommonGrid, error) {
	if w.IsEmpty() {
		return CommonGrid{}, fmt.Errorf("cannot build a grid from a degenerate %dx%d window",
			w.Width(), w.Height())
	}

	x0, y0 := reference.PixelToGeo(float64(w.Col0), float64(w.Row0))
	x1, y1 := reference.PixelToGeo(float64(w.Col1), float64(w.Row1))
	bounds := raster.Bounds{
		Left:   min(x0, x1),
		Bottom: min(y0, y1),
		Right:  max(x0, x1),
		Top:    max(y0, y1),
	}

	return CommonGrid{
		Window:    w,
		Transform: raster.TransformFromBounds(bounds, w.Width(), w.Height()),
	}, nil
}
