package align

import (
	"math"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// Window is an axis-aligned pixel rectangle, half-open on both axes:
// rows [Row0,Row1), columns [Col0,Col1).
type Window struct {
	Row0 int
	Row1 int
	Col0 int
	Col1 int
}

func (w Window) Width() int {
	return w.Col1 - w.Col0
}

func (w Window) Height() int {
	return w.Row1 - w.Row0
}

// IsEmpty reports a degenerate window, i.e. non-positive width or height.
func (w Window) IsEmpty() bool {
	return w.Width() <= 0 || w.Height() <= 0
}

// Intersect returns the componentwise overlap of two windows. The result
// may be empty.
func (w Window) Intersect(other Window) Window {
	return Window{
		Row0: max(w.Row0, other.Row0),
		Row1: min(w.Row1, other.Row1),
		Col0: max(w.Col0, other.Col0),
		Col1: min(w.Col1, other.Col1),
	}
}

// Crop copies the sub-rectangle of the grid covered by the window.
func Crop(g *raster.Grid, w Window) *raster.Grid {
	out := raster.NewGrid(w.Width(), w.Height())
	for row := w.Row0; row < w.Row1; row++ {
		for col := w.Col0; col < w.Col1; col++ {
			out.Set(row-w.Row0, col-w.Col0, g.At(row, col))
		}
	}
	return out
}

// DetectValidWindow trims the all-NaN border of a grid: the window spans
// from the first to the last row and column containing at least one valid
// sample. Interior holes are not detected. The second return value is
// false when the grid has no valid data at all.
func DetectValidWindow(g *raster.Grid) (Window, bool) {
	rowValid := make([]bool, g.Height)
	colValid := make([]bool, g.Width)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if !math.IsNaN(g.At(row, col)) {
				rowValid[row] = true
				colValid[col] = true
			}
		}
	}

	w := Window{Row0: -1, Col0: -1}
	for row, valid := range rowValid {
		if valid {
			if w.Row0 < 0 {
				w.Row0 = row
			}
			w.Row1 = row + 1
		}
	}
	for col, valid := range colValid {
		if valid {
			if w.Col0 < 0 {
				w.Col0 = col
			}
			w.Col1 = col + 1
		}
	}

	if w.Row0 < 0 || w.Col0 < 0 {
		return Window{}, false
	}
	return w, true
}
