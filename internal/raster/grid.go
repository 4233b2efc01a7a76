package raster

import "math"

// Grid is one band of samples held in memory, row-major. Missing samples
// are NaN; every value read from a file with a nodata marker is replaced
// with NaN before the grid is handed to the rest of the pipeline.
type Grid struct {
	Width  int
	Height int
	Data   []float64
}

func NewGrid(width, height int) *Grid {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid{Width: width, Height: height, Data: data}
}

func NewGridFromData(width, height int, data []float64) *Grid {
	return &Grid{Width: width, Height: height, Data: data}
}

func (g *Grid) At(row, col int) float64 {
	return g.Data[row*g.Width+col]
}

func (g *Grid) Set(row, col int, value float64) {
	g.Data[row*g.Width+col] = value
}

func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)
	return &Grid{Width: g.Width, Height: g.Height, Data: data}
}

// MaskValues replaces every occurrence of the given values with NaN.
func (g *Grid) MaskValues(values ...float64) {
	if len(values) == 0 {
		return
	}
	for i, v := range g.Data {
		for _, masked := range values {
			if v == masked {
				g.Data[i] = math.NaN()
				break
			}
		}
	}
}

func (g *Grid) CountValid() int {
	count := 0
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}

// ValidFraction returns the share of non-NaN samples, in [0,1].
func (g *Grid) ValidFraction() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	return float64(g.CountValid()) / float64(len(g.Data))
}
