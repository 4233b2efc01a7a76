package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var nan = math.NaN()

func TestNewGrid_StartsAllMissing(t *testing.T) {
	g := NewGrid(3, 2)
	assert.Equal(t, 0, g.CountValid())
	assert.Equal(t, 0.0, g.ValidFraction())
}

func TestGrid_MaskValues(t *testing.T) {
	g := NewGridFromData(2, 2, []float64{255, 0.4, 0, 0.7})
	g.MaskValues(255, 0)

	assert.True(t, math.IsNaN(g.At(0, 0)))
	assert.Equal(t, 0.4, g.At(0, 1))
	assert.True(t, math.IsNaN(g.At(1, 0)))
	assert.Equal(t, 0.7, g.At(1, 1))
	assert.Equal(t, 0.5, g.ValidFraction())
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGridFromData(2, 1, []float64{0.1, nan})
	clone := g.Clone()
	clone.Set(0, 0, 0.9)

	assert.Equal(t, 0.1, g.At(0, 0))
	assert.Equal(t, 0.9, clone.At(0, 0))
	assert.True(t, math.IsNaN(clone.At(0, 1)))
}
