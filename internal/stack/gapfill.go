package stack

import (
	"fmt"
	"math"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// GapFillReport summarizes a temporal interpolation pass.
type GapFillReport struct {
	KeptOriginal int
	Filled       int
	StillMissing int
}

// FillFromNeighbors fills the NaN pixels of the slice at target from its
// two temporal neighbors: the mean when both are valid, the single valid
// neighbor otherwise, nothing when neither is. Pixels already valid in the
// target slice are never touched. The target slice is replaced with the
// filled copy; the neighbors are read only.
func FillFromNeighbors(slices []*raster.Grid, target int) (GapFillReport, error) {
	if target <= 0 || target >= len(slices)-1 {
		return GapFillReport{}, fmt.Errorf("target slice %d has no temporal neighbors in a stack of %d", target, len(slices))
	}

	prev := slices[target-1]
	next := slices[target+1]
	filled := slices[target].Clone()

	report := GapFillReport{}
	for i, v := range filled.Data {
		if !math.IsNaN(v) {
			report.KeptOriginal++
			continue
		}
		a, b := prev.Data[i], next.Data[i]
		switch {
		case !math.IsNaN(a) && !math.IsNaN(b):
			filled.Data[i] = (a + b) / 2
			report.Filled++
		case !math.IsNaN(a):
			filled.Data[i] = a
			report.Filled++
		case !math.IsNaN(b):
			filled.Data[i] = b
			report.Filled++
		default:
			report.StillMissing++
		}
	}

	slices[target] = filled
	return report, nil
}
