// Package majority implements the post-classification smoothing filter:
// each pixel is replaced by the most frequent category value in its
// surrounding window.
package majority

import "fmt"

// NoData is the sentinel written where a whole neighborhood carries no
// valid category.
const NoData int32 = -1

// Filter replaces every pixel of a categorical raster with the mode of
// its size x size neighborhood. Negative values never vote; a
// neighborhood with no votes yields NoData. Border pixels use
// edge-replicated neighbors, and ties go to the smallest category value.
func Filter(data []int32, width, height, size int) ([]int32, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("window size must be an odd number >= 3, got %d", size)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("data size mismatch: expected %d, got %d", width*height, len(data))
	}

	radius := size / 2
	out := make([]int32, len(data))
	counts := make(map[int32]int, size*size)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			clear(counts)
			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					r := clamp(row+dr, 0, height-1)
					c := clamp(col+dc, 0, width-1)
					if v := data[r*width+c]; v >= 0 {
						counts[v]++
					}
				}
			}
			out[row*width+col] = mode(counts)
		}
	}

	return out, nil
}

func mode(counts map[int32]int) int32 {
	best := NoData
	bestCount := 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}
	return best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
