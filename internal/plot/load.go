// Package plot renders the exploratory figures for a written composite:
// per-category NDVI time series, monthly histograms and the colored
// category map.
package plot

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// MonthBand is one temporal NDVI band of a loaded composite.
type MonthBand struct {
	Month string
	Grid  *raster.Grid
}

// Composite is the multi-band output read back for plotting. Bands are
// resolved positionally through the band manifest, which is the writer's
// contract.
type Composite struct {
	Category *raster.Grid
	Stats    map[string]*raster.Grid
	Months   []MonthBand
}

// ReadManifest parses the `Band <n>: <label>` sidecar into labels in band
// order.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open band manifest: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		_, label, found := strings.Cut(line, ": ")
		if !found {
			return nil, fmt.Errorf("malformed manifest line: %q", line)
		}
		names = append(names, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read band manifest: %w", err)
	}
	return names, nil
}

// LoadComposite reads the composite raster and its manifest.
func LoadComposite(rasterPath, manifestPath string) (*Composite, error) {
	names, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	file, err := raster.Open(rasterPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if file.BandCount() != len(names) {
		return nil, fmt.Errorf("manifest lists %d bands but %s has %d", len(names), rasterPath, file.BandCount())
	}

	out := &Composite{Stats: make(map[string]*raster.Grid)}
	for i, name := range names {
		grid, err := file.ReadBandFull(i)
		if err != nil {
			return nil, err
		}
		switch {
		case i == 0:
			out.Category = grid
		case strings.HasPrefix(name, "NDVI_"):
			out.Months = append(out.Months, MonthBand{Month: strings.TrimPrefix(name, "NDVI_"), Grid: grid})
		default:
			out.Stats[name] = grid
		}
	}

	if out.Category == nil || len(out.Months) == 0 {
		return nil, fmt.Errorf("composite %s is missing the category band or the monthly bands", rasterPath)
	}
	return out, nil
}
