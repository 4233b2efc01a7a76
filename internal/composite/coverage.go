package composite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pampasat/ndvi-stack/internal/raster"
)

// CoverageRecord describes one monthly raster's spatial coverage.
type CoverageRecord struct {
	Month         string  `csv:"month"`
	File          string  `csv:"file"`
	Width         int     `csv:"width"`
	Height        int     `csv:"height"`
	Left          float64 `csv:"left"`
	Bottom        float64 `csv:"bottom"`
	Right         float64 `csv:"right"`
	Top           float64 `csv:"top"`
	ValidFraction float64 `csv:"valid_fraction"`
	Flagged       bool    `csv:"flagged"`
}

// VerifyCoverage inspects every configured monthly raster and flags the
// ones whose valid-pixel fraction falls below the threshold, so they can
// be re-downloaded. A missing file is reported as flagged with zero
// coverage rather than aborting the whole check.
func VerifyCoverage(cfg Config) ([]CoverageRecord, error) {
	records := make([]CoverageRecord, 0, len(cfg.Months))
	for _, month := range cfg.Months {
		path := filepath.Join(cfg.NDVIDir, fmt.Sprintf("NDVI_%s.tif", month))
		record := CoverageRecord{Month: month, File: filepath.Base(path)}

		file, err := raster.Open(path)
		if err != nil {
			fmt.Printf("[WARN] %s: %v\n", month, err)
			record.Flagged = true
			records = append(records, record)
			continue
		}

		meta := file.Meta()
		bounds := meta.Transform.GridBounds(meta.Width, meta.Height)
		record.Width = meta.Width
		record.Height = meta.Height
		record.Left, record.Bottom = bounds.Left, bounds.Bottom
		record.Right, record.Top = bounds.Right, bounds.Top

		grid, err := file.ReadFull()
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		record.ValidFraction = grid.ValidFraction()
		record.Flagged = record.ValidFraction < cfg.ValidThreshold

		status := "ok"
		if record.Flagged {
			status = "FLAGGED"
		}
		fmt.Printf("  %s: %dx%d, %.2f%% valid [%s]\n", month, meta.Width, meta.Height, record.ValidFraction*100, status)
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no months configured for coverage verification")
	}
	return records, nil
}

// FlaggedMonths returns the months that need re-downloading.
func FlaggedMonths(records []CoverageRecord) []string {
	var months []string
	for _, r := range records {
		if r.Flagged {
			months = append(months, r.Month)
		}
	}
	return months
}

// WriteCoverageReport saves the records as a CSV report.
func WriteCoverageReport(path string, records []CoverageRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create coverage report: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("failed to write coverage report: %w", err)
	}
	return nil
}
