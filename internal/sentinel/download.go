package sentinel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/schollz/progressbar/v3"

	"github.com/pampasat/ndvi-stack/internal/cache"
)

// DownloadConfig parameterizes one monthly download run.
type DownloadConfig struct {
	OutputDir string
	// Months to fetch, formatted YYYY-MM; each becomes NDVI_<month>.tif.
	Months []string
	// Center point plus buffer radius defining the area of interest.
	Lon          float64
	Lat          float64
	BufferMeters float64
	// UseExport routes every request through the asynchronous batch API.
	UseExport bool
}

func (c DownloadConfig) bound() orb.Bound {
	return geo.NewBoundAroundPoint(orb.Point{c.Lon, c.Lat}, c.BufferMeters)
}

// DownloadRecord is the manifest entry kept per downloaded month.
type DownloadRecord struct {
	Month        string    `json:"month"`
	File         string    `json:"file"`
	SizeBytes    int       `json:"size_bytes"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// DownloadMonthly fetches one NDVI composite per configured month,
// sequentially. Months already present on disk with a manifest entry are
// skipped; use Redownload to force them.
func DownloadMonthly(ctx context.Context, cfg DownloadConfig) error {
	return download(ctx, cfg, cfg.Months, false)
}

// Redownload re-fetches the given months unconditionally, typically the
// ones the coverage verifier flagged.
func Redownload(ctx context.Context, cfg DownloadConfig, months []string) error {
	if len(months) == 0 {
		return fmt.Errorf("no months to re-download")
	}
	return download(ctx, cfg, months, true)
}

func download(ctx context.Context, cfg DownloadConfig, months []string, force bool) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	client, err := newHTTPClient(ctx)
	if err != nil {
		return err
	}

	bound := cfg.bound()
	fmt.Printf("Area of interest: %.6f to %.6f lon, %.6f to %.6f lat\n",
		bound.Min[0], bound.Max[0], bound.Min[1], bound.Max[1])

	manifest := cache.NewFileCache[DownloadRecord]("download_manifest")
	progressBar := progressbar.Default(int64(len(months)), "Downloading NDVI composites")

	for _, month := range months {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("NDVI_%s.tif", month))
		key := manifest.GenerateKey(cfg.Lon, cfg.Lat, cfg.BufferMeters, month)

		if !force {
			if _, cached := manifest.Get(key); cached && fileExists(path) {
				fmt.Printf("  %s already downloaded, skipping\n", month)
				progressBar.Add(1)
				continue
			}
		}

		startDate, err := time.Parse("2006-01", month)
		if err != nil {
			return fmt.Errorf("invalid month %q: %v", month, err)
		}
		endDate := startDate.AddDate(0, 1, 0)

		if cfg.UseExport {
			if err := exportComposite(client, bound, startDate, endDate, fmt.Sprintf("NDVI_%s", month)); err != nil {
				return fmt.Errorf("failed to export %s: %w", month, err)
			}
			progressBar.Add(1)
			continue
		}

		body, err := requestComposite(ctx, client, bound, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", month, err)
		}
		if err := os.WriteFile(path, body, 0644); err != nil {
			return fmt.Errorf("failed to save %s: %v", path, err)
		}

		record := DownloadRecord{
			Month:        month,
			File:         filepath.Base(path),
			SizeBytes:    len(body),
			DownloadedAt: time.Now(),
		}
		if err := manifest.Set(key, record); err != nil {
			fmt.Printf("[WARN] failed to update download manifest: %v\n", err)
		}

		fmt.Printf("  %s: %.2f MB\n", month, float64(len(body))/(1024*1024))
		progressBar.Add(1)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
