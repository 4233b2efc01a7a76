package ui

import (
	"context"
	"fmt"

	"github.com/pampasat/ndvi-stack/internal/composite"
	"github.com/pampasat/ndvi-stack/internal/notification"
	"github.com/pampasat/ndvi-stack/internal/sentinel"
)

func readDownloadConfig() (sentinel.DownloadConfig, error) {
	cfg := sentinel.DownloadConfig{
		OutputDir: ReadString("Output directory", defaultNDVIDir()),
		Months:    ReadMonths("Months (comma-separated, YYYY-MM)", defaultMonths),
	}

	var err error
	if cfg.Lon, err = ReadFloat("Center longitude", defaultLon); err != nil {
		return cfg, err
	}
	if cfg.Lat, err = ReadFloat("Center latitude", defaultLat); err != nil {
		return cfg, err
	}
	if cfg.BufferMeters, err = ReadFloat("Buffer radius in meters", defaultBufferMeters); err != nil {
		return cfg, err
	}
	cfg.UseExport = ReadYesNo("Use the asynchronous batch export (large areas)?", false)
	return cfg, nil
}

// DownloadComposites fetches one NDVI composite per configured month.
func DownloadComposites() {
	cfg, err := readDownloadConfig()
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := sentinel.DownloadMonthly(context.Background(), cfg); err != nil {
		PrintError(fmt.Sprintf("Download failed: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("NDVI stack\n\nDownload failed: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Downloaded %d months into %s", len(cfg.Months), cfg.OutputDir))
	notification.SendDiscordSuccessNotification(fmt.Sprintf("NDVI stack\n\nDownloaded %d monthly composites", len(cfg.Months)))
}

// VerifyCoverage checks every monthly raster's valid fraction and offers
// to re-download the flagged ones.
func VerifyCoverage() {
	cfg := composite.Config{
		NDVIDir:      ReadString("NDVI directory", defaultNDVIDir()),
		CategoryPath: defaultCategoryPath(),
		Months:       ReadMonths("Months (comma-separated, YYYY-MM)", defaultMonths),
	}
	threshold, err := ReadFloat("Valid-fraction threshold", 0.5)
	if err != nil {
		PrintError(err.Error())
		return
	}
	cfg.ValidThreshold = threshold

	records, err := composite.VerifyCoverage(cfg)
	if err != nil {
		PrintError(fmt.Sprintf("Coverage verification failed: %s", err.Error()))
		return
	}

	reportPath := dataPath("proc/coverage_report.csv")
	if err := composite.WriteCoverageReport(reportPath, records); err != nil {
		PrintError(err.Error())
		return
	}
	PrintSuccess(fmt.Sprintf("Coverage report written to %s", reportPath))

	flagged := composite.FlaggedMonths(records)
	if len(flagged) == 0 {
		PrintSuccess("All months have sufficient coverage")
		return
	}

	PrintWarning(fmt.Sprintf("%d months flagged: %v", len(flagged), flagged))
	if !ReadYesNo("Re-download the flagged months now?", false) {
		return
	}

	downloadCfg, err := readDownloadConfig()
	if err != nil {
		PrintError(err.Error())
		return
	}
	if err := sentinel.Redownload(context.Background(), downloadCfg, flagged); err != nil {
		PrintError(fmt.Sprintf("Re-download failed: %s", err.Error()))
		return
	}
	PrintSuccess("Flagged months re-downloaded")
}
