package ui

import (
	"fmt"

	"github.com/pampasat/ndvi-stack/internal/composite"
	"github.com/pampasat/ndvi-stack/internal/notification"
)

// BuildComposite runs the whole pipeline: read monthly rasters, align
// them onto a common grid, resample the land cover, gap-fill the
// deficient month and write the stacked statistics.
func BuildComposite() {
	cfg := composite.Config{
		NDVIDir:            ReadString("NDVI directory", defaultNDVIDir()),
		CategoryPath:       ReadString("Land-cover raster", defaultCategoryPath()),
		OutputPath:         ReadString("Composite output path", defaultCompositePath()),
		ManifestPath:       ReadString("Band manifest path", defaultManifestPath()),
		Months:             ReadMonths("Months (comma-separated, YYYY-MM)", defaultMonths),
		ExcludedCategories: defaultExcludedCategories,
	}

	if ReadYesNo("Crop by intersecting the valid windows (no = fixed margin)?", true) {
		cfg.Crop = composite.CropIntersection
	} else {
		cfg.Crop = composite.CropMargin
		fraction, err := ReadFloat("Margin fraction per border", 0.05)
		if err != nil {
			PrintError(err.Error())
			return
		}
		cfg.MarginFraction = fraction
	}

	cfg.DeficientMonth = ReadString("Deficient month to gap-fill (empty for none)", defaultDeficientMonth)
	if cfg.DeficientMonth != "" {
		threshold, err := ReadFloat("Valid-fraction threshold", 0.5)
		if err != nil {
			PrintError(err.Error())
			return
		}
		cfg.ValidThreshold = threshold
	}

	if err := composite.Run(cfg); err != nil {
		PrintError(fmt.Sprintf("Composite failed: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("NDVI stack\n\nComposite failed: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Composite written to %s", cfg.OutputPath))
	notification.SendDiscordSuccessNotification(fmt.Sprintf("NDVI stack\n\nComposite written to %s", cfg.OutputPath))
}
