package utils

import (
	"os"
	"sort"
	"strings"
	"time"
)

// SortDates orders dates ascending or descending in place.
func SortDates(dates []time.Time, asc bool) []time.Time {
	sort.Slice(dates, func(i, j int) bool {
		if asc {
			return dates[i].Before(dates[j])
		}
		return dates[i].After(dates[j])
	})
	return dates
}

// MonthsFromDir lists the YYYY-MM identifiers of the NDVI_<month>.tif
// files in a directory, in temporal order.
func MonthsFromDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "NDVI_") || !strings.HasSuffix(name, ".tif") {
			continue
		}
		month := strings.TrimSuffix(strings.TrimPrefix(name, "NDVI_"), ".tif")
		date, err := time.Parse("2006-01", month)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}

	SortDates(dates, true)
	months := make([]string, 0, len(dates))
	for _, d := range dates {
		months = append(months, d.Format("2006-01"))
	}
	return months, nil
}
