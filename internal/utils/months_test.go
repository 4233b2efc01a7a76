package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortDates(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	c := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	asc := SortDates([]time.Time{a, b, c}, true)
	assert.Equal(t, []time.Time{b, c, a}, asc)

	desc := SortDates([]time.Time{a, b, c}, false)
	assert.Equal(t, []time.Time{a, c, b}, desc)
}

func TestMonthsFromDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"NDVI_2024-02.tif",
		"NDVI_2023-12.tif",
		"NDVI_2024-01.tif",
		"NDVI_notamonth.tif",
		"landcover.tif",
		"readme.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	months, err := MonthsFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, months)
}

func TestMonthsFromDir_MissingDir(t *testing.T) {
	_, err := MonthsFromDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
