package sentinel

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePixels(t *testing.T) {
	// 0.1 degrees at ~111 km per degree is 11.1 km, 1110 pixels at 10 m.
	assert.Equal(t, 1110, calculatePixels(0.1))
	// Clamped to the API's limits on both ends.
	assert.Equal(t, maxPixels, calculatePixels(1.0))
	assert.Equal(t, 1, calculatePixels(0))
}

func TestProcessPayload(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-62.1, -37.6}, Max: orb.Point{-61.8, -37.3}}
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	payload := processPayload(bound, startDate, endDate)

	input := payload["input"].(map[string]interface{})
	bounds := input["bounds"].(map[string]interface{})
	assert.Equal(t, []float64{-62.1, -37.6, -61.8, -37.3}, bounds["bbox"])

	data := input["data"].([]map[string]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "sentinel-2-l2a", data[0]["type"])

	dataFilter := data[0]["dataFilter"].(map[string]interface{})
	assert.Equal(t, 30, dataFilter["maxCloudCoverage"])
	assert.Equal(t, "leastCC", dataFilter["mosaickingOrder"])

	timeRange := dataFilter["timeRange"].(map[string]string)
	assert.Equal(t, "2024-01-01T00:00:00Z", timeRange["from"])
	assert.Equal(t, "2024-02-01T00:00:00Z", timeRange["to"])

	output := payload["output"].(map[string]interface{})
	assert.Equal(t, calculatePixels(0.3), output["width"])

	assert.Equal(t, ndviEvalscript, payload["evalscript"])
}

func TestDownloadConfig_Bound(t *testing.T) {
	cfg := DownloadConfig{Lon: -61.93294, Lat: -37.45859, BufferMeters: 14000}
	bound := cfg.bound()

	assert.Less(t, bound.Min[0], cfg.Lon)
	assert.Greater(t, bound.Max[0], cfg.Lon)
	assert.Less(t, bound.Min[1], cfg.Lat)
	assert.Greater(t, bound.Max[1], cfg.Lat)
}
