// Package sentinel downloads monthly NDVI composites from the Copernicus
// Data Space processing API.
package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/pampasat/ndvi-stack/internal/properties"
)

const (
	processURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

	// Sentinel-2 resolution in meters per pixel.
	resolution = 10
	// The process API rejects outputs larger than 2500 pixels per side.
	maxPixels = 2500

	requestRetries = 10
	retryDelay     = 5 * time.Second
)

// NDVI from B08/B04, clouds and cloud shadows masked through the scene
// classification band.
const ndviEvalscript = `
//VERSION=3
function setup() {
  return {
    input: ["B04", "B08", "SCL"],
    output: {
      id: "default",
      bands: 1,
      sampleType: SampleType.FLOAT32,
    },
  }
}

function evaluatePixel(sample) {
  if (sample.SCL == 3 || sample.SCL == 8 || sample.SCL == 9 || sample.SCL == 10) {
    return [NaN];
  }
  var denominator = sample.B08 + sample.B04;
  if (denominator == 0) {
    return [NaN];
  }
  return [(sample.B08 - sample.B04) / denominator];
}
`

func calculatePixels(degrees float64) int {
	pixels := int(degrees * (111_000.0 / resolution))
	if pixels < 1 {
		return 1
	}
	if pixels > maxPixels {
		return maxPixels
	}
	return pixels
}

func newHTTPClient(ctx context.Context) (*http.Client, error) {
	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return config.Client(ctx), nil
}

func processPayload(bound orb.Bound, startDate, endDate time.Time) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"bbox": []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDate.Format(time.RFC3339),
							"to":   endDate.Format(time.RFC3339),
						},
						"maxCloudCoverage": 30,
						"mosaickingOrder":  "leastCC",
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  calculatePixels(bound.Max[0] - bound.Min[0]),
			"height": calculatePixels(bound.Max[1] - bound.Min[1]),
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": ndviEvalscript,
	}
}

// requestComposite asks the process API for one monthly NDVI GeoTIFF,
// retrying with a fixed delay on transient failures.
func requestComposite(ctx context.Context, client *http.Client, bound orb.Bound, startDate, endDate time.Time) ([]byte, error) {
	requestBody, err := json.Marshal(processPayload(bound, startDate, endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	var lastErr error
	for attempt := 1; attempt <= requestRetries; attempt++ {
		response, err := client.Post(processURL, "application/json", bytes.NewBuffer(requestBody))
		if err != nil {
			lastErr = err
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
			time.Sleep(retryDelay)
			continue
		}

		body, readErr := io.ReadAll(response.Body)
		response.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response body: %v", readErr)
			time.Sleep(retryDelay)
			continue
		}

		if response.StatusCode == http.StatusOK {
			return body, nil
		}
		if response.StatusCode == http.StatusForbidden || strings.Contains(string(body), "403") {
			return nil, fmt.Errorf("unauthorized access, check your client ID and secret")
		}

		lastErr = fmt.Errorf("status %d: %s", response.StatusCode, string(body))
		fmt.Printf("Attempt %d failed: %s\n", attempt, string(body))
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to request image after %d attempts: %v", requestRetries, lastErr)
}
