package sentinel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
)

const (
	batchURL = "https://sh.dataspace.copernicus.eu/api/v1/batch/process"

	pollInterval = 10 * time.Second
	pollTimeout  = 30 * time.Minute
)

type batchStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// exportComposite runs one monthly composite through the asynchronous
// batch API for areas too large for a direct process call: create the
// request, start it, then block on a fixed-interval status poll until the
// platform reports DONE or FAILED.
func exportComposite(client *http.Client, bound orb.Bound, startDate, endDate time.Time, identifier string) error {
	payload := processPayload(bound, startDate, endDate)
	payload["description"] = identifier

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal batch payload: %v", err)
	}

	created, err := batchCall(client, http.MethodPost, batchURL, requestBody)
	if err != nil {
		return fmt.Errorf("failed to create batch request: %w", err)
	}
	if created.ID == "" {
		return fmt.Errorf("batch request was created without an id")
	}

	if _, err := batchCall(client, http.MethodPost, fmt.Sprintf("%s/%s/start", batchURL, created.ID), nil); err != nil {
		return fmt.Errorf("failed to start batch request %s: %w", created.ID, err)
	}
	fmt.Printf("Batch export started: %s\n", created.ID)

	deadline := time.Now().Add(pollTimeout)
	lastStatus := ""
	for {
		if time.Now().After(deadline) {
			return fmt.Errorf("batch request %s did not finish within %s", created.ID, pollTimeout)
		}

		status, err := batchCall(client, http.MethodGet, fmt.Sprintf("%s/%s", batchURL, created.ID), nil)
		if err != nil {
			return fmt.Errorf("failed to poll batch request %s: %w", created.ID, err)
		}
		if status.Status != lastStatus {
			fmt.Printf("Status: %s\n", status.Status)
			lastStatus = status.Status
		}

		switch status.Status {
		case "DONE":
			fmt.Printf("Batch export completed: %s\n", identifier)
			fmt.Println("NOTE: the result sits in the platform bucket and must be fetched separately")
			return nil
		case "FAILED":
			return fmt.Errorf("batch request %s failed: %s", created.ID, status.Error)
		}

		time.Sleep(pollInterval)
	}
}

func batchCall(client *http.Client, method, url string, body []byte) (batchStatus, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}
	request, err := http.NewRequest(method, url, reader)
	if err != nil {
		return batchStatus{}, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.Do(request)
	if err != nil {
		return batchStatus{}, err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return batchStatus{}, err
	}
	if response.StatusCode >= 300 {
		return batchStatus{}, fmt.Errorf("status %d: %s", response.StatusCode, string(responseBody))
	}

	var status batchStatus
	if len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, &status); err != nil {
			return batchStatus{}, fmt.Errorf("failed to parse batch response: %v", err)
		}
	}
	return status, nil
}
