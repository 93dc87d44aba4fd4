package dataset

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	apiClient = resty.New().SetTimeout(time.Minute).SetRetryCount(2)
)

// FetchCSV downloads a CSV table over HTTP and parses it with ReadCSV.
func FetchCSV(ctx context.Context, url string) ([]Row, []string, error) {
	resp, err := apiClient.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("error fetching %s: %s", url, resp.Status())
	}

	return ReadCSV(bytes.NewReader(resp.Body()))
}
