// Package predict proxies the fixed 9-feature vector to the remote PCOS
// classifier and relays its verdict.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// FeatureCount is the classifier's fixed input width.
const FeatureCount = 9

var ErrInvalidFeatures = errors.New("features must be a 9-element numeric array")

// UpstreamError carries the classifier's non-2xx response through to the
// caller so the handler can relay its status.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (err *UpstreamError) Error() string {
	return fmt.Sprintf("prediction server responded %d", err.StatusCode)
}

// Result is the classifier's verdict, relayed as-is.
type Result struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability,omitempty"`
	Label       string  `json:"label,omitempty"`
}

type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

// Predict forwards the feature vector and decodes the verdict. Connection
// failures and 5xx responses are retried a bounded number of times; a 4xx is
// returned immediately as an UpstreamError.
func (client *Client) Predict(ctx context.Context, features []float64) (Result, error) {
	if len(features) != FeatureCount {
		return Result{}, ErrInvalidFeatures
	}

	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return Result{}, fmt.Errorf("encode predict request: %w", err)
	}

	var result Result
	backoff := retry.WithMaxRetries(2, retry.NewExponential(300*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		request.Header.Set("Content-Type", "application/json")

		response, err := client.httpClient.Do(request)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer response.Body.Close()

		payload, err := io.ReadAll(response.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if response.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(&UpstreamError{StatusCode: response.StatusCode, Body: payload})
		}
		if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
			return &UpstreamError{StatusCode: response.StatusCode, Body: payload}
		}
		if err := json.Unmarshal(payload, &result); err != nil {
			return fmt.Errorf("decode prediction: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
