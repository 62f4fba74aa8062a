// Package gemini talks to the hosted generative-language API. It builds the
// structured prompts the product features need and parses the model's
// free-form output back into data.
package gemini

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

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// ModelChat handles conversation and clinical documents; ModelLite is
	// enough for schedules and template emails.
	ModelChat = "gemini-2.5-flash"
	ModelLite = "gemini-2.5-flash-lite"
)

var ErrEmptyResponse = errors.New("gemini returned no candidates")

// Message is one conversation turn. Role is "user" or "model".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type generateRequest struct {
	Contents []wireContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the conversation history plus the final user prompt to the
// given model and returns the first candidate's text. Transient upstream
// failures are retried with exponential backoff.
func (client *Client) Generate(ctx context.Context, model string, history []Message, prompt string) (string, error) {
	contents := make([]wireContent, 0, len(history)+1)
	for _, message := range history {
		contents = append(contents, wireContent{Role: message.Role, Parts: []wirePart{{Text: message.Content}}})
	}
	contents = append(contents, wireContent{Role: "user", Parts: []wirePart{{Text: prompt}}})

	body, err := json.Marshal(generateRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", client.baseURL, model, client.apiKey)

	var text string
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
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
			return retry.RetryableError(fmt.Errorf("gemini responded %d", response.StatusCode))
		}
		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("gemini responded %d: %s", response.StatusCode, payload)
		}

		var decoded generateResponse
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return fmt.Errorf("decode generate response: %w", err)
		}
		if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
			return ErrEmptyResponse
		}
		text = decoded.Candidates[0].Content.Parts[0].Text
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
