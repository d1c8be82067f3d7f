package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL is the base URL of the hosted email API.
const DefaultAPIURL = "https://api.resend.com"

// APIClient sends mail through a Resend-compatible HTTP API.
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIClient creates a client. An empty baseURL uses DefaultAPIURL.
func NewAPIClient(baseURL, apiKey string, httpClient *http.Client) *APIClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type apiRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type apiResponse struct {
	ID string `json:"id"`
}

// Send posts msg to the emails endpoint. A non-2xx answer carrying an error
// body becomes a *ProviderError; anything else that is not a receipt is
// reported as ErrUnexpectedResponse.
func (c *APIClient) Send(ctx context.Context, msg Message) (Receipt, error) {
	payload, err := json.Marshal(apiRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Receipt{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var pe ProviderError
		if json.Unmarshal(body, &pe) == nil && pe.Message != "" {
			if pe.StatusCode == 0 {
				pe.StatusCode = resp.StatusCode
			}
			return Receipt{}, &pe
		}
		return Receipt{}, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		return Receipt{}, fmt.Errorf("%w: missing message id", ErrUnexpectedResponse)
	}
	return Receipt{ID: out.ID}, nil
}
