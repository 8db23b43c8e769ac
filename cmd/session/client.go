package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/go-openapi/strfmt"
)

// Client talks to the session endpoint of a running service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostSession requests a session token. Error responses are returned with their public error body.
func (c *Client) PostSession(ctx context.Context, payload *types.PostSessionPayload) (*types.SessionTokenResponse, error) {
	if err := payload.Validate(strfmt.Default); err != nil {
		return nil, fmt.Errorf("invalid session request: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/session", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var publicErr types.PublicHTTPError
		if err := json.Unmarshal(raw, &publicErr); err == nil && publicErr.Title != nil {
			if len(publicErr.Detail) > 0 {
				return nil, fmt.Errorf("HTTP %d: %s (%s)", resp.StatusCode, *publicErr.Title, publicErr.Detail)
			}
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, *publicErr.Title)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var result types.SessionTokenResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if err := result.Validate(strfmt.Default); err != nil {
		return nil, fmt.Errorf("invalid session response: %w", err)
	}

	return &result, nil
}
