package matrixsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotReady is returned by GetReadiness when /readyz answers 503. The
// HealthResponse is still returned so callers can see which check failed.
var ErrNotReady = errors.New("matrixsdk: service not ready")

// GetLiveness reports whether the API process is up.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	health, status, err := c.getHealth(ctx, "/livez")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{
			StatusCode: status,
			Code:       ErrorCodeServerError,
			Message:    fmt.Sprintf("unexpected status %d", status),
		}
	}
	return health, nil
}

// GetReadiness reports whether the API can serve traffic: its database
// answers and a session key is loaded.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	health, status, err := c.getHealth(ctx, "/readyz")
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		return health, nil
	case http.StatusServiceUnavailable:
		return health, ErrNotReady
	}
	return nil, &APIError{
		StatusCode: status,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("unexpected status %d", status),
	}
}

// getHealth fetches a health document. Rate limited and other error
// bodies come back as an *APIError.
func (c *Client) getHealth(ctx context.Context, path string) (*HealthResponse, int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err == nil && health.Status != "" {
		return &health, resp.StatusCode, nil
	}
	if apiErr := parseErrorResponse(resp, body); apiErr != nil {
		return nil, resp.StatusCode, apiErr
	}
	return nil, resp.StatusCode, errors.New("matrixsdk: malformed health response")
}
