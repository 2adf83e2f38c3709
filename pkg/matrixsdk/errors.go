package matrixsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error kinds found in ErrorResponse.Error.
const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeConflict        = "conflict"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeAuth            = "auth_error"
	ErrorCodeRateLimited     = "rate_limited"
	ErrorCodeUnauthenticated = "unauthenticated"
	ErrorCodeServerError     = "server_error"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
	RetryAfter int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// parseErrorResponse turns an error response into an *APIError. It
// returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error,
			Message:    errResp.Message,
			Details:    errResp.Details,
			RetryAfter: errResp.RetryAfter,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
