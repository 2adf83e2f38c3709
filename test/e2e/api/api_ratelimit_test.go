package api_test

import (
	"net/http"
	"testing"

	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit runs with production strict limits: five login
// attempts a minute per address.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, map[string]string{
		"RATELIMIT_STRICT_REQUESTS": "5",
		"RATELIMIT_STRICT_BURST":    "5",
	})
	defer cleanup()

	client := matrixsdk.NewClient(baseURL)

	for range 5 {
		_, err := client.Login(t.Context(), matrixsdk.LoginRequest{Username: "ghost", Password: testPassword})
		requireAPIError(t, err, http.StatusNotFound, matrixsdk.ErrorCodeNotFound)
	}

	_, err := client.Login(t.Context(), matrixsdk.LoginRequest{Username: "ghost", Password: testPassword})
	apiErr := requireAPIError(t, err, http.StatusTooManyRequests, matrixsdk.ErrorCodeRateLimited)
	require.Positive(t, apiErr.RetryAfter)

	// Probes are counted separately
	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}
