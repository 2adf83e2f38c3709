package matrixsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetReadinessDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/readyz":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded","uptime":"3s","version":"test","checks":{"database":"error: unreachable","signer":"ok"}}`))
		case "/livez":
			_, _ = w.Write([]byte(`{"status":"ok","uptime":"3s","version":"test"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited","message":"Too many requests","retry_after":2}`))
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)

	health, err := c.GetReadiness(t.Context())
	require.ErrorIs(t, err, ErrNotReady)
	require.NotNil(t, health)
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "error: unreachable", health.Checks.Database)

	health, err = c.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	_, _, err = c.getHealth(t.Context(), "/other")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeRateLimited, apiErr.Code)
	require.Equal(t, 2, apiErr.RetryAfter)
}
