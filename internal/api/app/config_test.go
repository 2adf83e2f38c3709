package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "matrix-api", cfg.Issuer)
	require.Equal(t, "token", cfg.CookieName)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.OTPTTL)
	require.Equal(t, 2*time.Minute, cfg.OTPCooldown)
	require.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	require.Equal(t, "/", cfg.ClientURL)
	require.Equal(t, "http://localhost:9090/api/v1/user/auth", cfg.Providers.CallbackBase)
	require.Empty(t, cfg.CORSOrigins)
	require.Empty(t, cfg.S3.Bucket)
	require.Empty(t, cfg.SMTP.Host)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MATRIX_BACKEND_URL", "https://api.example.com/")
	t.Setenv("MATRIX_COOKIE_SECURE", "false")
	t.Setenv("MATRIX_OTP_TTL", "10")
	t.Setenv("MATRIX_SESSION_TTL", "24h")
	t.Setenv("FRONTEND_URLS", "https://app.example.com, https://www.example.com,")
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")
	t.Setenv("SMTP_PORT", "not-a-port")

	cfg := LoadConfig()
	require.False(t, cfg.CookieSecure)
	require.Equal(t, 10*time.Minute, cfg.OTPTTL)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, []string{"https://app.example.com", "https://www.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "https://api.example.com/api/v1/user/auth", cfg.Providers.CallbackBase)
	require.Equal(t, "gh-id", cfg.Providers.GitHub.ClientID)
	require.Equal(t, "gh-secret", cfg.Providers.GitHub.ClientSecret)
	require.Empty(t, cfg.Providers.Google.ClientID)
	require.Equal(t, 587, cfg.SMTP.Port)
}
