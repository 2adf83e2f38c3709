package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves a token endpoint and the profile APIs of all three
// providers.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /v1/userinfo", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub": "g-1", "email": "Alice@Example.com", "email_verified": true,
			"name": "Alice", "picture": "https://img.example.com/a.png",
		})
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "login": "octo", "name": "", "email": "", "avatar_url": "https://img.example.com/o.png",
		})
	})
	mux.HandleFunc("GET /user/emails", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"email": "old@example.com", "primary": false, "verified": true},
			{"email": "octo@example.com", "primary": true, "verified": true},
		})
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "fb-7", "name": "Fay", "email": "fay@example.com",
			"picture": map[string]any{"data": map[string]any{"url": "https://img.example.com/f.png"}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testRegistry(srv *httptest.Server) *Registry {
	pc := func() ProviderConfig {
		return ProviderConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			AuthURL:      srv.URL + "/authorize",
			TokenURL:     srv.URL + "/token",
			APIURL:       srv.URL,
		}
	}
	return NewRegistry(Providers{
		CallbackBase: "https://api.example.com/api/v1/user/auth/",
		Google:       pc(),
		GitHub:       pc(),
		Facebook:     pc(),
	}, srv.Client())
}

func TestAuthCodeURL(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Providers{
		CallbackBase: "https://api.example.com/api/v1/user/auth",
		GitHub:       ProviderConfig{ClientID: "cid", ClientSecret: "sec"},
	}, nil)

	require.True(t, r.Enabled(domain.ProviderGitHub))
	require.False(t, r.Enabled(domain.ProviderGoogle))

	raw, err := r.AuthCodeURL(domain.ProviderGitHub, "xyz")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "github.com", u.Host)
	require.Equal(t, "xyz", u.Query().Get("state"))
	require.Equal(t, "cid", u.Query().Get("client_id"))
	require.Equal(t, "https://api.example.com/api/v1/user/auth/github/callback", u.Query().Get("redirect_uri"))

	_, err = r.AuthCodeURL(domain.ProviderFacebook, "xyz")
	require.ErrorIs(t, err, ErrProviderDisabled)
}

func TestExchange(t *testing.T) {
	t.Parallel()

	srv := fakeProvider(t)
	r := testRegistry(srv)
	ctx := context.Background()

	t.Run("google", func(t *testing.T) {
		ext, err := r.Exchange(ctx, domain.ProviderGoogle, "good-code")
		require.NoError(t, err)
		require.Equal(t, domain.ProviderGoogle, ext.Provider)
		require.Equal(t, "g-1", ext.ID)
		require.Equal(t, "alice@example.com", ext.Email)
		require.Equal(t, "Alice", ext.FullName)
	})

	t.Run("github falls back to the primary email", func(t *testing.T) {
		ext, err := r.Exchange(ctx, domain.ProviderGitHub, "good-code")
		require.NoError(t, err)
		require.Equal(t, "42", ext.ID)
		require.Equal(t, "octo", ext.Username)
		require.Equal(t, "octo", ext.FullName)
		require.Equal(t, "octo@example.com", ext.Email)
	})

	t.Run("facebook", func(t *testing.T) {
		ext, err := r.Exchange(ctx, domain.ProviderFacebook, "good-code")
		require.NoError(t, err)
		require.Equal(t, "fb-7", ext.ID)
		require.Equal(t, "https://img.example.com/f.png", ext.AvatarURL)
	})

	t.Run("bad code", func(t *testing.T) {
		_, err := r.Exchange(ctx, domain.ProviderGoogle, "bad-code")
		require.Error(t, err)
	})
}
