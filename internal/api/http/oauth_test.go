package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/stretchr/testify/require"
)

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
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
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub":            "g-100",
			"email":          "nora@example.com",
			"email_verified": true,
			"name":           "Nora Quinn",
			"picture":        "https://img.example.com/nora.png",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOAuthRedirectAndCallback(t *testing.T) {
	provider := fakeGoogle(t)
	ts := newTestServer(t, provider.URL, provider.Client())

	rec := ts.do(t, http.MethodGet, APIPrefix+"/user/auth/google", nil)
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/authorize", loc.Path)
	require.Equal(t, "gid", loc.Query().Get("client_id"))
	require.Equal(t, "http://api.test/api/v1/user/auth/google/callback", loc.Query().Get("redirect_uri"))

	state := cookieNamed(rec, stateCookieName)
	require.NotNil(t, state)
	require.Equal(t, loc.Query().Get("state"), state.Value)
	require.True(t, state.HttpOnly)

	callback := APIPrefix + "/user/auth/google/callback?code=good-code&state=" + url.QueryEscape(state.Value)
	rec = ts.do(t, http.MethodGet, callback, nil, state)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	require.Equal(t, testClientURL, rec.Header().Get("Location"))

	session := cookieNamed(rec, testCookie)
	require.NotNil(t, session)
	require.NotEmpty(t, session.Value)

	rec = ts.do(t, http.MethodGet, APIPrefix+"/user/profile/me", nil, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[matrixsdk.ProfileResponse](t, rec).Profile
	require.Equal(t, "Nora Quinn", p.FullName)
	require.NotNil(t, p.GoogleID)
	require.Equal(t, "g-100", *p.GoogleID)
	require.NotNil(t, p.Provider)
	require.Equal(t, "google", *p.Provider)
}

func TestOAuthCallbackRejectsBadState(t *testing.T) {
	provider := fakeGoogle(t)
	ts := newTestServer(t, provider.URL, provider.Client())

	rec := ts.do(t, http.MethodGet, APIPrefix+"/user/auth/google/callback?code=good-code&state=forged", nil,
		&http.Cookie{Name: stateCookieName, Value: "issued"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Authentication failed", decode[matrixsdk.ErrorResponse](t, rec).Message)
	require.Nil(t, cookieNamed(rec, testCookie))

	rec = ts.do(t, http.MethodGet, APIPrefix+"/user/auth/google/callback?code=bad-code&state=s1", nil,
		&http.Cookie{Name: stateCookieName, Value: "s1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, APIPrefix+"/user/auth/google/callback?error=access_denied&state=s1", nil,
		&http.Cookie{Name: stateCookieName, Value: "s1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOAuthUnknownOrDisabledProvider(t *testing.T) {
	ts := newTestServer(t, "", nil)

	for _, p := range []string{"google", "email", "myspace"} {
		rec := ts.do(t, http.MethodGet, APIPrefix+"/user/auth/"+p, nil)
		require.Equal(t, http.StatusNotFound, rec.Code, p)
	}
}
