package api_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/stretchr/testify/require"
)

// TestSignUpLoginLogout walks one account through its session lifecycle.
func TestSignUpLoginLogout(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	client := matrixsdk.NewClient(baseURL)

	msg, err := client.SignUp(t.Context(), matrixsdk.SignUpRequest{
		Username: "ada",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "Congratulations! Your account has been successfully created!", msg.Message)

	// Email logins work as well as usernames
	msg, err = client.Login(t.Context(), matrixsdk.LoginRequest{Username: "ada@example.com", Password: testPassword})
	require.NoError(t, err)
	require.Equal(t, "Login successful", msg.Message)

	cookie, ok := client.SessionCookie("token")
	require.True(t, ok)
	require.NotEmpty(t, cookie.Value)

	// A second login on the same session is refused
	_, err = client.Login(t.Context(), matrixsdk.LoginRequest{Username: "ada", Password: testPassword})
	requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeAuth)

	me, err := client.GetProfile(t.Context(), "me")
	require.NoError(t, err)
	require.Equal(t, "ada", me.Username)
	require.True(t, me.MyProfile)
	require.NotNil(t, me.Email)
	require.Equal(t, "ada@example.com", *me.Email)

	msg, err = client.Logout(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Logout Successfully", msg.Message)

	_, err = client.GetProfile(t.Context(), "me")
	requireAPIError(t, err, http.StatusUnauthorized, matrixsdk.ErrorCodeUnauthenticated)
}

func TestSignUpValidationAndConflicts(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	client := matrixsdk.NewClient(baseURL)

	_, err := client.SignUp(t.Context(), matrixsdk.SignUpRequest{
		Username: "01712345678",
		Email:    "not-an-email",
		Password: "weak",
	})
	apiErr := requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Details, "username")
	require.Contains(t, apiErr.Details, "fullName")
	require.Contains(t, apiErr.Details, "email")
	require.Contains(t, apiErr.Details, "password")

	req := matrixsdk.SignUpRequest{
		Username: "grace",
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: testPassword,
	}
	_, err = client.SignUp(t.Context(), req)
	require.NoError(t, err)

	dup := req
	dup.Email = "other@example.com"
	_, err = client.SignUp(t.Context(), dup)
	apiErr = requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeConflict)
	require.Contains(t, strings.ToLower(apiErr.Message), "username")

	dup = req
	dup.Username = "grace2"
	_, err = client.SignUp(t.Context(), dup)
	apiErr = requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeConflict)
	require.Contains(t, strings.ToLower(apiErr.Message), "email")
}

func TestLoginFailures(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	signUpAndLogin(t, baseURL, "linus")

	client := matrixsdk.NewClient(baseURL)

	_, err := client.Login(t.Context(), matrixsdk.LoginRequest{Username: "nobody", Password: testPassword})
	requireAPIError(t, err, http.StatusNotFound, matrixsdk.ErrorCodeNotFound)

	_, err = client.Login(t.Context(), matrixsdk.LoginRequest{Username: "linus", Password: "Wr0ng!Pass"})
	requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeAuth)

	_, ok := client.SessionCookie("token")
	require.False(t, ok)
}

// TestPasswordResetRequest covers the parts of the reset flow visible
// without a mailbox: delivery, cooldown and code rejection.
func TestPasswordResetRequest(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	signUpAndLogin(t, baseURL, "barbara")

	client := matrixsdk.NewClient(baseURL)

	_, err := client.RequestPasswordReset(t.Context(), "nobody@example.com")
	requireAPIError(t, err, http.StatusNotFound, matrixsdk.ErrorCodeNotFound)

	msg, err := client.RequestPasswordReset(t.Context(), "barbara@example.com")
	require.NoError(t, err)
	require.Equal(t, "Mail sent successfully Please check your mail box", msg.Message)

	_, err = client.RequestPasswordReset(t.Context(), "barbara@example.com")
	apiErr := requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeRateLimited)
	require.Positive(t, apiErr.RetryAfter)

	_, err = client.ResetPassword(t.Context(), matrixsdk.ResetPasswordRequest{
		Email:    "barbara@example.com",
		Code:     "12345",
		Password: "N3w!Password",
	})
	requireAPIError(t, err, http.StatusBadRequest, matrixsdk.ErrorCodeValidation)
}

func TestOAuthProvidersDisabledByDefault(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	client := matrixsdk.NewClient(baseURL)

	for _, p := range []string{"google", "github", "facebook"} {
		_, err := client.OAuthRedirect(t.Context(), p)
		requireAPIError(t, err, http.StatusNotFound, matrixsdk.ErrorCodeNotFound)
	}
}

func TestOAuthRedirectWhenConfigured(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, map[string]string{
		"GITHUB_CLIENT_ID":     "e2e-client",
		"GITHUB_CLIENT_SECRET": "e2e-secret",
		"MATRIX_BACKEND_URL":   "https://api.example.com",
	})
	defer cleanup()

	client := matrixsdk.NewClient(baseURL)

	location, err := client.OAuthRedirect(t.Context(), "github")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(location, "https://github.com/login/oauth/authorize"), location)
	require.Contains(t, location, "client_id=e2e-client")
	require.Contains(t, location, "state=")
}

func TestPictureUploadWithoutStorage(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	client := signUpAndLogin(t, baseURL, "hedy")

	// Minimal PNG signature is enough for content sniffing
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_, err := client.UpdatePictures(t.Context(), &matrixsdk.Picture{Filename: "me.png", Body: bytes.NewReader(png)}, nil)
	requireAPIError(t, err, http.StatusServiceUnavailable, matrixsdk.ErrorCodeServerError)
}
