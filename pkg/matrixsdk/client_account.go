package matrixsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SignUp creates an account. It does not log in.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, APIPrefix+"/user/auth/signup", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusCreated); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, APIPrefix+"/user/auth/login", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Logout ends the session and clears the cookie.
func (c *Client) Logout(ctx context.Context) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, APIPrefix+"/user/auth/logout", nil)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// RequestPasswordReset mails a one-time code to email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*MessageResponse, error) {
	path := APIPrefix + "/user/auth/forger/password/" + url.PathEscape(email)
	resp, err := c.doJSON(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetPassword sets a new password using a mailed code.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, APIPrefix+"/user/auth/forger/password", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// OAuthRedirect starts the OAuth flow for provider and returns the
// provider's authorization URL without following it.
func (c *Client) OAuthRedirect(ctx context.Context, provider string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/user/auth/"+url.PathEscape(provider), nil, nil)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusFound {
		return "", decodeJSON(resp, &struct{}{}, http.StatusFound)
	}
	defer resp.Body.Close()

	return resp.Header.Get("Location"), nil
}
