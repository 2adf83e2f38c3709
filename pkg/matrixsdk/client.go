package matrixsdk

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// APIPrefix is the path prefix of every versioned endpoint.
const APIPrefix = "/api/v1"

// Client talks to the Matrix API. It holds the session cookie between
// calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client with a fresh cookie jar. Redirects are not
// followed so the OAuth endpoints can be inspected.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SessionCookie returns the named cookie the jar holds for the API, if
// any.
func (c *Client) SessionCookie(name string) (*http.Cookie, bool) {
	if c.HTTPClient.Jar == nil {
		return nil, false
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, false
	}

	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == name {
			return ck, true
		}
	}
	return nil, false
}
