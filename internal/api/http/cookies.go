package http

import (
	"net/http"
	"time"

	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/httpx"
)

const (
	stateCookieName = "oauth_state"
	stateCookiePath = "/api/v1/user/auth"
	stateCookieTTL  = 10 * time.Minute
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name string
	TTL  time.Duration

	// Secure marks cookies Secure with SameSite=None so a browser client
	// on another origin can send them. Plain HTTP deployments set it
	// false and get SameSite=Lax instead.
	Secure bool
}

func (c CookieConfig) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// setSession writes the session cookie for sess.
func (c CookieConfig) setSession(w http.ResponseWriter, sess service.Session, now time.Time) {
	maxAge := int(sess.ExpiresAt.Sub(now).Seconds())
	if maxAge <= 0 {
		maxAge = int(c.TTL.Seconds())
	}

	httpx.NoCache(w)
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

// clearSession overwrites the session cookie with an expired one.
func (c CookieConfig) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

// setState stores the OAuth state. Lax is required: the provider's
// redirect back is a cross-site top level navigation.
func (c CookieConfig) setState(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     stateCookiePath,
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) clearState(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     stateCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
