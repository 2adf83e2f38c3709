package httpx

import (
	"context"
	"net/http"

	"github.com/matrixmedia/matrix/pkg/jwtx"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// SessionFromRequest verifies the session cookie, if present.
func SessionFromRequest(r *http.Request, cookieName string, v jwtx.Verifier) (jwtx.Claims, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return jwtx.Claims{}, false
	}

	claims, err := v.Verify(c.Value)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("session cookie rejected", "err", err)
		return jwtx.Claims{}, false
	}
	return claims, true
}

// CookieAuthn rejects requests without a valid session cookie with 401 and
// puts the caller's id into the request context for downstream handlers.
func CookieAuthn(cookieName string, v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := SessionFromRequest(r, cookieName, v)
			if !ok {
				WriteError(w, http.StatusUnauthorized, ErrorBody{
					Error:   "unauthenticated",
					Message: "Unauthorized: please log in",
				})
				return
			}

			ctx := contextWithSession(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithSession(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return slogx.WithUserID(ctx, c.Subject)
}
