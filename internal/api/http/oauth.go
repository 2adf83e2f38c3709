package http

import (
	"net/http"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/identity"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/cryptox"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// OAuthHandler runs the Google, GitHub and Facebook sign in redirects.
type OAuthHandler struct {
	Identity         *identity.Registry
	FederatedService *service.FederatedService
	Cookie           CookieConfig
	ClientURL        string
	Now              func() time.Time
}

// provider resolves the {provider} wildcard to a configured OAuth provider,
// writing a 404 when there is none.
func (h *OAuthHandler) provider(w http.ResponseWriter, r *http.Request) (domain.Provider, bool) {
	p, ok := domain.ParseProvider(r.PathValue("provider"))
	if !ok || !p.IsFederated() || h.Identity == nil || !h.Identity.Enabled(p) {
		httpx.WriteError(w, http.StatusNotFound, matrixsdk.ErrorResponse{
			Error:   matrixsdk.ErrorCodeNotFound,
			Message: "Sign in provider not available",
		})
		return "", false
	}
	return p, true
}

func (h *OAuthHandler) fail(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, matrixsdk.ErrorResponse{
		Error:   matrixsdk.ErrorCodeAuth,
		Message: service.MsgAuthFailed,
	})
}

// HandleRedirect godoc
//
//	@Summary		Start OAuth Sign In
//	@Description	Redirects the browser to the provider's consent page.
//	@Tags			OAuth
//	@Param			provider	path	string	true	"google, github or facebook"
//	@Success		302			"Location: provider consent page"
//	@Failure		404			{object}	matrixsdk.ErrorResponse	"provider not configured"
//	@Router			/api/v1/user/auth/{provider} [get].
func (h *OAuthHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	p, ok := h.provider(w, r)
	if !ok {
		return
	}

	state, err := cryptox.GenerateToken(32)
	if err != nil {
		log.Error("failed to generate oauth state", "err", err)
		writeServiceError(w, r, err)
		return
	}

	target, err := h.Identity.AuthCodeURL(p, state)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookie.setState(w, state)
	httpx.NoCache(w)
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleCallback godoc
//
//	@Summary		OAuth Callback
//	@Description	Completes the provider sign in: checks state, exchanges the code, links or creates the account,
//	@Description	sets the session cookie and redirects to the client application.
//	@Tags			OAuth
//	@Param			provider	path	string	true	"google, github or facebook"
//	@Param			code		query	string	true	"Authorization code"
//	@Param			state		query	string	true	"State issued by the redirect"
//	@Success		302			"Location: client application, Set-Cookie: token"
//	@Failure		400			{object}	matrixsdk.ErrorResponse	"auth_error"
//	@Failure		404			{object}	matrixsdk.ErrorResponse	"provider not configured"
//	@Router			/api/v1/user/auth/{provider}/callback [get].
func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx).With("provider", r.PathValue("provider"))

	p, ok := h.provider(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		log.Info("oauth consent denied", "error", e)
		h.fail(w)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	h.Cookie.clearState(w)
	if err != nil || stateCookie.Value == "" || !cryptox.EqualStrings(stateCookie.Value, q.Get("state")) {
		log.Warn("oauth state mismatch")
		h.fail(w)
		return
	}

	code := q.Get("code")
	if code == "" {
		h.fail(w)
		return
	}

	ext, err := h.Identity.Exchange(ctx, p, code)
	if err != nil {
		log.Warn("oauth exchange failed", "err", err)
		h.fail(w)
		return
	}

	res, err := h.FederatedService.Resolve(ctx, ext)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookie.setSession(w, res.Session, h.Now())
	http.Redirect(w, r, h.ClientURL, http.StatusFound)
}
