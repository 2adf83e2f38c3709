package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/matrixmedia/matrix/internal/api/identity"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/jwtx"
	"github.com/matrixmedia/matrix/pkg/slogx"

	_ "github.com/matrixmedia/matrix/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// Options configures the Router.
type Options struct {
	BuildVersion string
	Cookie       CookieConfig

	// ClientURL is where the OAuth callback sends the browser.
	ClientURL string

	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string

	// MaxUploadBytes bounds each uploaded image.
	MaxUploadBytes int64
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys      *jwtx.KeySet
	verifier  jwtx.Verifier
	opts      Options
	startTime time.Time
	logger    *slog.Logger
	now       func() time.Time

	store                store.Store
	AccountService       *service.AccountService
	PasswordResetService *service.PasswordResetService
	GraphService         *service.GraphService
	ProfileService       *service.ProfileService
	FederatedService     *service.FederatedService
	Identity             *identity.Registry
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	st store.Store,
	logger *slog.Logger,
	opts Options,
) *Router {
	if opts.Cookie.Name == "" {
		opts.Cookie.Name = "token"
	}
	if opts.Cookie.TTL <= 0 {
		opts.Cookie.TTL = jwtx.DefaultSessionTTL
	}
	if opts.ClientURL == "" {
		opts.ClientURL = "/"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = service.DefaultMaxUploadBytes
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		keys:      keys,
		verifier:  verifier,
		opts:      opts,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecureHeaders,
	}
	if len(opts.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, httpx.CORS(opts.CORSOrigins))
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPasswordReset()
	r.registerOAuth()
	r.registerProfile()
	r.registerGraph()
	r.registerPosts()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Matrix Social API
//	@version		0.1.0
//	@description	Backend for the Matrix social application: accounts, sessions, profiles, follows and OAuth sign in.
//	@description
//	@description	Sessions are EdDSA signed JWTs carried in an HTTP-only cookie.
//
//	@contact.name	Matrix Team
//	@contact.url	https://github.com/matrixmedia/matrix
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						token
//	@description				Session token set by the login and OAuth callback endpoints.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with session authentication and a per user rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.CookieAuthn(r.opts.Cookie.Name, r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AccountHandler{
		AccountService: r.AccountService,
		Verifier:       r.verifier,
		Cookie:         r.opts.Cookie,
		Now:            r.now,
	}

	// Credential endpoints - strict rate limit by IP
	r.Mux.Handle("POST "+APIPrefix+"/user/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST "+APIPrefix+"/user/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST "+APIPrefix+"/user/auth/logout",
		r.secured(http.HandlerFunc(h.HandleLogout), httpx.ModerateLimit),
	)
}

func (r *Router) registerPasswordReset() {
	h := &PasswordResetHandler{PasswordResetService: r.PasswordResetService}

	// Both steps are unauthenticated - strict rate limit by IP
	r.Mux.Handle("POST "+APIPrefix+"/user/auth/forger/password/{email}",
		httpx.Chain(http.HandlerFunc(h.HandleRequestOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("PUT "+APIPrefix+"/user/auth/forger/password",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerOAuth() {
	h := &OAuthHandler{
		Identity:         r.Identity,
		FederatedService: r.FederatedService,
		Cookie:           r.opts.Cookie,
		ClientURL:        r.opts.ClientURL,
		Now:              r.now,
	}

	// Redirects are cheap - lenient limit; callbacks exchange codes - strict,
	// bucketed per provider
	r.Mux.Handle("GET "+APIPrefix+"/user/auth/{provider}",
		httpx.Chain(http.HandlerFunc(h.HandleRedirect),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET "+APIPrefix+"/user/auth/{provider}/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIPAndPath(httpx.StrictLimit, "provider"),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{
		ProfileService: r.ProfileService,
		MaxUploadBytes: r.opts.MaxUploadBytes,
	}

	r.Mux.Handle("GET "+APIPrefix+"/user/profile/{username}",
		r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit),
	)
	r.Mux.Handle("PUT "+APIPrefix+"/user/profile/pic/update",
		r.secured(http.HandlerFunc(h.HandlePictures), httpx.ModerateLimit),
	)
	r.Mux.Handle("PUT "+APIPrefix+"/user/profile/info/update",
		r.secured(http.HandlerFunc(h.HandleInfo), httpx.ModerateLimit),
	)
}

func (r *Router) registerGraph() {
	h := &GraphHandler{GraphService: r.GraphService}

	r.Mux.Handle("PUT "+APIPrefix+"/user/profile/follow/{userId}",
		r.secured(http.HandlerFunc(h.HandleFollow), httpx.ModerateLimit),
	)
	r.Mux.Handle("GET "+APIPrefix+"/user/followers/{username}",
		r.secured(http.HandlerFunc(h.HandleFollowers), httpx.LenientLimit),
	)
	r.Mux.Handle("GET "+APIPrefix+"/user/following/{username}",
		r.secured(http.HandlerFunc(h.HandleFollowing), httpx.LenientLimit),
	)
	r.Mux.Handle("POST "+APIPrefix+"/user/search",
		r.secured(http.HandlerFunc(h.HandleSearch), httpx.LenientLimit),
	)
}

func (r *Router) registerPosts() {
	h := &GraphHandler{GraphService: r.GraphService}

	r.Mux.Handle("GET "+APIPrefix+"/user/save/post",
		r.secured(http.HandlerFunc(h.HandleSavedPosts), httpx.LenientLimit),
	)
	r.Mux.Handle("PUT "+APIPrefix+"/user/post/like/{postId}",
		r.secured(http.HandlerFunc(h.HandleLike), httpx.ModerateLimit),
	)
	r.Mux.Handle("PUT "+APIPrefix+"/user/post/save/{postId}",
		r.secured(http.HandlerFunc(h.HandleSave), httpx.ModerateLimit),
	)
}

func (r *Router) registerSystem() {
	h := &healthHandlers{
		started: r.startTime,
		version: r.opts.BuildVersion,
		store:   r.store,
		keys:    r.keys,
	}

	// Monitoring polls these often, hence the public limit
	r.Mux.Handle("GET /livez",
		httpx.Chain(http.HandlerFunc(h.HandleLivez), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(http.HandlerFunc(h.HandleReadyz), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}
