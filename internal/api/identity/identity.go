// Package identity talks to the OAuth identity providers: it builds their
// consent URLs, exchanges callback codes and reads back who the user is.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/matrixmedia/matrix/internal/api/domain"
)

var (
	ErrProviderDisabled = errors.New("identity: provider not configured")
	ErrNoIdentity       = errors.New("identity: provider returned no user id")
)

// ProviderConfig holds the credentials for one provider. AuthURL, TokenURL
// and APIURL override the public endpoints and are only set in tests.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scopes       []string

	AuthURL  string
	TokenURL string
	APIURL   string
}

func (c ProviderConfig) enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Providers is the complete OAuth configuration. Callback URLs are derived
// as <CallbackBase>/<provider>/callback.
type Providers struct {
	CallbackBase string

	Google   ProviderConfig
	GitHub   ProviderConfig
	Facebook ProviderConfig
}

type fetchFunc func(ctx context.Context, client *http.Client, apiURL string) (domain.ExternalProfile, error)

type provider struct {
	oauth  *oauth2.Config
	apiURL string
	fetch  fetchFunc
}

// Registry holds one oauth2.Config per enabled provider.
type Registry struct {
	providers map[domain.Provider]*provider
	client    *http.Client
}

// NewRegistry builds the registry. Providers without a client id and
// secret are left out and report ErrProviderDisabled. A nil client means
// http.DefaultClient.
func NewRegistry(cfg Providers, client *http.Client) *Registry {
	r := &Registry{
		providers: make(map[domain.Provider]*provider),
		client:    client,
	}
	base := strings.TrimRight(cfg.CallbackBase, "/")

	r.add(domain.ProviderGoogle, cfg.Google, base, endpoints.Google,
		"https://openidconnect.googleapis.com", []string{"openid", "email", "profile"}, fetchGoogle)
	r.add(domain.ProviderGitHub, cfg.GitHub, base, endpoints.GitHub,
		"https://api.github.com", []string{"read:user", "user:email"}, fetchGitHub)
	r.add(domain.ProviderFacebook, cfg.Facebook, base, endpoints.Facebook,
		"https://graph.facebook.com", []string{"email", "public_profile"}, fetchFacebook)

	return r
}

func (r *Registry) add(
	p domain.Provider,
	cfg ProviderConfig,
	callbackBase string,
	endpoint oauth2.Endpoint,
	apiURL string,
	scopes []string,
	fetch fetchFunc,
) {
	if !cfg.enabled() {
		return
	}

	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	if cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	if len(cfg.Scopes) > 0 {
		scopes = cfg.Scopes
	}

	r.providers[p] = &provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  fmt.Sprintf("%s/%s/callback", callbackBase, p),
			Scopes:       scopes,
		},
		apiURL: strings.TrimRight(apiURL, "/"),
		fetch:  fetch,
	}
}

// Enabled reports whether p has credentials configured.
func (r *Registry) Enabled(p domain.Provider) bool {
	_, ok := r.providers[p]
	return ok
}

// AuthCodeURL returns the provider consent page URL carrying state.
func (r *Registry) AuthCodeURL(p domain.Provider, state string) (string, error) {
	prov, ok := r.providers[p]
	if !ok {
		return "", ErrProviderDisabled
	}
	return prov.oauth.AuthCodeURL(state), nil
}

// Exchange trades a callback code for a token and fetches the profile the
// provider holds for it.
func (r *Registry) Exchange(ctx context.Context, p domain.Provider, code string) (domain.ExternalProfile, error) {
	prov, ok := r.providers[p]
	if !ok {
		return domain.ExternalProfile{}, ErrProviderDisabled
	}

	if r.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.client)
	}

	tok, err := prov.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("identity: %s code exchange: %w", p, err)
	}

	ext, err := prov.fetch(ctx, prov.oauth.Client(ctx, tok), prov.apiURL)
	if err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("identity: %s profile: %w", p, err)
	}
	if ext.ID == "" {
		return domain.ExternalProfile{}, ErrNoIdentity
	}

	ext.Provider = p
	ext.Email = strings.ToLower(strings.TrimSpace(ext.Email))
	return ext, nil
}
