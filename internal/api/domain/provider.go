package domain

// Provider is where an account authenticates: a local password or one of
// the OAuth identity providers.
type Provider string

const (
	ProviderEmail    Provider = "email"
	ProviderGoogle   Provider = "google"
	ProviderGitHub   Provider = "github"
	ProviderFacebook Provider = "facebook"
)

// FederatedProviders lists the OAuth providers in a stable order.
var FederatedProviders = []Provider{ProviderGoogle, ProviderGitHub, ProviderFacebook}

// ParseProvider maps a route or config value to a Provider.
func ParseProvider(s string) (Provider, bool) {
	switch p := Provider(s); p {
	case ProviderEmail, ProviderGoogle, ProviderGitHub, ProviderFacebook:
		return p, true
	}
	return "", false
}

// IsFederated reports whether p is an OAuth provider.
func (p Provider) IsFederated() bool {
	return p == ProviderGoogle || p == ProviderGitHub || p == ProviderFacebook
}

func (p Provider) String() string { return string(p) }
