package domain

// ExternalProfile is the identity an OAuth provider vouched for.
type ExternalProfile struct {
	Provider  Provider
	ID        string
	Email     string
	Username  string
	FullName  string
	AvatarURL string
}
