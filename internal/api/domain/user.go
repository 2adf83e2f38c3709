package domain

import (
	"net/url"
	"time"
)

// AvatarBaseURL renders a placeholder avatar from a name.
const AvatarBaseURL = "https://avatar.iran.liara.run/username"

// User is an account record. Optional string fields use "" for unset.
type User struct {
	ID       string
	Username string
	FullName string
	Email    string
	Phone    string

	// PasswordHash is empty for accounts created through OAuth.
	PasswordHash string
	Provider     Provider
	GoogleID     string
	GitHubID     string
	FacebookID   string

	ProfileImage   string
	CoverImage     string
	Bio            string
	CurrentAddress string
	MediaLink      string
	Verified       bool

	OTP         *OTP
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProviderID returns the external id stored for an OAuth provider.
func (u User) ProviderID(p Provider) string {
	switch p {
	case ProviderGoogle:
		return u.GoogleID
	case ProviderGitHub:
		return u.GitHubID
	case ProviderFacebook:
		return u.FacebookID
	}
	return ""
}

// HasPassword reports whether the account can log in with a password.
func (u User) HasPassword() bool { return u.PasswordHash != "" }

// PlaceholderAvatar returns the generated avatar URL for a display name.
func PlaceholderAvatar(name string) string {
	return AvatarBaseURL + "?username=" + url.QueryEscape(name)
}

// OTP is a pending password reset code.
type OTP struct {
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ValidAt reports whether the code may be redeemed at now: from issuance up
// to, but not including, expiry.
func (o OTP) ValidAt(now time.Time) bool {
	return !now.Before(o.IssuedAt) && now.Before(o.ExpiresAt)
}
