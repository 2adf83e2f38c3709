package service

import (
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/pkg/jwtx"
)

// Session is a freshly minted session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionIssuer mints the signed session tokens carried in the session
// cookie.
type SessionIssuer struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
}

func (s *SessionIssuer) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Issue signs a session for u, obtained through via, valid from now for
// the configured TTL.
func (s *SessionIssuer) Issue(u domain.User, via domain.Provider, now time.Time) (Session, error) {
	claims := jwtx.NewSessionClaims(u.ID, via.String(), s.Issuer, s.ttl(), now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
