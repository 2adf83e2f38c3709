package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/cryptox"
	"github.com/matrixmedia/matrix/pkg/idx"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

const (
	MsgAuthFailed = "Authentication failed"

	usernameBaseMax   = 24
	usernameAttempts  = 8
	fallbackUsername  = "user"
	minUsernameLength = 3
)

var ErrUsernameExhausted = errors.New("could not allocate a unique username")

// FederatedResult is the account an OAuth login resolved to.
type FederatedResult struct {
	User    domain.User
	Session Session
	Created bool
}

// FederatedService turns a provider-vouched identity into a local account
// and a session.
type FederatedService struct {
	Store    store.Store
	Sessions *SessionIssuer
	Now      func() time.Time
}

// Resolve finds the account by provider id, then by email, and creates one
// when neither matches. The provider id is always stamped on the account.
// All writes share one transaction so a failure leaves nothing behind.
func (s *FederatedService) Resolve(ctx context.Context, ext domain.ExternalProfile) (FederatedResult, error) {
	log := slogx.FromContext(ctx)

	if !ext.Provider.IsFederated() || ext.ID == "" {
		return FederatedResult{}, authError(MsgAuthFailed)
	}

	now := clock(s.Now)
	var res FederatedResult

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, found, err := s.lookup(ctx, tx, ext)
		if err != nil {
			return err
		}

		if !found {
			u, err = s.create(ctx, tx, ext, now)
			if err != nil {
				return err
			}
			res.Created = true
		}

		if err := tx.Users().LinkProvider(ctx, u.ID, ext.Provider, ext.ID, now); err != nil {
			return fmt.Errorf("link provider: %w", err)
		}
		if err := tx.Users().UpdateLastLogin(ctx, u.ID, now); err != nil {
			return fmt.Errorf("stamp last login: %w", err)
		}

		res.User, err = tx.Users().GetUserByID(ctx, u.ID)
		return err
	})
	if err != nil {
		log.Warn("federated login failed", slog.String("provider", ext.Provider.String()), slog.Any("error", err))
		return FederatedResult{}, authError(MsgAuthFailed)
	}

	res.Session, err = s.Sessions.Issue(res.User, ext.Provider, now)
	if err != nil {
		return FederatedResult{}, fmt.Errorf("issue session: %w", err)
	}

	log.Info("federated login",
		slog.String("user_id", res.User.ID),
		slog.String("provider", ext.Provider.String()),
		slog.Bool("created", res.Created),
	)
	return res, nil
}

func (s *FederatedService) lookup(ctx context.Context, tx store.Tx, ext domain.ExternalProfile) (domain.User, bool, error) {
	u, err := tx.Users().GetUserByProviderID(ctx, ext.Provider, ext.ID)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, err
	}

	if ext.Email == "" {
		return domain.User{}, false, nil
	}

	u, err = tx.Users().GetUserByEmail(ctx, ext.Email)
	switch {
	case err == nil:
		return u, true, nil
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, false, nil
	default:
		return domain.User{}, false, err
	}
}

func (s *FederatedService) create(ctx context.Context, tx store.Tx, ext domain.ExternalProfile, now time.Time) (domain.User, error) {
	fullName := strings.TrimSpace(ext.FullName)
	if fullName == "" {
		fullName = ext.Username
	}
	if fullName == "" {
		fullName, _, _ = strings.Cut(ext.Email, "@")
	}

	avatar := ext.AvatarURL
	if avatar == "" {
		avatar = domain.PlaceholderAvatar(fullName)
	}

	base := usernameBase(ext)
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			suffix, err := cryptox.GenerateNumericCode()
			if err != nil {
				return domain.User{}, err
			}
			candidate = base + suffix
		}

		if phoneRe.MatchString(candidate) {
			continue
		}
		if _, err := tx.Users().GetUserByUsername(ctx, candidate); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}

		u := domain.User{
			ID:           idx.NewAt(now).String(),
			Username:     candidate,
			FullName:     fullName,
			Email:        ext.Email,
			Provider:     ext.Provider,
			ProfileImage: avatar,
			CoverImage:   domain.PlaceholderAvatar(fullName),
			Verified:     false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err := tx.Users().CreateUser(ctx, u)
		var conflict *store.ConflictError
		switch {
		case err == nil:
			return u, nil
		case errors.As(err, &conflict) && conflict.Field == "username":
			continue
		default:
			return domain.User{}, fmt.Errorf("create user: %w", err)
		}
	}
	return domain.User{}, ErrUsernameExhausted
}

// usernameBase derives a valid username stem from what the provider told
// us: its handle, the email local part or the display name.
func usernameBase(ext domain.ExternalProfile) string {
	local, _, _ := strings.Cut(ext.Email, "@")
	for _, raw := range []string{ext.Username, local, ext.FullName} {
		if b := sanitizeUsername(raw); len(b) >= minUsernameLength && !phoneRe.MatchString(b) {
			return b
		}
	}
	return fallbackUsername + strings.ToLower(ext.Provider.String())
}

func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
		if b.Len() == usernameBaseMax {
			break
		}
	}
	return b.String()
}
