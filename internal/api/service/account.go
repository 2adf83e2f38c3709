package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/mail"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/cryptox"
	"github.com/matrixmedia/matrix/pkg/idx"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

const (
	MsgSignedUp        = "Congratulations! Your account has been successfully created!"
	MsgLoggedIn        = "Login successful"
	MsgLoggedOut       = "Logout Successfully"
	MsgAlreadyLoggedIn = "Already logged in"

	msgAccountNotFound   = "Account not found. Check credentials or register"
	msgIncorrectPassword = "Incorrect password. Please try again."
	msgNoPassword        = "This account signs in with %s. Use that provider to log in."
	msgUsernameTaken     = "Username already exists. Please choose a different one."
	msgEmailTaken        = "User already exists with this email."
	msgPhoneTaken        = "User already exists with this phone number."
)

type SignUpInput struct {
	Username string `json:"username" validate:"required,alphanum,ne=me,notphone,max=30"`
	FullName string `json:"fullName" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"omitempty,bdphone"`
	Password string `json:"password" validate:"required,strongpassword"`
}

func (in *SignUpInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

type LoginInput struct {
	// Username is matched against username, email and phone.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User    domain.User
	Session Session
}

type AccountService struct {
	Store    store.Store
	Sessions *SessionIssuer
	Notifier *mail.Notifier
	Now      func() time.Time
}

// SignUp creates a password account. The UNIQUE constraints on username,
// email and phone are the duplicate check; the conflicting column decides
// the message.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	in.normalize()
	if verr := validateInput(in); verr != nil {
		return domain.User{}, verr
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := clock(s.Now)
	avatar := domain.PlaceholderAvatar(in.FullName)
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Provider:     domain.ProviderEmail,
		ProfileImage: avatar,
		CoverImage:   avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if cerr := accountConflict(err); cerr != nil {
			log.Info("sign up rejected", slog.String("username", in.Username), slog.String("reason", cerr.Message))
			return domain.User{}, cerr
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	log.Info("account created", slog.String("user_id", u.ID), slog.String("username", u.Username))

	if s.Notifier != nil {
		s.Notifier.Notify(mail.WelcomeMessage(u.Email, u.FullName, u.Username))
	}

	return u, nil
}

// accountConflict translates a unique violation into the client message
// for that column, or returns nil for any other error.
func accountConflict(err error) *Error {
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) {
		return nil
	}

	switch conflict.Field {
	case "username":
		return conflictError("username", msgUsernameTaken)
	case "email":
		return conflictError("email", msgEmailTaken)
	case "phone":
		return conflictError("phone", msgPhoneTaken)
	}
	return conflictError(conflict.Field, "Account already exists.")
}

// Login authenticates by username, email or phone and issues a session.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	in.Username = strings.TrimSpace(in.Username)
	if verr := validateInput(in); verr != nil {
		return LoginResult{}, verr
	}

	u, err := s.Store.Users().GetUserByLogin(ctx, in.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, notFoundError(msgAccountNotFound)
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if !u.HasPassword() {
		return LoginResult{}, authError(fmt.Sprintf(msgNoPassword, u.Provider))
	}

	if err := cryptox.VerifyPassword(in.Password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed: incorrect password", slog.String("user_id", u.ID))
			return LoginResult{}, authError(msgIncorrectPassword)
		}
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}

	now := clock(s.Now)
	sess, err := s.Sessions.Issue(u, domain.ProviderEmail, now)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session: %w", err)
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, u.ID, now); err != nil {
		return LoginResult{}, fmt.Errorf("stamp last login: %w", err)
	}
	u.LastLoginAt = &now

	log.Info("login succeeded", slog.String("user_id", u.ID))
	return LoginResult{User: u, Session: sess}, nil
}
