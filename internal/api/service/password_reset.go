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
	"github.com/matrixmedia/matrix/pkg/slogx"
)

const (
	DefaultOTPTTL      = 5 * time.Minute
	DefaultOTPCooldown = 2 * time.Minute

	MsgOTPSent       = "Mail sent successfully Please check your mail box"
	MsgPasswordReset = "Password Reset successfully"

	msgOTPEmailUnknown = "We couldn't find an account associated with this email address. Please check and try again!"
	msgResetNoAccount  = "No account found with this email address."
	msgOTPCooldown     = "OTP has already been sent to your email. Please try again in %d seconds."
	msgOTPWrong        = "This OTP Wrong. Please Provide Correct OTP"
	msgOTPExpired      = "The OTP has expired. Please request a new one."
	msgPasswordSame    = "New password must be different from the current one."
)

type RequestOTPInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,numeric,len=6"`
	Password string `json:"password" validate:"required,strongpassword"`
}

// PasswordResetService runs the emailed one-time code password reset.
type PasswordResetService struct {
	Store store.Store

	// Mailer delivers the code itself, synchronously. Notifier sends the
	// confirmation in the background.
	Mailer   mail.Mailer
	Notifier *mail.Notifier

	TTL      time.Duration
	Cooldown time.Duration
	Now      func() time.Time

	// GenerateCode defaults to cryptox.GenerateNumericCode.
	GenerateCode func() (string, error)
}

func (s *PasswordResetService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultOTPTTL
	}
	return s.TTL
}

func (s *PasswordResetService) cooldown() time.Duration {
	if s.Cooldown <= 0 {
		return DefaultOTPCooldown
	}
	return s.Cooldown
}

// RequestOTP issues a new code for the account registered to email and
// mails it. A request inside the cooldown after the previous code is
// refused with the remaining wait.
func (s *PasswordResetService) RequestOTP(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	in := RequestOTPInput{Email: strings.ToLower(strings.TrimSpace(email))}
	if verr := validateInput(in); verr != nil {
		return verr
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError(msgOTPEmailUnknown)
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	gen := s.GenerateCode
	if gen == nil {
		gen = cryptox.GenerateNumericCode
	}
	code, err := gen()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	now := clock(s.Now)
	otp := domain.OTP{Code: code, IssuedAt: now, ExpiresAt: now.Add(s.ttl())}

	issued, err := s.Store.Users().IssueOTP(ctx, u.ID, otp, now.Add(-s.cooldown()))
	if err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if !issued {
		return s.cooldownError(ctx, u, now)
	}

	if err := s.Mailer.Send(ctx, mail.OTPMessage(u.Email, code, s.ttl())); err != nil {
		log.Error("otp delivery failed", slog.String("user_id", u.ID), slog.Any("error", err))
		if cerr := s.Store.Users().ClearOTP(ctx, u.ID); cerr != nil {
			log.Error("failed to clear undelivered otp", slog.String("user_id", u.ID), slog.Any("error", cerr))
		}
		return fmt.Errorf("send otp: %w", err)
	}

	log.Info("password reset code issued", slog.String("user_id", u.ID))
	return nil
}

// cooldownError re-reads the pending code so the reported wait matches the
// code that actually blocked the request.
func (s *PasswordResetService) cooldownError(ctx context.Context, u domain.User, now time.Time) error {
	if fresh, err := s.Store.Users().GetUserByID(ctx, u.ID); err == nil {
		u = fresh
	}

	wait := s.cooldown()
	if u.OTP != nil {
		wait = u.OTP.IssuedAt.Add(s.cooldown()).Sub(now)
	}

	rerr := rateLimitedError("", wait)
	rerr.Message = fmt.Sprintf(msgOTPCooldown, rerr.RetryAfter)
	return rerr
}

// ResetPassword redeems a code and replaces the password. The code is
// single use.
func (s *PasswordResetService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	log := slogx.FromContext(ctx)

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Code = strings.TrimSpace(in.Code)
	if verr := validateInput(in); verr != nil {
		return verr
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError(msgResetNoAccount)
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if u.OTP == nil || !cryptox.EqualStrings(in.Code, u.OTP.Code) {
		log.Info("password reset rejected: wrong code", slog.String("user_id", u.ID))
		return authError(msgOTPWrong)
	}

	now := clock(s.Now)
	if !u.OTP.ValidAt(now) {
		return authError(msgOTPExpired)
	}

	if u.HasPassword() {
		err := cryptox.VerifyPassword(in.Password, u.PasswordHash)
		switch {
		case err == nil:
			return validationError(msgPasswordSame, map[string]string{"password": msgPasswordSame})
		case !errors.Is(err, cryptox.ErrPasswordMismatch):
			return fmt.Errorf("verify password: %w", err)
		}
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, now); err != nil {
			return err
		}
		return tx.Users().ClearOTP(ctx, u.ID)
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	log.Info("password reset", slog.String("user_id", u.ID))

	if s.Notifier != nil {
		s.Notifier.Notify(mail.PasswordChangedMessage(u.Email, u.FullName, u.Username))
	}
	return nil
}
