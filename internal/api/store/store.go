package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ConflictError reports a unique constraint violation on one column. The
// database constraint is the only uniqueness check, so this is how callers
// learn which of username, email or phone is taken.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: %s already exists", e.Field)
}

func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

// Store is the root data access interface. Sub-repositories are reached
// through it so a Tx exposes exactly the same surface.
type Store interface {
	Users() Users
	Follows() Follows
	PostMarks() PostMarks

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ProfileUpdate holds the profile fields to change. Nil means unchanged.
type ProfileUpdate struct {
	Username       *string
	FullName       *string
	Bio            *string
	CurrentAddress *string
	MediaLink      *string
	PasswordHash   *string
}

type Users interface {
	// CreateUser inserts u. A duplicate username, email, phone or provider
	// id yields a *ConflictError.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByLogin matches the identifier against username, email and
	// phone.
	GetUserByLogin(ctx context.Context, identifier string) (domain.User, error)

	GetUserByProviderID(ctx context.Context, p domain.Provider, providerID string) (domain.User, error)

	// SearchUsers matches username or full name, excluding excludeID.
	SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]domain.User, error)

	CountUsers(ctx context.Context) (int, error)

	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate, at time.Time) error

	// UpdateImages sets whichever of profile and cover is non-nil.
	UpdateImages(ctx context.Context, id string, profile, cover *string, at time.Time) error

	// LinkProvider stamps the provider and its external id on the account.
	LinkProvider(ctx context.Context, id string, p domain.Provider, providerID string, at time.Time) error

	// IssueOTP stores a code only when no code was issued after
	// cooldownCutoff, in a single statement. It reports false when the
	// previous code is still cooling down.
	IssueOTP(ctx context.Context, id string, otp domain.OTP, cooldownCutoff time.Time) (bool, error)

	// ClearOTP removes any pending code.
	ClearOTP(ctx context.Context, id string) error

	// ClearExpiredOTPs removes codes that expired before now.
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

type Follows interface {
	// Follow records "follower follows followee".
	Follow(ctx context.Context, followerID, followeeID string, at time.Time) error

	// Unfollow removes the edge and reports whether it existed.
	Unfollow(ctx context.Context, followerID, followeeID string) (bool, error)

	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)

	// ListFollowers returns the accounts following userID in the order
	// they followed.
	ListFollowers(ctx context.Context, userID string) ([]domain.User, error)

	// ListFollowing returns the accounts userID follows in the order they
	// were followed.
	ListFollowing(ctx context.Context, userID string) ([]domain.User, error)

	// FollowedAmong returns which of ids followerID follows.
	FollowedAmong(ctx context.Context, followerID string, ids []string) (map[string]bool, error)

	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

type PostMarks interface {
	// Add puts postID into the user's set of the given kind.
	Add(ctx context.Context, kind domain.PostMarkKind, userID, postID string, at time.Time) error

	// Remove takes postID out of the set and reports whether it was there.
	Remove(ctx context.Context, kind domain.PostMarkKind, userID, postID string) (bool, error)

	List(ctx context.Context, kind domain.PostMarkKind, userID string) ([]domain.PostMark, error)
	Count(ctx context.Context, kind domain.PostMarkKind, userID string) (int, error)
}
