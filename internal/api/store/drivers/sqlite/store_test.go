package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, s *Store, username, email, phone string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		FullName:     "User " + username,
		Email:        email,
		Phone:        phone,
		PasswordHash: "argon2id$dummy",
		Provider:     domain.ProviderEmail,
		ProfileImage: domain.PlaceholderAvatar("User " + username),
		CreatedAt:    epoch,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, "alice", "alice@example.com", "01712345678")

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, domain.ProviderEmail, got.Provider)
	require.Equal(t, epoch, got.CreatedAt)
	require.Nil(t, got.OTP)
	require.Nil(t, got.LastLoginAt)

	for _, login := range []string{"alice", "alice@example.com", "ALICE@example.com", "01712345678"} {
		got, err := s.Users().GetUserByLogin(ctx, login)
		require.NoError(t, err, login)
		require.Equal(t, u.ID, got.ID)
	}

	_, err = s.Users().GetUserByLogin(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByUsername(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetUserByLoginPrefersPhoneAndEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Seeded directly so the store ranking is exercised without the
	// username rules applied at sign up.
	squatter := seedUser(t, s, "01712345678", "squatter@example.com", "")
	alice := seedUser(t, s, "alice", "alice@example.com", "01712345678")

	got, err := s.Users().GetUserByLogin(ctx, "01712345678")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	mailer := seedUser(t, s, "bob@example.com", "other@example.com", "")
	bob := seedUser(t, s, "bob", "bob@example.com", "")

	got, err = s.Users().GetUserByLogin(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, bob.ID, got.ID)

	got, err = s.Users().GetUserByLogin(ctx, "squatter@example.com")
	require.NoError(t, err)
	require.Equal(t, squatter.ID, got.ID)
	require.NotEqual(t, mailer.ID, got.ID)
}

func TestUsersUniqueConflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "alice", "alice@example.com", "01712345678")

	cases := []struct {
		name  string
		user  domain.User
		field string
	}{
		{"username", domain.User{Username: "alice", Email: "other@example.com"}, "username"},
		{"email", domain.User{Username: "bob", Email: "Alice@Example.com"}, "email"},
		{"phone", domain.User{Username: "carol", Phone: "01712345678"}, "phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.user.ID = idx.New().String()
			tc.user.FullName = "x"
			tc.user.CreatedAt = epoch

			err := s.Users().CreateUser(ctx, tc.user)
			require.ErrorIs(t, err, store.ErrAlreadyExists)

			var conflict *store.ConflictError
			require.True(t, errors.As(err, &conflict))
			require.Equal(t, tc.field, conflict.Field)
		})
	}

	// Accounts without email or phone do not collide on NULL.
	seedUser(t, s, "dave", "", "")
	seedUser(t, s, "erin", "", "")
}

func TestUsersProfileAndImages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com", "")
	seedUser(t, s, "bob", "bob@example.com", "")

	bio := "hello"
	name := "Alice A."
	later := epoch.Add(time.Hour)
	require.NoError(t, s.Users().UpdateProfile(ctx, u.ID, store.ProfileUpdate{Bio: &bio, FullName: &name}, later))

	taken := "bob"
	err := s.Users().UpdateProfile(ctx, u.ID, store.ProfileUpdate{Username: &taken}, later)
	var conflict *store.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "username", conflict.Field)

	cover := "https://cdn.example.com/cover.png"
	require.NoError(t, s.Users().UpdateImages(ctx, u.ID, nil, &cover, later))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Bio)
	require.Equal(t, "Alice A.", got.FullName)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, cover, got.CoverImage)
	require.Equal(t, u.ProfileImage, got.ProfileImage)
	require.Equal(t, later, got.UpdatedAt)

	require.ErrorIs(t, s.Users().UpdateProfile(ctx, "missing", store.ProfileUpdate{Bio: &bio}, later), store.ErrNotFound)
}

func TestUsersProviderLink(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com", "")

	require.NoError(t, s.Users().LinkProvider(ctx, u.ID, domain.ProviderGitHub, "gh-42", epoch))

	got, err := s.Users().GetUserByProviderID(ctx, domain.ProviderGitHub, "gh-42")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, domain.ProviderGitHub, got.Provider)
	require.Equal(t, "gh-42", got.GitHubID)

	_, err = s.Users().GetUserByProviderID(ctx, domain.ProviderGoogle, "gh-42")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByProviderID(ctx, domain.ProviderEmail, "x")
	require.Error(t, err)
}

func TestUsersSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	me := seedUser(t, s, "annie", "annie@example.com", "")
	seedUser(t, s, "anna", "anna@example.com", "")
	seedUser(t, s, "joanna", "joanna@example.com", "")
	seedUser(t, s, "bob", "bob@example.com", "")
	seedUser(t, s, "under_score", "u@example.com", "")

	got, err := s.Users().SearchUsers(ctx, "ann", me.ID, 20)
	require.NoError(t, err)

	var names []string
	for _, u := range got {
		names = append(names, u.Username)
	}
	require.Equal(t, []string{"anna", "joanna"}, names)

	// '_' is literal, not a single-character wildcard.
	got, err = s.Users().SearchUsers(ctx, "b_b", me.ID, 20)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = s.Users().SearchUsers(ctx, "a", me.ID, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestUsersIssueOTPCooldown(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com", "")

	first := domain.OTP{Code: "123456", IssuedAt: epoch, ExpiresAt: epoch.Add(5 * time.Minute)}
	ok, err := s.Users().IssueOTP(ctx, u.ID, first, epoch.Add(-2*time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	// A second request inside the cooldown leaves the first code in place.
	second := domain.OTP{Code: "654321", IssuedAt: epoch.Add(time.Minute), ExpiresAt: epoch.Add(6 * time.Minute)}
	ok, err = s.Users().IssueOTP(ctx, u.ID, second, epoch.Add(-time.Minute))
	require.NoError(t, err)
	require.False(t, ok)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OTP)
	require.Equal(t, "123456", got.OTP.Code)

	third := domain.OTP{Code: "111111", IssuedAt: epoch.Add(2 * time.Minute), ExpiresAt: epoch.Add(7 * time.Minute)}
	ok, err = s.Users().IssueOTP(ctx, u.ID, third, epoch)
	require.NoError(t, err)
	require.True(t, ok)

	n, err := s.Users().ClearExpiredOTPs(ctx, epoch.Add(7*time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.OTP)
}

func TestFollowsOrderAndCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedUser(t, s, "a", "a@example.com", "")
	b := seedUser(t, s, "b", "b@example.com", "")
	c := seedUser(t, s, "c", "c@example.com", "")

	require.NoError(t, s.Follows().Follow(ctx, c.ID, a.ID, epoch))
	require.NoError(t, s.Follows().Follow(ctx, b.ID, a.ID, epoch))
	require.NoError(t, s.Follows().Follow(ctx, a.ID, b.ID, epoch))

	followers, err := s.Follows().ListFollowers(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	require.Equal(t, "c", followers[0].Username)
	require.Equal(t, "b", followers[1].Username)

	n, err := s.Follows().CountFollowers(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = s.Follows().CountFollowing(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	among, err := s.Follows().FollowedAmong(ctx, a.ID, []string{b.ID, c.ID})
	require.NoError(t, err)
	require.True(t, among[b.ID])
	require.False(t, among[c.ID])

	err = s.Follows().Follow(ctx, b.ID, a.ID, epoch)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	removed, err := s.Follows().Unfollow(ctx, c.ID, a.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.Follows().Unfollow(ctx, c.ID, a.ID)
	require.NoError(t, err)
	require.False(t, removed)

	// Re-following appends.
	require.NoError(t, s.Follows().Follow(ctx, c.ID, a.ID, epoch))
	followers, err = s.Follows().ListFollowers(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "b", followers[0].Username)
	require.Equal(t, "c", followers[1].Username)
}

func TestFollowsRejectsSelfEdge(t *testing.T) {
	s := newTestStore(t)
	a := seedUser(t, s, "a", "a@example.com", "")

	require.Error(t, s.Follows().Follow(context.Background(), a.ID, a.ID, epoch))
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedUser(t, s, "a", "a@example.com", "")
	b := seedUser(t, s, "b", "b@example.com", "")

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Follows().Follow(ctx, a.ID, b.ID, epoch))
		return boom
	})
	require.ErrorIs(t, err, boom)

	ok, err := s.Follows().IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPostMarks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedUser(t, s, "a", "a@example.com", "")

	require.NoError(t, s.PostMarks().Add(ctx, domain.PostSaved, a.ID, "p1", epoch))
	require.NoError(t, s.PostMarks().Add(ctx, domain.PostSaved, a.ID, "p2", epoch.Add(time.Second)))
	require.NoError(t, s.PostMarks().Add(ctx, domain.PostLiked, a.ID, "p1", epoch))

	saved, err := s.PostMarks().List(ctx, domain.PostSaved, a.ID)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "p1", saved[0].PostID)

	n, err := s.PostMarks().Count(ctx, domain.PostLiked, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	removed, err := s.PostMarks().Remove(ctx, domain.PostSaved, a.ID, "p1")
	require.NoError(t, err)
	require.True(t, removed)

	_, err = s.PostMarks().Count(ctx, domain.PostMarkKind("bogus"), a.ID)
	require.Error(t, err)
}

func TestFollowedAmongLargeIDList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	viewer := seedUser(t, s, "viewer", "viewer@example.com", "")
	b := seedUser(t, s, "b", "b@example.com", "")
	c := seedUser(t, s, "c", "c@example.com", "")
	d := seedUser(t, s, "d", "d@example.com", "")

	require.NoError(t, s.Follows().Follow(ctx, viewer.ID, b.ID, epoch))
	require.NoError(t, s.Follows().Follow(ctx, viewer.ID, d.ID, epoch))

	// Larger than SQLite's default bound variable limit of 32766.
	ids := make([]string, 40000)
	for i := range ids {
		ids[i] = fmt.Sprintf("missing-%05d", i)
	}
	ids[3] = c.ID
	ids[33000] = b.ID
	ids[len(ids)-1] = d.ID

	among, err := s.Follows().FollowedAmong(ctx, viewer.ID, ids)
	require.NoError(t, err)
	require.Len(t, among, 2)
	require.True(t, among[b.ID])
	require.True(t, among[d.ID])
	require.False(t, among[c.ID])
}
