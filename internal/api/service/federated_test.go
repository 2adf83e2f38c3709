package service

import (
	"context"
	"strings"
	"testing"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatesAccount(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	res, err := env.fed.Resolve(ctx, domain.ExternalProfile{
		Provider:  domain.ProviderGitHub,
		ID:        "42",
		Email:     "octo@example.com",
		Username:  "Octo-Cat",
		FullName:  "Octo Cat",
		AvatarURL: "https://img.example.com/o.png",
	})
	require.NoError(t, err)
	require.True(t, res.Created)
	require.Equal(t, "octocat", res.User.Username)
	require.Equal(t, domain.ProviderGitHub, res.User.Provider)
	require.Equal(t, "42", res.User.GitHubID)
	require.Equal(t, "https://img.example.com/o.png", res.User.ProfileImage)
	require.False(t, res.User.HasPassword())
	require.NotNil(t, res.User.LastLoginAt)

	claims, err := env.verifier.Verify(res.Session.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, claims.Subject)
	require.Equal(t, "github", claims.Provider)

	// A second login finds the same account by provider id.
	again, err := env.fed.Resolve(ctx, domain.ExternalProfile{Provider: domain.ProviderGitHub, ID: "42"})
	require.NoError(t, err)
	require.False(t, again.Created)
	require.Equal(t, res.User.ID, again.User.ID)
}

func TestResolveLinksByEmail(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	a := env.signUp(t, "alice", "alice@example.com")

	res, err := env.fed.Resolve(ctx, domain.ExternalProfile{
		Provider: domain.ProviderGoogle,
		ID:       "g-1",
		Email:    "alice@example.com",
		FullName: "Alice",
	})
	require.NoError(t, err)
	require.False(t, res.Created)
	require.Equal(t, a.ID, res.User.ID)
	require.Equal(t, "g-1", res.User.GoogleID)
	require.True(t, res.User.HasPassword())

	n, err := env.store.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestResolveSuffixesTakenUsername(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.signUp(t, "fay", "fay@example.com")

	res, err := env.fed.Resolve(ctx, domain.ExternalProfile{
		Provider: domain.ProviderFacebook,
		ID:       "fb-7",
		FullName: "Fay",
	})
	require.NoError(t, err)
	require.True(t, res.Created)
	require.True(t, strings.HasPrefix(res.User.Username, "fay"))
	require.Len(t, res.User.Username, len("fay")+6)
	require.Equal(t, domain.PlaceholderAvatar("Fay"), res.User.ProfileImage)
}

func TestResolveRejectsMissingIdentity(t *testing.T) {
	env := newEnv(t)

	_, err := env.fed.Resolve(context.Background(), domain.ExternalProfile{Provider: domain.ProviderGoogle})
	serr := requireKind(t, err, ErrAuth)
	require.Equal(t, MsgAuthFailed, serr.Message)

	_, err = env.fed.Resolve(context.Background(), domain.ExternalProfile{Provider: domain.ProviderEmail, ID: "x"})
	requireKind(t, err, ErrAuth)
}

func TestUsernameBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  domain.ExternalProfile
		want string
	}{
		{domain.ExternalProfile{Username: "Jo_Hn!"}, "john"},
		{domain.ExternalProfile{Username: "me", Email: "kim.lee@example.com"}, "kimlee"},
		{domain.ExternalProfile{Username: "01712345678", Email: "kim@example.com"}, "kim"},
		{domain.ExternalProfile{FullName: "Ωmega Åsa"}, "megasa"},
		{domain.ExternalProfile{Provider: domain.ProviderGoogle, FullName: "李"}, "usergoogle"},
		{domain.ExternalProfile{Username: strings.Repeat("a", 40)}, strings.Repeat("a", usernameBaseMax)},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, usernameBase(tc.ext))
	}
}
