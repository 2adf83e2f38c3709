package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestOTPValidAt(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	otp := domain.OTP{Code: "123456", IssuedAt: issued, ExpiresAt: issued.Add(5 * time.Minute)}

	require.False(t, otp.ValidAt(issued.Add(-time.Nanosecond)))
	require.True(t, otp.ValidAt(issued))
	require.True(t, otp.ValidAt(issued.Add(5*time.Minute-time.Nanosecond)))
	require.False(t, otp.ValidAt(issued.Add(5*time.Minute)))
}

func TestProfileViewsJSON(t *testing.T) {
	u := domain.User{
		ID:        "01J000000000000000000000AA",
		Username:  "alice",
		FullName:  "Alice A",
		Email:     "alice@example.com",
		Phone:     "01712345678",
		Provider:  domain.ProviderGitHub,
		GitHubID:  "gh-1",
		CreatedAt: time.Unix(0, 0).UTC(),
	}
	counts := domain.ProfileCounts{Followers: 2, Following: 1, LikedPosts: 3}

	t.Run("self view carries private fields", func(t *testing.T) {
		raw, err := json.Marshal(domain.NewSelfProfileView(u, counts))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		require.Equal(t, true, m["myProfile"])
		require.Equal(t, "alice@example.com", m["email"])
		require.Equal(t, "github", m["provider"])
		require.Equal(t, "gh-1", m["githubId"])
		require.EqualValues(t, 2, m["followers"])
		require.NotContains(t, m, "isFollowing")
	})

	t.Run("public view omits private fields entirely", func(t *testing.T) {
		raw, err := json.Marshal(domain.NewPublicProfileView(u, counts, true))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		for _, key := range []string{"email", "phone", "provider", "googleId", "githubId", "facebookId"} {
			require.NotContains(t, m, key)
		}
		require.Equal(t, false, m["myProfile"])
		require.Equal(t, true, m["isFollowing"])
		require.EqualValues(t, 3, m["likedPosts"])
	})
}

func TestPlaceholderAvatar(t *testing.T) {
	require.Equal(t,
		"https://avatar.iran.liara.run/username?username=Alice+Smith",
		domain.PlaceholderAvatar("Alice Smith"))
}

func TestParseProvider(t *testing.T) {
	p, ok := domain.ParseProvider("github")
	require.True(t, ok)
	require.True(t, p.IsFederated())

	p, ok = domain.ParseProvider("email")
	require.True(t, ok)
	require.False(t, p.IsFederated())

	_, ok = domain.ParseProvider("myspace")
	require.False(t, ok)
}
