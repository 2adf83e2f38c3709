package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"policy password", "Str0ng!Pass"},
		{"long password", strings.Repeat("a", 128)},
		{"unicode password", "পাসওয়ার্ড!A1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotContains(t, hash, tt.password)

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("Same!Pass1")
	require.NoError(t, err)
	b, err := HashPassword("Same!Pass1")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("Same!Pass1", a))
	require.NoError(t, VerifyPassword("Same!Pass1", b))
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("Correct!Pass1")
	require.NoError(t, err)

	for _, wrong := range []string{"", "correct!pass1", "Correct!Pass1 ", "Correct!Pass", strings.Repeat("x", 4096)} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch, wrong)
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	tests := map[string]string{
		"empty":               "",
		"bcrypt":              "$2a$10$abcdefghijklmnopqrstuv",
		"wrong algorithm":     "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"missing parts":       "$argon2id$v=19$m=19456",
		"bad parameters":      "$argon2id$v=19$invalid$c2FsdA$aGFzaA",
		"bad salt encoding":   "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"bad hash encoding":   "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",
		"unsupported version": "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}

	for name, encoded := range tests {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("whatever", encoded), ErrInvalidHash)
		})
	}
}

func TestPepperIsPersisted(t *testing.T) {
	p := GetPepper()
	require.NotEmpty(t, p)

	// Same file, same pepper after a reload.
	SetPepperPath(pepperFile)
	require.Equal(t, p, GetPepper())
}
