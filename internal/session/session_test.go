package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")

	s := NewStore(path)
	assert.Empty(t, s.Token())

	// load with no file present is not an error
	require.NoError(t, s.Load())
	assert.Empty(t, s.Token())

	require.NoError(t, s.Save("token-123"))
	assert.Equal(t, "token-123", s.Token())

	// a fresh store picks the credential up from disk
	s2 := NewStore(path)
	require.NoError(t, s2.Load())
	assert.Equal(t, "token-123", s2.Token())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	require.NoError(t, s.Clear())
}

func TestStore_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

	s := NewStore(path)
	require.Error(t, s.Load())
	assert.Empty(t, s.Token())
}

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, TokenExpired(signedTestToken(t, now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signedTestToken(t, now.Add(-time.Hour)), now))

	// opaque tokens are never reported expired
	assert.False(t, TokenExpired("some-opaque-session-token", now))

	// a JWT without exp claim is never reported expired
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"})
	signed, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(signed, now))
}
