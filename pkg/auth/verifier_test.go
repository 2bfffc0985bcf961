package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifier_DevSecret(t *testing.T) {
	v := NewVerifier(nil, "", "dev-secret")

	t.Run("accepts a valid HS256 token", func(t *testing.T) {
		tok := signHS256(t, "dev-secret", jwt.MapClaims{
			"sub":   "user-1",
			"email": "a@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		id, err := v.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id.UserID)
		assert.Equal(t, "a@example.com", id.Email)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		tok := signHS256(t, "other", jwt.MapClaims{"sub": "user-1"})
		_, err := v.Verify(tok)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		tok := signHS256(t, "dev-secret", jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		_, err := v.Verify(tok)
		assert.Error(t, err)
	})

	t.Run("rejects a token without subject", func(t *testing.T) {
		tok := signHS256(t, "dev-secret", jwt.MapClaims{"email": "a@example.com"})
		_, err := v.Verify(tok)
		assert.Error(t, err)
	})
}

func TestVerifier_HS256WithoutSecret(t *testing.T) {
	v := NewVerifier(nil, "", "")
	tok := signHS256(t, "anything", jwt.MapClaims{"sub": "user-1"})
	_, err := v.Verify(tok)
	assert.Error(t, err)
}

func TestVerifier_ProjectClaims(t *testing.T) {
	v := NewVerifier(nil, "talent-app", "dev-secret")

	good := signHS256(t, "dev-secret", jwt.MapClaims{
		"sub": "user-1",
		"iss": "https://securetoken.google.com/talent-app",
		"aud": "talent-app",
	})
	_, err := v.Verify(good)
	require.NoError(t, err)

	wrongAud := signHS256(t, "dev-secret", jwt.MapClaims{
		"sub": "user-1",
		"iss": "https://securetoken.google.com/talent-app",
		"aud": "someone-else",
	})
	_, err = v.Verify(wrongAud)
	assert.Error(t, err)
}
