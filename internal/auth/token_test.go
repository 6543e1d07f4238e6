package auth

import (
	"testing"
	"time"

	apperrors "event-platform/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueDecode(t *testing.T) {
	m := NewTokenManager("secret-secret-secret", time.Hour, "test")

	token, err := m.Issue(42)
	require.NoError(t, err)

	userID, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("secret-secret-secret", 0, "test")
	assert.Equal(t, 120*time.Minute, m.ttl)
}

func TestTokenManager_Issue_InvalidSubject(t *testing.T) {
	m := NewTokenManager("secret-secret-secret", time.Hour, "test")
	_, err := m.Issue(0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTokenManager_Decode_Failures(t *testing.T) {
	m := NewTokenManager("secret-secret-secret", time.Hour, "test")

	t.Run("empty", func(t *testing.T) {
		_, err := m.Decode("")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := m.Decode("not.a.jwt")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-value", time.Hour, "test")
		token, err := other.Issue(1)
		require.NoError(t, err)

		_, err = m.Decode(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		issuedAt := time.Now().Add(-3 * time.Hour)
		old := NewTokenManager("secret-secret-secret", time.Hour, "test")
		old.now = func() time.Time { return issuedAt }
		token, err := old.Issue(1)
		require.NoError(t, err)

		_, err = m.Decode(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-secret-secret"))
		require.NoError(t, err)

		_, err = m.Decode(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwt.RegisteredClaims{Subject: "1"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-secret-secret"))
		require.NoError(t, err)

		_, err = m.Decode(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestTokenFromHeader(t *testing.T) {
	_, err := TokenFromHeader("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = TokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)
}
