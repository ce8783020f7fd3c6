package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("super-secret", time.Hour)

	tok, err := a.IssueToken("user-123")
	require.NoError(t, err)

	userID, err := a.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyToken_ExpiresAfterWindow(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	a := NewJWTAuthenticator("secret", DefaultTokenExpiresIn, WithClock(clock.Now))

	tok, err := a.IssueToken("u1")
	require.NoError(t, err)

	userID, err := a.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	clock.now = clock.now.Add(3599 * time.Second)
	_, err = a.VerifyToken(tok)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Second)
	_, err = a.VerifyToken(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTAuthenticator("right-secret", time.Hour).IssueToken("u2")
	require.NoError(t, err)

	_, err = NewJWTAuthenticator("wrong-secret", time.Hour).VerifyToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewJWTAuthenticator("k", time.Hour).VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := UserClaims{
		User: UserRef{ID: "u3"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTAuthenticator("secret", time.Hour).VerifyToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RequiresExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{User: UserRef{ID: "u4"}}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTAuthenticator("secret", time.Hour).VerifyToken(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_IssuerMismatch(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTAuthenticator("secret", time.Hour, WithIssuer("other-service")).IssueToken("u5")
	require.NoError(t, err)

	_, err = NewJWTAuthenticator("secret", time.Hour, WithIssuer("devconnector-api")).VerifyToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	userID, err := NewJWTAuthenticator("secret", time.Hour, WithIssuer("other-service")).VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u5", userID)
}
