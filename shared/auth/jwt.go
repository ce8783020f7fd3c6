package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiresIn is the validity window of an issued token.
const DefaultTokenExpiresIn = 3600 * time.Second

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// UserRef identifies the authenticated user inside the token payload.
type UserRef struct {
	ID string `json:"id"`
}

// UserClaims is the payload of a bearer token: { "user": { "id": ... } } plus the registered claims.
type UserClaims struct {
	User UserRef `json:"user"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and verifies HS256 signed bearer tokens.
type JWTAuthenticator struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string
	now       func() time.Time
}

// Option configures a JWTAuthenticator.
type Option func(*JWTAuthenticator)

// WithIssuer sets the issuer and audience claims written to and required from every token.
func WithIssuer(issuer string) Option {
	return func(a *JWTAuthenticator) {
		a.issuer = issuer
	}
}

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(a *JWTAuthenticator) {
		a.now = now
	}
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
// A non-positive expiresIn falls back to DefaultTokenExpiresIn.
func NewJWTAuthenticator(secret string, expiresIn time.Duration, opts ...Option) *JWTAuthenticator {
	if expiresIn <= 0 {
		expiresIn = DefaultTokenExpiresIn
	}

	a := &JWTAuthenticator{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// IssueToken generates a signed token for the given user id.
func (a *JWTAuthenticator) IssueToken(userID string) (string, error) {
	now := a.now()
	claims := UserClaims{
		User: UserRef{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiresIn)),
		},
	}
	if a.issuer != "" {
		claims.Issuer = a.issuer
		claims.Audience = jwt.ClaimStrings{a.issuer}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// VerifyToken validates the signature and expiry of a token and returns the embedded user id.
func (a *JWTAuthenticator) VerifyToken(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer), jwt.WithAudience(a.issuer))
	}

	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.User.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.User.ID, nil
}
