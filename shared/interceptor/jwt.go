package interceptor

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/shared/utilities"
)

const (
	AuthorizationHeader = "Authorization"

	msgNoToken      = "No token provided. Permission denied"
	msgInvalidToken = "Invalid token provided"
)

type contextKey struct{}

var UserIDKey = contextKey{}

// TokenVerifier verifies a bearer token and returns the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// NewJWTInterceptor returns the auth guard: requests without a valid token in the Authorization
// header are rejected with 401 and never reach next.
func NewJWTInterceptor(verifier TokenVerifier, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				utilities.WriteError(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected bearer token")
				utilities.WriteError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// extractToken reads the raw token. A "Bearer " scheme prefix is accepted but not required.
func extractToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get(AuthorizationHeader))
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// ContextWithUserID attaches the authenticated user id to ctx.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the user id attached by the auth guard.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
