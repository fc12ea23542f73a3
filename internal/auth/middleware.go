package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Identity is the authenticated caller attached to a request after the
// bearer token has been verified and its subject re-checked against the
// user store. It lives only for the duration of one request.
type Identity struct {
	UserID string
	Email  string
}

// TokenResolver turns a raw bearer token into an Identity. Resolution fails
// when the token is invalid, expired, or its subject no longer exists.
type TokenResolver interface {
	ResolveToken(tokenStr string) (Identity, error)
}

type contextKey string

const identityKey = contextKey("authIdentity")

// IdentityFromContext returns the authenticated caller set by Middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Middleware protects routes: it extracts the bearer token, resolves it,
// and injects the caller identity into the request context. Requests with
// a missing, malformed, or unresolvable token are rejected with 401.
func Middleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			identity, err := resolver.ResolveToken(tokenStr)
			if err != nil {
				log.Warn().Err(err).Msg("Rejected bearer token")
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
