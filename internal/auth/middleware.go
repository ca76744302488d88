package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// claimsCtxKey is the context key for authenticated claims.
type claimsCtxKey struct{}

// ClaimsFromContext returns the authenticated claims attached by
// Authenticate, or nil when the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsCtxKey{}).(*Claims)
	return claims
}

// withClaims returns a context carrying the authenticated claims.
func withClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// Authenticate extracts the bearer token from the Authorization header,
// verifies it, and attaches the identity claims to the request context.
//
// A missing or malformed header fails with 401; an invalid or expired token
// fails with 403. The 403 is kept for compatibility with the API's
// established behavior even though 401 would be more conventional.
func Authenticate(tm *TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeAuthError(w, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}

			claims, err := tm.Verify(parts[1])
			if err != nil {
				logger.Debug().Err(err).Msg("token verification failed")
				writeAuthError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireRole checks the authenticated identity's role claim against the
// required role. Mismatch fails with 403 and no further detail.
// Authenticate must run earlier in the chain.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || claims.Role != role {
				writeAuthError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError writes a JSON error body with the given status.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
