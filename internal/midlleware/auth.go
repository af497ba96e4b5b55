package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"collegeerp/internal/auth"
	"collegeerp/internal/entity"

	"go.uber.org/zap"
)

type claimsKey struct{}

// ClaimsFrom returns the session claims the guard attached to the
// request context.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}

// RequireAuth is the session guard. A missing cookie is 401; a cookie
// that fails signature or expiry checks is 403. The two are never
// collapsed because clients branch on them. On success the claims ride
// the request context; the account is not re-checked against the store.
func RequireAuth(codec *auth.TokenCodec, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				respond(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := codec.Verify(cookie.Value)
			if err != nil {
				logger.Debug("session token rejected", zap.Error(err))
				respond(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireKind allows only the listed kinds through, answering everyone
// else with 403 and the given message.
func RequireKind(message string, kinds ...entity.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				respond(w, http.StatusUnauthorized, "No token provided")
				return
			}

			for _, kind := range kinds {
				if claims.Kind == kind {
					next.ServeHTTP(w, r)
					return
				}
			}

			respond(w, http.StatusForbidden, message)
		})
	}
}

func respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
