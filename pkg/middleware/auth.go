package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "github.com/Adilet2209/Travel_Journal/pkg/jwt"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware rejects requests without a valid Bearer token and stores
// the token claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				logger.Log.WithField("path", r.URL.Path).Warn("Missing authorization token")
				writeAuthError(w, "authorization required")
				return
			}

			claims, err := jwtutil.ParseToken(raw, secret)
			if err != nil {
				logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("Invalid token")
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present but
// lets anonymous requests through. Used on listings where only the drafts
// filter needs an identity.
func OptionalAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearerToken(r); raw != "" {
				if claims, err := jwtutil.ParseToken(raw, secret); err == nil {
					ctx := context.WithValue(r.Context(), userContextKey, claims)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the claims stored by the auth middleware, or
// nil for anonymous requests.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
