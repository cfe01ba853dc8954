// Package middleware holds the HTTP middleware shared by the catalog routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/catalog-api/internal/apperr"
	"github.com/rogerio-castellano/catalog-api/internal/auth"
)

type contextKey string

const claimsKey = contextKey("claims")

// Auth requires a valid bearer token and stores its claims on the request.
func Auth(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apperr.Write(w, apperr.Unauthorized("missing or invalid token"))
				return
			}

			claims, err := issuer.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				apperr.Write(w, apperr.Unauthorized("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by Auth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
