package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/ad-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// rotas abertas para probes e scraping
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token is required", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				code := apiErrors.ErrInvalidToken
				if authErr, ok := err.(*authenticating.AuthError); ok && authErr.Code != "" {
					code = authErr.Code
				}
				apiErrors.WriteError(w, code, "Invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
