// internal/adapters/sandbox/middleware.go
package sandbox

import (
	"context"
	"net/http"
	"strings"

	"github.com/mahabubulhasibshawon/glamour-storefront/pkg/auth"
)

type ctxKey struct{}

func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := s.issuer.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ctxKey{}).(*auth.Claims)
	return claims
}
