package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/smoraleda/crmcore/internal/models"
	pkghttp "github.com/smoraleda/crmcore/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// UserContextKey holds the verified token claims for a request
	UserContextKey contextKey = "user"
)

// PermissionResolver answers whether a role holds a permission.
// Unknown roles must resolve to no permissions (fail closed).
type PermissionResolver interface {
	Authorize(ctx context.Context, roleID string, required models.Permission) (bool, error)
}

// Guard validates bearer tokens and injects claims into the request
// context. Missing, malformed, invalid, and expired tokens all produce
// the same 401 so callers learn nothing about why.
func Guard(tm *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteUnauthorized(w, "Authentication required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteUnauthorized(w, "Authentication required")
				return
			}

			claims, err := tm.Verify(parts[1])
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission enforces a fine-grained permission check for a route.
// Must run after Guard. Resolver errors deny access.
func RequirePermission(resolver PermissionResolver, required models.Permission) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r)
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "Authentication required")
				return
			}

			allowed, err := resolver.Authorize(r.Context(), claims.RoleID, required)
			if err != nil || !allowed {
				pkghttp.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts verified claims from the request context
func GetUserFromContext(r *http.Request) *models.TokenClaims {
	claims, ok := r.Context().Value(UserContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
