package middleware

import (
	"net/http"
)

// RoleMiddleware validates JWT access token and checks that the caller has requiredRole
func RoleMiddleware(validator TokenValidator, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authenticate(validator, w, r)
			if !ok {
				return
			}

			if identity.Role != requiredRole {
				writeError(w, http.StatusForbidden, `{"error":"insufficient permissions"}`)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
