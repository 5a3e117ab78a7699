package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/coursetrack/backend/internal/auth/service"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenValidator validates access tokens
type TokenValidator interface {
	// Validate validates an access token
	//
	// "token" is the raw access token.
	//
	// Returns the identity carried by the token and an error if any.
	Validate(token string) (*service.Identity, error)
}

// extractToken reads the access token from the Authorization header or the access_token cookie
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// authenticate validates the request token and returns the caller identity.
// It writes a 401 response and returns false when the request is not authenticated.
func authenticate(validator TokenValidator, w http.ResponseWriter, r *http.Request) (*service.Identity, bool) {
	token := extractToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, `{"error":"authentication required"}`)
		return nil, false
	}

	identity, err := validator.Validate(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, `{"error":"invalid or expired token"}`)
		return nil, false
	}

	return identity, true
}

// AuthMiddleware validates JWT access token and stores the caller identity in the request context
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authenticate(validator, w, r)
			if !ok {
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity *service.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the caller identity from context
func GetIdentity(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*service.Identity)
	return identity, ok && identity != nil
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
