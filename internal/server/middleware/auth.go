// Package middleware provides HTTP middleware for authenticating API callers.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	// userIDKey is the context key for the token subject.
	userIDKey ContextKey = "userID"
	// methodKey is the context key for how the caller authenticated.
	methodKey ContextKey = "authMethod"
)

// APIKeyHeader carries a raw service API key.
const APIKeyHeader = "X-API-Key"

// Authentication methods recorded on the request context.
const (
	MethodBearer = "bearer"
	MethodAPIKey = "api_key"
)

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserIDGetter, error)
}

// UserIDGetter is an interface for extracting user ID from token claims.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// KeyVerifier checks a raw API key against the configured hash.
type KeyVerifier interface {
	VerifyKey(key string) bool
}

// AuthMiddleware admits requests carrying either a valid Bearer token or, when keys
// is non-nil, a valid X-API-Key header. Either argument may be nil to disable that method.
func AuthMiddleware(tokens TokenValidator, keys KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get(APIKeyHeader); key != "" {
				if keys == nil || !keys.VerifyKey(key) {
					unauthorized(w)
					return
				}
				ctx := context.WithValue(r.Context(), methodKey, MethodAPIKey)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if tokens == nil {
				unauthorized(w)
				return
			}

			// Parse Bearer token
			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
			ctx = context.WithValue(ctx, methodKey, MethodBearer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="resume-screener"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetUserID extracts the authenticated token subject from the request context.
// Requests admitted by API key have no subject.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// AuthMethod reports how the request was authenticated, or "" if it was not.
func AuthMethod(r *http.Request) string {
	method, _ := r.Context().Value(methodKey).(string)
	return method
}

// UserIDKey returns the context key for user ID (for testing purposes).
func UserIDKey() ContextKey {
	return userIDKey
}
