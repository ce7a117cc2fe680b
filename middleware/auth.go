package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/utils"
)

// Key type for context
type contextKey string

// UserIDKey is the context key under which Auth stores the authenticated
// user id.
const UserIDKey = contextKey("userId")

// Auth returns a middleware that verifies the bearer token on the request
// and attaches the authenticated user id to the request context. A missing
// or malformed header fails with 401; a token that does not verify fails
// with 403. Downstream handlers are never reached on failure.
func Auth(tokens *utils.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				utils.WriteError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id stored by Auth.
func UserID(r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
	return userID, ok
}
