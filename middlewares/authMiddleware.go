package middleware

import (
	"context"
	"net/http"
	"strings"

	helper "github.com/tabledine/Table_Ordering_Backend/helper"
)

// Context keys to store user information
type contextKey string

const (
	UsernameKey contextKey = "username"
	UserIDKey   contextKey = "user_id"
)

// Authentication guards staff-only routes. It validates the bearer token and
// stores the account identity in the request context.
func Authentication(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientToken := r.Header.Get("Authorization")
			if clientToken == "" {
				http.Error(w, `{"success": false, "message": "No Authorization header provided"}`, http.StatusUnauthorized)
				return
			}

			// Token format should be "Bearer <token>"
			tokenParts := strings.Split(clientToken, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				http.Error(w, `{"success": false, "message": "Invalid Authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := helper.ValidateToken(tokenParts[1], secretKey)
			if err != nil {
				http.Error(w, `{"success": false, "message": "`+err.Error()+`"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthentication attaches the account identity when a valid bearer
// token is present and lets the request through anonymously otherwise.
// Customer routes use it so a logged-in account placing an order gets
// recorded as its owner while guests stay ownerless.
func OptionalAuthentication(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientToken := r.Header.Get("Authorization")
			tokenParts := strings.Split(clientToken, " ")
			if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
				if claims, err := helper.ValidateToken(tokenParts[1], secretKey); err == nil {
					ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
					ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext retrieves the authenticated account from the request
// context. ok is false on unauthenticated requests.
func GetUserFromContext(r *http.Request) (userID uint, username string, ok bool) {
	userID, ok = r.Context().Value(UserIDKey).(uint)
	username, _ = r.Context().Value(UsernameKey).(string)
	return userID, username, ok
}
