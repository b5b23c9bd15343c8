package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/J-A-Y2/Big-Money/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// Auth verifies the access token and stashes the subject in the request
// context. The token travels either as a Bearer header or as the accessToken
// cookie the login handler sets; the cookie is the primary channel for the
// browser client.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie("accessToken"); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				log.Printf("ERROR [middleware.Auth] no access token presented")
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			sub, ok := tokens.DecodeToken(token)
			if !ok {
				log.Printf("ERROR [middleware.Auth] token validation failed")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] failed to parse user ID: %v", err)
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
