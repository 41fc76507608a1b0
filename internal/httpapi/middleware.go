package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserReader resolves a user id to its roles for admin gating.
type UserReader interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// HeaderAuthMiddleware reads the caller identity from the X-User-ID header.
// Real authentication is a separate concern handled upstream; this trusts the
// header the way a gateway-issued claim would be trusted.
func HeaderAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
		if err != nil || userID <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects requests whose user does not hold the admin role.
func AdminOnly(users UserReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := getUserIDFromContext(r.Context())
			if userID == 0 {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				handleDomainError(w, err)
				return
			}
			if !user.IsAdmin() {
				respondError(w, http.StatusForbidden, "forbidden", "admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getUserIDFromContext(ctx context.Context) int64 {
	if userID, ok := ctx.Value(userIDKey).(int64); ok {
		return userID
	}
	return 0
}
