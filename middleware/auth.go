package middleware

import (
	"context"
	"net/http"

	"blushbelle-api/models"
	"blushbelle-api/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware verifies the session cookie and attaches the token claims
// to the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.SessionCookieName)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		claims, err := utils.ParseSessionToken(cookie.Value)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired session", err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures the session belongs to a SuperAdmin account.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok || claims.Role != models.RoleSuperAdmin {
			utils.RespondError(w, http.StatusForbidden, "Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext extracts the session claims attached by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	return claims, ok
}
