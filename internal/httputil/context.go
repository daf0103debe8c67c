package httputil

import (
	"context"
	"net/http"

	"inkwell/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	claimsKey contextKey = "claims"
)

// WithUser adds the authenticated user's id and claims to the request context.
func WithUser(r *http.Request, claims *models.SupabaseClaims) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
	ctx = context.WithValue(ctx, claimsKey, claims)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetClaims retrieves the verified JWT claims from context, or nil.
func GetClaims(r *http.Request) *models.SupabaseClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.SupabaseClaims)
	return claims
}
