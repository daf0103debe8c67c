package models

import "github.com/golang-jwt/jwt/v5"

// PermissionAgentsAdmin gates the agent admin CRUD surface.
const PermissionAgentsAdmin = "agents-admin"

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	AppMetadata          map[string]interface{} `json:"app_metadata"`
	UserMetadata         map[string]interface{} `json:"user_metadata"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	SessionID            string                 `json:"session_id"`
	IsAnonymous          bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// HasPermission reports whether app_metadata.permissions contains the
// given permission string.
func (c *SupabaseClaims) HasPermission(permission string) bool {
	raw, ok := c.AppMetadata["permissions"]
	if !ok {
		return false
	}
	perms, ok := raw.([]interface{})
	if !ok {
		return false
	}
	for _, p := range perms {
		if s, ok := p.(string); ok && s == permission {
			return true
		}
	}
	return false
}
