package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles carried by access tokens.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleEditor UserRole = "EDITOR"
	RoleViewer UserRole = "VIEWER"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ReadOnly reports whether the token only grants viewing rights.
func (c *JWTClaims) ReadOnly() bool {
	return c != nil && c.Role == RoleViewer
}
