package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
