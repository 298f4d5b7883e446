// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"log"
	"strings"

	"splitr/internal/services/auth"
	"splitr/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the HTTP-only cookie carrying the token.
const SessionCookie = "token"

// AuthMiddleware validates session tokens and adds the user claims to
// the request context.
type AuthMiddleware struct {
	authService auth.Service
	jwtSecret   string
}

func NewAuthMiddleware(authService auth.Service, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

// Handler reads the session token from the cookie (or a Bearer header
// as a fallback for non-browser clients), validates it, checks the
// account still exists and stores the claims in the context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if tokenString == "" {
		return utils.Unauthorized(c, "authentication required")
	}

	claims, err := utils.ParseToken(tokenString, m.jwtSecret)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return utils.Unauthorized(c, "invalid or expired session")
	}

	if _, err := m.authService.GetUserByID(claims.UserID); err != nil {
		log.Printf("user %d from token not found", claims.UserID)
		return utils.Unauthorized(c, "invalid or expired session")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}
