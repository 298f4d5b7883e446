package handlers

import (
	"errors"
	"time"

	"splitr/internal/config"
	"splitr/internal/middleware"
	"splitr/internal/models"
	"splitr/internal/services/auth"
	"splitr/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. The first account on an empty
// database comes back with the admin role.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, err := h.authService.Register(input)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Created(c, fiber.Map{
		"message": "account created",
		"user":    user,
	})
}

// Login authenticates and sets the session cookie. Failed attempts get
// the lockout metadata the UI renders.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, token, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		var active *auth.LockoutActiveError
		if errors.As(err, &active) {
			return utils.Respond(c, fiber.StatusTooManyRequests, fiber.Map{
				"error":            active.Error(),
				"lockedOut":        true,
				"secondsRemaining": active.SecondsRemaining,
			})
		}
		var triggered *auth.LockoutTriggeredError
		if errors.As(err, &triggered) {
			return utils.Respond(c, fiber.StatusTooManyRequests, fiber.Map{
				"error":              triggered.Error(),
				"lockedOut":          true,
				"lockoutDuration":    triggered.HumanDuration(),
				"secondsRemaining":   triggered.Seconds,
				"nextLockoutSeconds": triggered.NextLockoutSeconds,
			})
		}
		var bad *auth.BadPasswordError
		if errors.As(err, &bad) {
			return utils.Respond(c, fiber.StatusUnauthorized, fiber.Map{
				"error":              bad.Error(),
				"attemptsRemaining":  bad.AttemptsRemaining,
				"nextLockoutSeconds": bad.NextLockoutSeconds,
			})
		}
		return utils.Domain(c, err)
	}

	h.setSessionCookie(c, token)
	return utils.Success(c, fiber.Map{
		"message": "logged in",
		"user":    user,
	})
}

// CurrentUser returns the profile plus owned/joined group summaries.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	profile, err := h.authService.CurrentUser(claims.UserID)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, profile)
}

// UpdateUser partially updates name / email / phone.
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input auth.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, err := h.authService.UpdateProfile(claims.UserID, input)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{
		"message": "profile updated",
		"user":    user,
	})
}

// UpdatePassword requires the current password before accepting a new one.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.authService.ChangePassword(claims.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "password updated"})
}

// ForgotPassword issues a reset token and emails the link. The response
// is the same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return utils.BadRequest(c, "email is required")
	}

	token, err := h.authService.ForgotPassword(input.Email, config.AppURL())
	if err != nil {
		return utils.Domain(c, err)
	}

	resp := fiber.Map{"message": "if the account exists, a reset link has been sent"}
	// Test convenience only, never exposed in production.
	if token != "" && !config.IsProduction() {
		resp["resetToken"] = token
	}
	return utils.Success(c, resp)
}

// ResetPassword exchanges a valid token for a password change.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.authService.ResetPassword(c.Params("token"), input.NewPassword); err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "password has been reset"})
}

// ValidateUsername is the existence check behind the member picker.
// Confirming existence here is intentional product behavior.
func (h *AuthHandler) ValidateUsername(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, err := h.authService.ValidateUsername(input.Username)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{
		"valid": true,
		"user":  fiber.Map{"id": user.ID, "name": user.Name},
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
	})
	return utils.Success(c, fiber.Map{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(utils.SessionDuration.Seconds()),
	})
}
