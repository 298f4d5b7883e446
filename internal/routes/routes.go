// Package routes defines the API routing configuration.
// It wires repositories, services and handlers, and groups routes by
// functionality with the appropriate middleware.
package routes

import (
	"splitr/internal/config"
	"splitr/internal/handlers"
	"splitr/internal/middleware"
	"splitr/internal/repositories"
	"splitr/internal/services/auth"
	"splitr/internal/services/group"
	"splitr/internal/services/mailer"
	"splitr/internal/services/split"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	groupRepo := repositories.NewGroupRepository(db, repositories.CacheService)

	// Services
	jwtSecret := config.GetEnv("JWT_SECRET", "splitr")
	mailService := mailer.NewService()
	authService := auth.NewService(userRepo, groupRepo, mailService, jwtSecret)
	groupService := group.NewService(groupRepo, userRepo)
	splitService := split.NewService(groupRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	paymentHandler := handlers.NewPaymentHandler(splitService)

	authMiddleware := middleware.NewAuthMiddleware(authService, jwtSecret)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Splitr API",
			"version": "1.0.0",
		})
	})
	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public auth endpoints
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/forgot-password", authHandler.ForgotPassword)
	authRoutes.Post("/reset-password/:token", authHandler.ResetPassword)
	authRoutes.Post("/validate-username", authHandler.ValidateUsername)

	// Session-protected auth endpoints
	authRoutes.Get("/current-user", authMiddleware.Handler, authHandler.CurrentUser)
	authRoutes.Patch("/update-user", authMiddleware.Handler, authHandler.UpdateUser)
	authRoutes.Post("/update-password", authMiddleware.Handler, authHandler.UpdatePassword)
	authRoutes.Post("/logout", authMiddleware.Handler, authHandler.Logout)

	// Groups
	groups := api.Group("/groups", authMiddleware.Handler)
	groups.Post("/create-group", groupHandler.CreateGroup)
	groups.Delete("/", groupHandler.DeleteGroup)
	groups.Get("/:groupId", groupHandler.GetGroup)
	groups.Patch("/:groupId", groupHandler.UpdateGroup)
	groups.Post("/:groupId/members", groupHandler.AddMembers)
	groups.Delete("/:groupId/members/:memberId", groupHandler.RemoveMember)
	groups.Post("/:groupId/leave", groupHandler.LeaveGroup)

	// Payments
	payments := api.Group("/payments", authMiddleware.Handler)
	payments.Post("/process-shop-payment", paymentHandler.ProcessShopPayment)
	payments.Post("/generate-upi", paymentHandler.GenerateUPI)
}
