package handlers

import (
	"splitr/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// Health reports database and cache connectivity.
func Health(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok", "database": "up", "cache": "up"}
	code := fiber.StatusOK

	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status["database"] = "down"
			status["status"] = "degraded"
			code = fiber.StatusServiceUnavailable
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			status["cache"] = "down"
			status["status"] = "degraded"
		}
	}
	return c.Status(code).JSON(status)
}
