// Package routes defines the API routing configuration.
package routes

import (
	"challenz/internal/handlers"
	"challenz/internal/metrics"
	"challenz/internal/middleware"
	"challenz/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the handlers and middleware the router mounts.
type Dependencies struct {
	Escrow    *handlers.EscrowHandler
	Health    *handlers.HealthHandler
	StaffAuth *middleware.StaffAuth
	Metrics   *metrics.Collector
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.StaffAuth == nil {
		deps.StaffAuth = middleware.NewStaffAuth("", nil)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Challenz admin API",
			"version": "1.0.0",
		})
	})

	if deps.Health != nil {
		app.Get("/health", deps.Health.HealthCheck)
	}
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")
	addDashboardRoutes(api, deps)
}

func addDashboardRoutes(router fiber.Router, deps Dependencies) {
	dashboard := router.Group("/dashboard", deps.StaffAuth.Handler)

	escrow := dashboard.Group("/escrow", deps.StaffAuth.HasPermission(models.PermissionEscrowRead))
	escrow.Get("/", deps.Escrow.ListEscrow)
	escrow.Get("/:merchantId", deps.Escrow.GetMerchantEscrow)
}
