package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuslink/portal-api/internal/config"
	"github.com/campuslink/portal-api/internal/handler"
	"github.com/campuslink/portal-api/internal/middleware"
	"github.com/campuslink/portal-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	BonafideHandler   *handler.CertificateHandler
	MigrationHandler  *handler.CertificateHandler
	BlogHandler       *handler.BlogHandler
	AttendanceHandler *handler.AttendanceHandler
	FeeHandler        *handler.FeeHandler
	ProfileHandler    *handler.ProfileHandler
	DashboardHandler  *handler.DashboardHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Everything
// under /api/v1 except auth, health and metrics requires a valid session.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.BonafideHandler != nil {
		deps.BonafideHandler.Register(api.Group("/bonafide", jwtMiddleware))
	}
	if deps.MigrationHandler != nil {
		deps.MigrationHandler.Register(api.Group("/migration", jwtMiddleware))
	}
	if deps.BlogHandler != nil {
		deps.BlogHandler.Register(api.Group("/blog", jwtMiddleware))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance", jwtMiddleware))
	}
	if deps.FeeHandler != nil {
		deps.FeeHandler.Register(api.Group("/fees", jwtMiddleware))
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api.Group("/profile", jwtMiddleware))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware, middleware.RequireRole(models.RoleStudent, models.RoleTeacher)))
	}
}
