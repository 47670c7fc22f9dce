package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/voxhire/voxhire-api/internal/config"
	"github.com/voxhire/voxhire-api/internal/handler"
	"github.com/voxhire/voxhire-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PositionHandler       *handler.PositionHandler
	CandidateHandler      *handler.CandidateHandler
	AdminInterviewHandler *handler.AdminInterviewHandler
	InterviewHandler      *handler.InterviewHandler
	PipelineHandler       *handler.PipelineHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Admin surface: record management and pipeline triggers.
	admin := api.Group("/admin")
	if deps.PositionHandler != nil {
		deps.PositionHandler.Register(admin.Group("/positions"))
	}
	if deps.CandidateHandler != nil {
		deps.CandidateHandler.Register(admin.Group("/candidates"))
	}
	if deps.AdminInterviewHandler != nil {
		deps.AdminInterviewHandler.Register(admin.Group("/interviews"))
	}
	if deps.PipelineHandler != nil {
		deps.PipelineHandler.Register(admin.Group("/pipeline"))
	}

	// Candidate surface: session routes addressed by access token.
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.Register(api.Group("/interview"))
	}
}
