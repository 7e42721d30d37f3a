package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/learnify-app/learnify-api/internal/config"
	"github.com/learnify-app/learnify-api/internal/handler"
	"github.com/learnify-app/learnify-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SubmissionHandler   *handler.SubmissionHandler
	FeedbackHandler     *handler.FeedbackHandler
	VoteHandler         *handler.VoteHandler
	ProjectBoardHandler *handler.ProjectBoardHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	submissions := api.Group("/submissions")

	// Static project board routes come first so they are not swallowed by
	// the ":id" parameter.
	if deps.ProjectBoardHandler != nil {
		deps.ProjectBoardHandler.Register(submissions)
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(submissions)
	}

	if deps.VoteHandler != nil {
		deps.VoteHandler.Register(submissions)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(submissions)
	}
}
