package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/learnify-app/learnify-api/internal/service"
	"github.com/learnify-app/learnify-api/internal/utils"
)

// ProjectBoardHandler serves the ranked project listing and leaderboard.
type ProjectBoardHandler struct {
	service service.ProjectBoardService
	logger  zerolog.Logger
}

// NewProjectBoardHandler builds a project board handler instance.
func NewProjectBoardHandler(service service.ProjectBoardService, logger zerolog.Logger) *ProjectBoardHandler {
	return &ProjectBoardHandler{
		service: service,
		logger:  logger.With().Str("component", "project_board_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. These routes must
// be registered before the parameterised submission routes so "projects" and
// "leaderboard" are not captured as submission IDs.
func (h *ProjectBoardHandler) Register(router fiber.Router) {
	router.Get("/projects", h.projects)
	router.Get("/leaderboard", h.leaderboard)
}

func (h *ProjectBoardHandler) projects(c *fiber.Ctx) error {
	projectType := c.Query("project_type", "all")

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if limit < 0 || offset < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "limit and offset must be non-negative")
	}

	result, err := h.service.Projects(c.Context(), projectType, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	return utils.SendSuccess(c, "Projects retrieved", result)
}

func (h *ProjectBoardHandler) leaderboard(c *fiber.Ctx) error {
	result, err := h.service.Leaderboard(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch leaderboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to fetch leaderboard")
	}

	return utils.SendSuccess(c, "Leaderboard retrieved", result)
}
