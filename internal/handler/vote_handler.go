package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/learnify-app/learnify-api/internal/dto"
	"github.com/learnify-app/learnify-api/internal/service"
	"github.com/learnify-app/learnify-api/internal/utils"
)

// VoteHandler manages the peer-voting endpoints.
type VoteHandler struct {
	service service.VoteService
	logger  zerolog.Logger
}

// NewVoteHandler builds a vote handler instance.
func NewVoteHandler(service service.VoteService, logger zerolog.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  logger.With().Str("component", "vote_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *VoteHandler) Register(router fiber.Router) {
	router.Post("/:id/vote", h.cast)
	router.Get("/:id/votes", h.list)
}

func (h *VoteHandler) cast(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.VoteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	vote, err := h.service.Cast(c.Context(), submissionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Vote recorded successfully", fiber.Map{"vote": vote})
}

func (h *VoteHandler) list(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.Context(), submissionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Votes retrieved", result)
}

func (h *VoteHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Submission not found")
	case errors.Is(err, service.ErrNotProject), errors.Is(err, service.ErrSelfVote):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendValidationError(c, validationDetails(validationErrors))
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
