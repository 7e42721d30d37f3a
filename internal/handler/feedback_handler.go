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

// FeedbackHandler manages the peer-feedback endpoints.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler builds a feedback handler instance.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("/:id/feedback", h.create)
	router.Get("/:id/feedback", h.list)
}

func (h *FeedbackHandler) create(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.FeedbackCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := h.service.Add(c.Context(), submissionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Feedback created successfully", fiber.Map{"feedback": feedback})
}

func (h *FeedbackHandler) list(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	includePrivate := c.Query("include_private") == "true"

	result, err := h.service.List(c.Context(), submissionID, includePrivate)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Feedback retrieved", result)
}

func (h *FeedbackHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Submission not found")
	case errors.As(err, &validationErrors):
		return utils.SendValidationError(c, validationDetails(validationErrors))
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
