package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/learnify-app/learnify-api/internal/dto"
	"github.com/learnify-app/learnify-api/internal/service"
	"github.com/learnify-app/learnify-api/internal/utils"
)

// SubmissionHandler manages the submission CRUD endpoints.
type SubmissionHandler struct {
	service   service.SubmissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	payload := dto.SubmissionCreateRequest{
		StudentID:      strings.TrimSpace(c.FormValue("student_id")),
		FullName:       strings.TrimSpace(c.FormValue("full_name")),
		SubmissionType: strings.TrimSpace(c.FormValue("submission_type")),
		Title:          strings.TrimSpace(c.FormValue("title")),
		Description:    c.FormValue("description"),
		GithubURL:      strings.TrimSpace(c.FormValue("github_url")),
		LessonID:       strings.TrimSpace(c.FormValue("lesson_id")),
		ProjectType:    strings.TrimSpace(c.FormValue("project_type")),
	}

	if tags := c.FormValue("tags"); tags != "" {
		payload.Tags = splitAndTrim(tags)
	}

	if raw := strings.TrimSpace(c.FormValue("is_project")); raw != "" {
		isProject, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.SendValidationError(c, []utils.FieldError{
				{Field: "is_project", Rule: "boolean", Message: "is_project must be a boolean"},
			})
		}
		payload.IsProject = isProject
	}

	// The file part is optional at parse time; the service enforces the
	// kind-specific requirement.
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	submission, err := h.service.Create(c.Context(), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Submission created successfully", fiber.Map{"submission": submission})
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	filter := dto.SubmissionListFilter{}

	if studentID := c.Query("student_id"); studentID != "" {
		filter.StudentID = &studentID
	}
	if submissionType := c.Query("submission_type"); submissionType != "" {
		filter.SubmissionType = &submissionType
	}
	if lessonID := c.Query("lesson_id"); lessonID != "" {
		filter.LessonID = &lessonID
	}
	if projectType := c.Query("project_type"); projectType != "" {
		filter.ProjectType = &projectType
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = splitAndTrim(tags)
	}

	isProject, err := parseQueryBool(c, "is_project")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	filter.IsProject = isProject

	if filter.Limit, err = parseQueryInt(c, "limit"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.Offset, err = parseQueryInt(c, "offset"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Submissions retrieved", result)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Submission retrieved", fiber.Map{"submission": submission})
}

func (h *SubmissionHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Submission deleted successfully", nil)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Submission not found")
	case errors.As(err, &validationErrors):
		return utils.SendValidationError(c, validationDetails(validationErrors))
	case errors.Is(err, service.ErrFileRequired),
		errors.Is(err, service.ErrGithubURLRequired),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error().Err(err).Msg("blob storage failure")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to upload file")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
