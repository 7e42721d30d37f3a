package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/dto"
	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/repository"
)

// FeedbackService attaches peer feedback to submissions.
type FeedbackService interface {
	Add(ctx context.Context, submissionID uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	List(ctx context.Context, submissionID uint, includePrivate bool) (dto.FeedbackListResponse, error)
}

type feedbackService struct {
	feedback    repository.FeedbackRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, subRepo repository.SubmissionRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedback:    feedbackRepo,
		submissions: subRepo,
		students:    studentRepo,
		validator:   validate,
		sanitizer:   bluemonday.UGCPolicy(),
		logger:      logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Add(ctx context.Context, submissionID uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrSubmissionNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	reviewer, err := s.students.Resolve(ctx, payload.ReviewerStudentID, payload.ReviewerFullName)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	// Privacy-by-default: feedback is private unless the reviewer opts out.
	isPrivate := true
	if payload.IsPrivate != nil {
		isPrivate = *payload.IsPrivate
	}

	feedback := models.SubmissionFeedback{
		SubmissionID:      submissionID,
		ReviewerStudentID: reviewer.StudentID,
		ReviewerRef:       reviewer.ID,
		FeedbackText:      s.sanitizer.Sanitize(payload.FeedbackText),
		Rating:            payload.Rating,
		IsPrivate:         isPrivate,
	}

	if err := s.feedback.Create(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}

	created, err := s.feedback.GetByID(ctx, feedback.ID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", submissionID).
		Uint("feedback_id", created.ID).
		Str("reviewer_student_id", created.ReviewerStudentID).
		Msg("feedback created")

	return dto.NewFeedbackResponse(created), nil
}

func (s *feedbackService) List(ctx context.Context, submissionID uint, includePrivate bool) (dto.FeedbackListResponse, error) {
	feedback, err := s.feedback.ListBySubmission(ctx, submissionID, includePrivate)
	if err != nil {
		return dto.FeedbackListResponse{}, err
	}

	responses := dto.NewFeedbackResponseSlice(feedback)

	return dto.FeedbackListResponse{
		Feedback: responses,
		Total:    len(responses),
	}, nil
}
