package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/models"
)

// FeedbackRepository defines data operations for submission feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.SubmissionFeedback) error
	GetByID(ctx context.Context, id uint) (models.SubmissionFeedback, error)
	ListBySubmission(ctx context.Context, submissionID uint, includePrivate bool) ([]models.SubmissionFeedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates the repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.SubmissionFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (models.SubmissionFeedback, error) {
	var feedback models.SubmissionFeedback
	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		First(&feedback, id).Error; err != nil {
		return models.SubmissionFeedback{}, err
	}

	return feedback, nil
}

// ListBySubmission returns feedback newest first. Private rows are excluded
// entirely unless includePrivate is set.
func (r *feedbackRepository) ListBySubmission(ctx context.Context, submissionID uint, includePrivate bool) ([]models.SubmissionFeedback, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SubmissionFeedback{}).
		Preload("Reviewer").
		Where("submission_id = ?", submissionID)

	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var feedback []models.SubmissionFeedback
	if err := query.Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}

	return feedback, nil
}
