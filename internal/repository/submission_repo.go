package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/models"
)

// SubmissionFilter narrows submission list queries.
type SubmissionFilter struct {
	StudentID      *string
	SubmissionType *string
	LessonID       *string
	ProjectType    *string
	IsProject      *bool
	Tags           []string
	Limit          int
	Offset         int
}

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, int64, error)
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	Delete(ctx context.Context, id uint) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).Preload("Student")
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, int64, error) {
	query := r.baseQuery(ctx)

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.SubmissionType != nil {
		query = query.Where("submission_type = ?", *filter.SubmissionType)
	}

	if filter.LessonID != nil {
		query = query.Where("lesson_id = ?", *filter.LessonID)
	}

	if filter.ProjectType != nil {
		query = query.Where("project_type = ?", *filter.ProjectType)
	}

	if filter.IsProject != nil {
		query = query.Where("is_project = ?", *filter.IsProject)
	}

	if len(filter.Tags) > 0 {
		// Match-any over the encoded tag list.
		tagQuery := r.db.Session(&gorm.Session{NewDB: true})
		matched := false
		for _, tag := range filter.Tags {
			trimmed := strings.TrimSpace(strings.ToLower(tag))
			if trimmed == "" {
				continue
			}
			tagQuery = tagQuery.Or("tags LIKE ?", "%|"+trimmed+"|%")
			matched = true
		}
		if matched {
			query = query.Where(tagQuery)
		}
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// Delete removes the submission row together with its feedback and votes.
func (r *submissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&models.SubmissionFeedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", id).Delete(&models.SubmissionVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Submission{}, id).Error
	})
}
