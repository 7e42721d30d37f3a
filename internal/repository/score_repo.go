package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/models"
)

// VoteTally carries the vote count for one (submission, category) pair.
type VoteTally struct {
	SubmissionID uint   `gorm:"column:submission_id"`
	VoteType     string `gorm:"column:vote_type"`
	Count        int64  `gorm:"column:count"`
}

// RatingStat aggregates feedback rows for one submission. AverageRating is nil
// when no feedback carries a rating.
type RatingStat struct {
	SubmissionID  uint     `gorm:"column:submission_id"`
	FeedbackCount int64    `gorm:"column:feedback_count"`
	AverageRating *float64 `gorm:"column:average_rating"`
}

// ScoreRepository supplies the raw aggregates behind the project board and
// leaderboard. Score weighting is applied by the service layer.
type ScoreRepository interface {
	ListProjects(ctx context.Context, projectType *string) ([]models.Submission, error)
	VoteTallies(ctx context.Context) ([]VoteTally, error)
	RatingStats(ctx context.Context) ([]RatingStat, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository instantiates the repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) ListProjects(ctx context.Context, projectType *string) ([]models.Submission, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Preload("Student").
		Where("is_project = ?", true)

	if projectType != nil {
		query = query.Where("project_type = ?", *projectType)
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *scoreRepository) VoteTallies(ctx context.Context) ([]VoteTally, error) {
	var tallies []VoteTally
	if err := r.db.WithContext(ctx).
		Model(&models.SubmissionVote{}).
		Select("submission_id, vote_type, COUNT(*) AS count").
		Group("submission_id, vote_type").
		Find(&tallies).Error; err != nil {
		return nil, err
	}

	return tallies, nil
}

func (r *scoreRepository) RatingStats(ctx context.Context) ([]RatingStat, error) {
	var stats []RatingStat
	if err := r.db.WithContext(ctx).
		Model(&models.SubmissionFeedback{}).
		Select("submission_id, COUNT(*) AS feedback_count, AVG(rating) AS average_rating").
		Group("submission_id").
		Find(&stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
