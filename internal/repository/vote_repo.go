package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnify-app/learnify-api/internal/models"
)

// VoteRepository defines data operations for submission votes.
type VoteRepository interface {
	Upsert(ctx context.Context, vote *models.SubmissionVote) (models.SubmissionVote, error)
	ListBySubmission(ctx context.Context, submissionID uint) ([]models.SubmissionVote, error)
	CountsByType(ctx context.Context, submissionID uint) (map[string]int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository instantiates the repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Upsert writes the vote atomically on the (submission, voter, vote_type)
// uniqueness key. A repeated cast with the same key updates the existing row
// instead of appending, so concurrent casts converge to a single row.
func (r *voteRepository) Upsert(ctx context.Context, vote *models.SubmissionVote) (models.SubmissionVote, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "submission_id"},
				{Name: "voter_student_id"},
				{Name: "vote_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"voter_ref", "updated_at"}),
		}).
		Create(vote).Error; err != nil {
		return models.SubmissionVote{}, err
	}

	var stored models.SubmissionVote
	if err := r.db.WithContext(ctx).
		Preload("Voter").
		Where("submission_id = ? AND voter_student_id = ? AND vote_type = ?",
			vote.SubmissionID, vote.VoterStudentID, vote.VoteType).
		First(&stored).Error; err != nil {
		return models.SubmissionVote{}, err
	}

	return stored, nil
}

func (r *voteRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]models.SubmissionVote, error) {
	var votes []models.SubmissionVote
	if err := r.db.WithContext(ctx).
		Model(&models.SubmissionVote{}).
		Preload("Voter").
		Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		Find(&votes).Error; err != nil {
		return nil, err
	}

	return votes, nil
}

func (r *voteRepository) CountsByType(ctx context.Context, submissionID uint) (map[string]int64, error) {
	type typeCount struct {
		VoteType string
		Count    int64
	}

	var rows []typeCount
	if err := r.db.WithContext(ctx).
		Model(&models.SubmissionVote{}).
		Select("vote_type, COUNT(*) AS count").
		Where("submission_id = ?", submissionID).
		Group("vote_type").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.VoteType] = row.Count
	}

	return counts, nil
}
