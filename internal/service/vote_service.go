package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/dto"
	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/observability"
	"github.com/learnify-app/learnify-api/internal/repository"
)

var (
	// ErrNotProject indicates a vote targeted a submission that is not a project.
	ErrNotProject = errors.New("can only vote on project submissions")
	// ErrSelfVote indicates a student tried to vote for their own submission.
	ErrSelfVote = errors.New("cannot vote for your own submission")
)

// VoteService casts and lists categorical votes on project submissions.
type VoteService interface {
	Cast(ctx context.Context, submissionID uint, payload dto.VoteCreateRequest) (dto.VoteResponse, error)
	List(ctx context.Context, submissionID uint) (dto.VoteListResponse, error)
}

type voteService struct {
	votes       repository.VoteRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	validator   *validator.Validate
	cache       *redis.Client
	logger      zerolog.Logger
}

// NewVoteService constructs a VoteService instance. The cache client may be
// nil; a recorded vote drops the cached leaderboard so rankings stay fresh.
func NewVoteService(voteRepo repository.VoteRepository, subRepo repository.SubmissionRepository, studentRepo repository.StudentRepository, validate *validator.Validate, cache *redis.Client, logger zerolog.Logger) VoteService {
	return &voteService{
		votes:       voteRepo,
		submissions: subRepo,
		students:    studentRepo,
		validator:   validate,
		cache:       cache,
		logger:      logger.With().Str("component", "vote_service").Logger(),
	}
}

func (s *voteService) Cast(ctx context.Context, submissionID uint, payload dto.VoteCreateRequest) (dto.VoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VoteResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VoteResponse{}, ErrSubmissionNotFound
		}
		return dto.VoteResponse{}, err
	}

	if !submission.IsProject {
		return dto.VoteResponse{}, ErrNotProject
	}

	voterCode := strings.TrimSpace(payload.VoterStudentID)
	if voterCode == submission.StudentID {
		return dto.VoteResponse{}, ErrSelfVote
	}

	voter, err := s.students.Resolve(ctx, voterCode, payload.VoterFullName)
	if err != nil {
		return dto.VoteResponse{}, err
	}

	voteType := payload.VoteType
	if voteType == "" {
		voteType = models.VoteTypeBestProject
	}

	vote := models.SubmissionVote{
		SubmissionID:   submissionID,
		VoterStudentID: voter.StudentID,
		VoterRef:       voter.ID,
		VoteType:       voteType,
	}

	stored, err := s.votes.Upsert(ctx, &vote)
	if err != nil {
		return dto.VoteResponse{}, err
	}

	observability.VotesCast().WithLabelValues(voteType).Inc()
	invalidateLeaderboardCache(ctx, s.cache, s.logger)

	s.logger.Info().
		Uint("submission_id", submissionID).
		Str("voter_student_id", stored.VoterStudentID).
		Str("vote_type", stored.VoteType).
		Msg("vote recorded")

	return dto.NewVoteResponse(stored), nil
}

func (s *voteService) List(ctx context.Context, submissionID uint) (dto.VoteListResponse, error) {
	votes, err := s.votes.ListBySubmission(ctx, submissionID)
	if err != nil {
		return dto.VoteListResponse{}, err
	}

	summary, err := s.votes.CountsByType(ctx, submissionID)
	if err != nil {
		return dto.VoteListResponse{}, err
	}

	responses := dto.NewVoteResponseSlice(votes)

	return dto.VoteListResponse{
		Votes:   responses,
		Total:   len(responses),
		Summary: summary,
	}, nil
}
