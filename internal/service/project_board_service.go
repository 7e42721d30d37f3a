package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/learnify-app/learnify-api/internal/dto"
	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/repository"
)

const leaderboardCacheKey = "leaderboard:submissions"

// ProjectBoardService serves the ranked project listing and the leaderboard.
// The vote score of a submission is the weighted sum of its per-category vote
// counts; categories without a configured weight count as 1.
type ProjectBoardService interface {
	Projects(ctx context.Context, projectType string, limit, offset int) (dto.ProjectListResponse, error)
	Leaderboard(ctx context.Context) (dto.LeaderboardResponse, error)
}

type projectBoardService struct {
	scores  repository.ScoreRepository
	storage FileStorage
	cache   *redis.Client
	ttl     time.Duration
	weights map[string]float64
	logger  zerolog.Logger
}

// NewProjectBoardService constructs a ProjectBoardService instance. The cache
// client may be nil, in which case every read recomputes the ranking.
func NewProjectBoardService(scoreRepo repository.ScoreRepository, storage FileStorage, cache *redis.Client, ttl time.Duration, weights map[string]float64, logger zerolog.Logger) ProjectBoardService {
	return &projectBoardService{
		scores:  scoreRepo,
		storage: storage,
		cache:   cache,
		ttl:     ttl,
		weights: weights,
		logger:  logger.With().Str("component", "project_board_service").Logger(),
	}
}

// scoredProject pairs a submission with its derived aggregates before ranking.
type scoredProject struct {
	submission    models.Submission
	breakdown     map[string]int64
	totalVotes    int64
	voteScore     float64
	feedbackCount int64
	averageRating *float64
}

func (s *projectBoardService) Projects(ctx context.Context, projectType string, limit, offset int) (dto.ProjectListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var typeFilter *string
	if projectType != "" && projectType != "all" {
		typeFilter = &projectType
	}

	scored, err := s.collect(ctx, typeFilter)
	if err != nil {
		return dto.ProjectListResponse{}, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].voteScore != scored[j].voteScore {
			return scored[i].voteScore > scored[j].voteScore
		}
		return scored[i].submission.CreatedAt.After(scored[j].submission.CreatedAt)
	})

	total := int64(len(scored))
	page := paginate(scored, limit, offset)

	projects := make([]dto.ProjectScoreResponse, 0, len(page))
	for _, item := range page {
		projects = append(projects, dto.ProjectScoreResponse{
			SubmissionResponse: dto.NewSubmissionResponse(item.submission, s.storage.PublicURL(item.submission.FilePath)),
			VoteScore:          item.voteScore,
			TotalVotes:         item.totalVotes,
			VoteBreakdown:      item.breakdown,
			FeedbackCount:      item.feedbackCount,
			AverageRating:      item.averageRating,
		})
	}

	showingType := projectType
	if showingType == "" {
		showingType = "all"
	}

	return dto.ProjectListResponse{
		Projects: projects,
		Total:    total,
		Showing: dto.ProjectListShowing{
			Limit:             limit,
			Offset:            offset,
			ProjectTypeFilter: showingType,
		},
	}, nil
}

func (s *projectBoardService) Leaderboard(ctx context.Context) (dto.LeaderboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var response dto.LeaderboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("leaderboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	scored, err := s.collect(ctx, nil)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].voteScore != scored[j].voteScore {
			return scored[i].voteScore > scored[j].voteScore
		}
		return ratingValue(scored[i].averageRating) > ratingValue(scored[j].averageRating)
	})

	entries := make([]dto.LeaderboardEntry, 0, len(scored))
	for i, item := range scored {
		entry := dto.LeaderboardEntry{
			Rank:          i + 1,
			SubmissionID:  item.submission.ID,
			Title:         item.submission.Title,
			StudentID:     item.submission.StudentID,
			ProjectType:   item.submission.ProjectType,
			TotalVotes:    item.totalVotes,
			VoteScore:     item.voteScore,
			FeedbackCount: item.feedbackCount,
			AverageRating: item.averageRating,
		}
		if item.submission.Student.ID != 0 {
			entry.StudentName = item.submission.Student.FullName
		}
		entries = append(entries, entry)
	}

	response := dto.LeaderboardResponse{
		Leaderboard: entries,
		Total:       len(entries),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return response, nil
}

// collect joins project submissions with their vote and rating aggregates.
func (s *projectBoardService) collect(ctx context.Context, projectType *string) ([]scoredProject, error) {
	submissions, err := s.scores.ListProjects(ctx, projectType)
	if err != nil {
		return nil, err
	}

	tallies, err := s.scores.VoteTallies(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.scores.RatingStats(ctx)
	if err != nil {
		return nil, err
	}

	breakdowns := make(map[uint]map[string]int64)
	for _, tally := range tallies {
		if breakdowns[tally.SubmissionID] == nil {
			breakdowns[tally.SubmissionID] = make(map[string]int64)
		}
		breakdowns[tally.SubmissionID][tally.VoteType] = tally.Count
	}

	ratings := make(map[uint]repository.RatingStat, len(stats))
	for _, stat := range stats {
		ratings[stat.SubmissionID] = stat
	}

	scored := make([]scoredProject, 0, len(submissions))
	for _, submission := range submissions {
		breakdown := breakdowns[submission.ID]
		if breakdown == nil {
			breakdown = map[string]int64{}
		}

		item := scoredProject{
			submission: submission,
			breakdown:  breakdown,
		}

		for voteType, count := range breakdown {
			item.totalVotes += count
			item.voteScore += float64(count) * s.weightFor(voteType)
		}

		if stat, ok := ratings[submission.ID]; ok {
			item.feedbackCount = stat.FeedbackCount
			item.averageRating = stat.AverageRating
		}

		scored = append(scored, item)
	}

	return scored, nil
}

// invalidateLeaderboardCache drops the cached leaderboard after a write that
// changes the ranking. The cache client may be nil.
func invalidateLeaderboardCache(ctx context.Context, cache *redis.Client, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
	}
}

func (s *projectBoardService) weightFor(voteType string) float64 {
	if weight, ok := s.weights[voteType]; ok {
		return weight
	}
	return 1
}

func ratingValue(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return *rating
}

func paginate(items []scoredProject, limit, offset int) []scoredProject {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
