package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/repository"
)

func floatPtr(value float64) *float64 {
	return &value
}

func boardFixture() *scoreRepoStub {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &scoreRepoStub{
		projects: []models.Submission{
			{ID: 1, StudentID: "D001", Title: "Chat App", ProjectType: models.ProjectTypeFinal, IsProject: true, CreatedAt: base},
			{ID: 2, StudentID: "D002", Title: "Pixel Game", ProjectType: models.ProjectTypeMidterm, IsProject: true, CreatedAt: base.Add(time.Hour)},
			{ID: 3, StudentID: "D003", Title: "Weather Bot", ProjectType: models.ProjectTypeFinal, IsProject: true, CreatedAt: base.Add(2 * time.Hour)},
		},
		tallies: []repository.VoteTally{
			{SubmissionID: 1, VoteType: models.VoteTypeBestProject, Count: 2},
			{SubmissionID: 2, VoteType: models.VoteTypeBestProject, Count: 1},
			{SubmissionID: 2, VoteType: models.VoteTypeMostCreative, Count: 3},
			{SubmissionID: 3, VoteType: models.VoteTypeBestProject, Count: 2},
		},
		stats: []repository.RatingStat{
			{SubmissionID: 1, FeedbackCount: 2, AverageRating: floatPtr(4.5)},
			{SubmissionID: 3, FeedbackCount: 1, AverageRating: floatPtr(3.0)},
		},
	}
}

func newBoardServiceForTest(scores *scoreRepoStub, cache *redis.Client, weights map[string]float64) ProjectBoardService {
	return NewProjectBoardService(scores, &storageStub{}, cache, time.Minute, weights, testLogger())
}

func TestProjectsRankedByVoteScore(t *testing.T) {
	svc := newBoardServiceForTest(boardFixture(), nil, nil)

	result, err := svc.Projects(context.Background(), "all", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Total)
	require.Len(t, result.Projects, 3)

	// Unweighted, submission 2 leads with 4 votes. Submissions 1 and 3 tie on
	// 2 votes and the newer submission wins.
	require.Equal(t, uint(2), result.Projects[0].ID)
	require.Equal(t, float64(4), result.Projects[0].VoteScore)
	require.Equal(t, int64(4), result.Projects[0].TotalVotes)
	require.Equal(t, uint(3), result.Projects[1].ID)
	require.Equal(t, uint(1), result.Projects[2].ID)
}

func TestProjectsAppliesConfiguredWeights(t *testing.T) {
	weights := map[string]float64{
		models.VoteTypeBestProject:  3,
		models.VoteTypeMostCreative: 1,
	}
	svc := newBoardServiceForTest(boardFixture(), nil, weights)

	result, err := svc.Projects(context.Background(), "all", 10, 0)
	require.NoError(t, err)

	// best_project votes now dominate: 1 and 3 score 6, 2 scores 6 as well
	// (3*1 + 1*3), so creation time breaks the three-way tie.
	require.Equal(t, uint(3), result.Projects[0].ID)
	require.Equal(t, float64(6), result.Projects[0].VoteScore)
	require.Equal(t, uint(2), result.Projects[1].ID)
	require.Equal(t, uint(1), result.Projects[2].ID)
}

func TestProjectsFiltersByTypeAndPaginates(t *testing.T) {
	svc := newBoardServiceForTest(boardFixture(), nil, nil)

	result, err := svc.Projects(context.Background(), models.ProjectTypeFinal, 1, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Total)
	require.Len(t, result.Projects, 1)
	require.Equal(t, uint(1), result.Projects[0].ID)
	require.Equal(t, models.ProjectTypeFinal, result.Showing.ProjectTypeFilter)
	require.Equal(t, 1, result.Showing.Limit)
	require.Equal(t, 1, result.Showing.Offset)
}

func TestProjectsOffsetBeyondEnd(t *testing.T) {
	svc := newBoardServiceForTest(boardFixture(), nil, nil)

	result, err := svc.Projects(context.Background(), "all", 10, 50)
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Total)
	require.Empty(t, result.Projects)
}

func TestLeaderboardRanksAndBreaksTiesByRating(t *testing.T) {
	svc := newBoardServiceForTest(boardFixture(), nil, nil)

	result, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)

	// Submission 2 leads on votes; 1 and 3 tie on votes and the higher
	// average rating decides.
	require.Equal(t, uint(2), result.Leaderboard[0].SubmissionID)
	require.Equal(t, 1, result.Leaderboard[0].Rank)
	require.Equal(t, uint(1), result.Leaderboard[1].SubmissionID)
	require.Equal(t, 2, result.Leaderboard[1].Rank)
	require.Equal(t, uint(3), result.Leaderboard[2].SubmissionID)
	require.Equal(t, 3, result.Leaderboard[2].Rank)
	require.InDelta(t, 4.5, *result.Leaderboard[1].AverageRating, 0.001)
}

func TestLeaderboardRefreshesAfterSubmissionDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	scores := boardFixture()
	board := newBoardServiceForTest(scores, cache, nil)

	subs := newSubmissionRepoStub()
	subs.rows[2] = scores.projects[1]
	submissions := NewSubmissionService(subs, newStudentRepoStub(), testValidator(), &storageStub{}, 10, cache, testLogger())

	first, err := board.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, first.Total)
	require.True(t, mr.Exists(leaderboardCacheKey))

	require.NoError(t, submissions.Delete(context.Background(), 2))
	require.False(t, mr.Exists(leaderboardCacheKey), "delete must drop the cached leaderboard")

	scores.projects = []models.Submission{scores.projects[0], scores.projects[2]}
	scores.tallies = scores.tallies[:1]

	refreshed, err := board.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, refreshed.Total)
	for _, entry := range refreshed.Leaderboard {
		require.NotEqual(t, uint(2), entry.SubmissionID)
	}
}

func TestLeaderboardServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	scores := boardFixture()
	svc := newBoardServiceForTest(scores, cache, nil)

	first, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.True(t, mr.Exists(leaderboardCacheKey))

	// A change to the underlying data must not surface until the cache
	// entry expires.
	scores.tallies = nil
	cached, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, cached)

	mr.FastForward(2 * time.Minute)
	refreshed, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, float64(0), refreshed.Leaderboard[0].VoteScore)
}
