package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/models"
)

func TestSubmissionRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)

	dana := createStudent(t, db, "D001", "Dana")
	eli := createStudent(t, db, "D002", "Eli")

	createSubmission(t, db, dana, func(s *models.Submission) {
		s.Title = "Weather App"
		s.LessonID = "lesson-3"
		s.Tags = []string{"go", "api"}
		s.IsProject = true
		s.ProjectType = models.ProjectTypeMidterm
		s.CreatedAt = time.Now().Add(-time.Hour)
	})
	createSubmission(t, db, eli, func(s *models.Submission) {
		s.Title = "Todo List"
		s.SubmissionType = models.SubmissionTypeScreenshot
		s.GithubURL = ""
		s.FilePath = "D002/abc.png"
		s.Tags = []string{"ui"}
	})

	all, total, err := repo.List(testCtx, SubmissionFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, all, 2)
	require.Equal(t, "Todo List", all[0].Title, "newest submission should come first")
	require.Equal(t, "Dana", all[1].Student.FullName, "student association should be loaded")

	byStudent, total, err := repo.List(testCtx, SubmissionFilter{StudentID: strPtr("D001")})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Weather App", byStudent[0].Title)

	byType, _, err := repo.List(testCtx, SubmissionFilter{SubmissionType: strPtr(models.SubmissionTypeScreenshot)})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "Todo List", byType[0].Title)

	byLesson, _, err := repo.List(testCtx, SubmissionFilter{LessonID: strPtr("lesson-3")})
	require.NoError(t, err)
	require.Len(t, byLesson, 1)

	projects, _, err := repo.List(testCtx, SubmissionFilter{IsProject: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, models.ProjectTypeMidterm, projects[0].ProjectType)

	paged, total, err := repo.List(testCtx, SubmissionFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), total, "total must count beyond the page")
	require.Len(t, paged, 1)
	require.Equal(t, "Weather App", paged[0].Title)
}

func TestSubmissionRepositoryListMatchesAnyTag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)

	dana := createStudent(t, db, "D001", "Dana")
	createSubmission(t, db, dana, func(s *models.Submission) {
		s.Title = "Weather App"
		s.Tags = []string{"Go", "API"}
	})
	createSubmission(t, db, dana, func(s *models.Submission) {
		s.Title = "Todo List"
		s.Tags = []string{"ui"}
	})

	matched, _, err := repo.List(testCtx, SubmissionFilter{Tags: []string{"api", "unknown"}})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Weather App", matched[0].Title)
	require.Equal(t, []string{"go", "api"}, matched[0].Tags, "tags should round-trip lowercased")

	none, _, err := repo.List(testCtx, SubmissionFilter{Tags: []string{"unknown"}})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSubmissionRepositoryGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)

	_, err := repo.GetByID(testCtx, 999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSubmissionRepositoryDeleteRemovesChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)

	dana := createStudent(t, db, "D001", "Dana")
	eli := createStudent(t, db, "D002", "Eli")
	submission := createSubmission(t, db, dana, func(s *models.Submission) { s.IsProject = true })

	require.NoError(t, db.Create(&models.SubmissionFeedback{
		SubmissionID:      submission.ID,
		ReviewerStudentID: eli.StudentID,
		ReviewerRef:       eli.ID,
		FeedbackText:      "Nice!",
	}).Error)
	require.NoError(t, db.Create(&models.SubmissionVote{
		SubmissionID:   submission.ID,
		VoterStudentID: eli.StudentID,
		VoterRef:       eli.ID,
		VoteType:       models.VoteTypeBestProject,
	}).Error)

	require.NoError(t, repo.Delete(testCtx, submission.ID))

	_, err := repo.GetByID(testCtx, submission.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var feedbackCount, voteCount int64
	require.NoError(t, db.Model(&models.SubmissionFeedback{}).Where("submission_id = ?", submission.ID).Count(&feedbackCount).Error)
	require.NoError(t, db.Model(&models.SubmissionVote{}).Where("submission_id = ?", submission.ID).Count(&voteCount).Error)
	require.Zero(t, feedbackCount)
	require.Zero(t, voteCount)
}
