package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/models"
)

// setupTestDB opens a per-test in-memory database so row counts never bleed
// between tests in the package.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Submission{}, &models.SubmissionFeedback{}, &models.SubmissionVote{}))

	return db
}

func createStudent(t *testing.T, db *gorm.DB, code, name string) models.Student {
	t.Helper()

	student := models.Student{StudentID: code, FullName: name}
	require.NoError(t, db.Create(&student).Error)

	return student
}

func createSubmission(t *testing.T, db *gorm.DB, student models.Student, mutate func(*models.Submission)) models.Submission {
	t.Helper()

	submission := models.Submission{
		StudentID:      student.StudentID,
		StudentRef:     student.ID,
		SubmissionType: models.SubmissionTypeGithubRepo,
		Title:          "Weather App",
		GithubURL:      "https://github.com/example/weather-app",
		ProjectType:    models.ProjectTypeRegular,
	}
	if mutate != nil {
		mutate(&submission)
	}
	require.NoError(t, db.Create(&submission).Error)

	return submission
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

var testCtx = context.Background()
