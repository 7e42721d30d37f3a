package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

type studentRepoStub struct {
	students map[string]models.Student
	nextID   uint
}

func newStudentRepoStub() *studentRepoStub {
	return &studentRepoStub{students: map[string]models.Student{}}
}

func (s *studentRepoStub) Resolve(_ context.Context, studentID, fullName string) (models.Student, error) {
	if existing, ok := s.students[studentID]; ok {
		return existing, nil
	}
	if fullName == "" {
		fullName = studentID
	}
	s.nextID++
	student := models.Student{ID: s.nextID, StudentID: studentID, FullName: fullName}
	s.students[studentID] = student
	return student, nil
}

func (s *studentRepoStub) GetByCode(_ context.Context, studentID string) (models.Student, error) {
	if existing, ok := s.students[studentID]; ok {
		return existing, nil
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

type submissionRepoStub struct {
	rows       map[uint]models.Submission
	nextID     uint
	createErr  error
	createdIDs []uint
}

func newSubmissionRepoStub() *submissionRepoStub {
	return &submissionRepoStub{rows: map[uint]models.Submission{}}
}

func (s *submissionRepoStub) List(_ context.Context, _ repository.SubmissionFilter) ([]models.Submission, int64, error) {
	rows := make([]models.Submission, 0, len(s.rows))
	for _, row := range s.rows {
		rows = append(rows, row)
	}
	return rows, int64(len(rows)), nil
}

func (s *submissionRepoStub) GetByID(_ context.Context, id uint) (models.Submission, error) {
	if row, ok := s.rows[id]; ok {
		return row, nil
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (s *submissionRepoStub) Create(_ context.Context, submission *models.Submission) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	submission.ID = s.nextID
	s.rows[submission.ID] = *submission
	s.createdIDs = append(s.createdIDs, submission.ID)
	return nil
}

func (s *submissionRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

type feedbackRepoStub struct {
	rows   map[uint]models.SubmissionFeedback
	nextID uint
}

func newFeedbackRepoStub() *feedbackRepoStub {
	return &feedbackRepoStub{rows: map[uint]models.SubmissionFeedback{}}
}

func (f *feedbackRepoStub) Create(_ context.Context, feedback *models.SubmissionFeedback) error {
	f.nextID++
	feedback.ID = f.nextID
	f.rows[feedback.ID] = *feedback
	return nil
}

func (f *feedbackRepoStub) GetByID(_ context.Context, id uint) (models.SubmissionFeedback, error) {
	if row, ok := f.rows[id]; ok {
		row.Reviewer = models.Student{ID: row.ReviewerRef, StudentID: row.ReviewerStudentID, FullName: "Reviewer " + row.ReviewerStudentID}
		return row, nil
	}
	return models.SubmissionFeedback{}, gorm.ErrRecordNotFound
}

func (f *feedbackRepoStub) ListBySubmission(_ context.Context, submissionID uint, includePrivate bool) ([]models.SubmissionFeedback, error) {
	rows := make([]models.SubmissionFeedback, 0, len(f.rows))
	for _, row := range f.rows {
		if row.SubmissionID != submissionID {
			continue
		}
		if !includePrivate && row.IsPrivate {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type voteRepoStub struct {
	rows   map[string]models.SubmissionVote
	nextID uint
}

func newVoteRepoStub() *voteRepoStub {
	return &voteRepoStub{rows: map[string]models.SubmissionVote{}}
}

func voteKey(vote models.SubmissionVote) string {
	return fmt.Sprintf("%d/%s/%s", vote.SubmissionID, vote.VoterStudentID, vote.VoteType)
}

func (v *voteRepoStub) Upsert(_ context.Context, vote *models.SubmissionVote) (models.SubmissionVote, error) {
	key := voteKey(*vote)
	if existing, ok := v.rows[key]; ok {
		existing.VoterRef = vote.VoterRef
		v.rows[key] = existing
	} else {
		v.nextID++
		vote.ID = v.nextID
		v.rows[key] = *vote
	}
	stored := v.rows[key]
	stored.Voter = models.Student{ID: stored.VoterRef, StudentID: stored.VoterStudentID, FullName: "Voter " + stored.VoterStudentID}
	return stored, nil
}

func (v *voteRepoStub) ListBySubmission(_ context.Context, submissionID uint) ([]models.SubmissionVote, error) {
	rows := make([]models.SubmissionVote, 0, len(v.rows))
	for _, row := range v.rows {
		if row.SubmissionID == submissionID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (v *voteRepoStub) CountsByType(_ context.Context, submissionID uint) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, row := range v.rows {
		if row.SubmissionID == submissionID {
			counts[row.VoteType]++
		}
	}
	return counts, nil
}

type scoreRepoStub struct {
	projects []models.Submission
	tallies  []repository.VoteTally
	stats    []repository.RatingStat
}

func (s *scoreRepoStub) ListProjects(_ context.Context, projectType *string) ([]models.Submission, error) {
	if projectType == nil {
		return s.projects, nil
	}
	filtered := make([]models.Submission, 0, len(s.projects))
	for _, project := range s.projects {
		if project.ProjectType == *projectType {
			filtered = append(filtered, project)
		}
	}
	return filtered, nil
}

func (s *scoreRepoStub) VoteTallies(_ context.Context) ([]repository.VoteTally, error) {
	return s.tallies, nil
}

func (s *scoreRepoStub) RatingStats(_ context.Context) ([]repository.RatingStat, error) {
	return s.stats, nil
}

type storageStub struct {
	uploadErr error
	deleteErr error
	uploaded  []string
	deleted   []string
}

func (s *storageStub) Upload(_ context.Context, ownerID, name string, _ io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	path := ownerID + "/" + name
	s.uploaded = append(s.uploaded, path)
	return path, nil
}

func (s *storageStub) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://cdn.test/" + path
}

func (s *storageStub) Delete(_ context.Context, path string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, path)
	return nil
}

var errStubStorage = errors.New("storage unavailable")
