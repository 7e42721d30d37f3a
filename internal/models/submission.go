package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Submission represents a project artifact shared by a student, either an
// uploaded file or a link to a GitHub repository.
type Submission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      string    `gorm:"size:64;index;not null" json:"student_id"`
	StudentRef     uint      `gorm:"not null" json:"student_ref"`
	SubmissionType string    `gorm:"size:32;not null" json:"submission_type"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	FilePath       string    `gorm:"size:512" json:"file_path"`
	FileName       string    `gorm:"size:255" json:"file_name"`
	FileSize       *int64    `json:"file_size"`
	MimeType       string    `gorm:"size:128" json:"mime_type"`
	GithubURL      string    `gorm:"size:512" json:"github_url"`
	LessonID       string    `gorm:"size:64;index" json:"lesson_id"`
	TagsRaw        string    `gorm:"column:tags;type:text" json:"-"`
	ProjectType    string    `gorm:"size:32;not null;default:regular" json:"project_type"`
	IsProject      bool      `gorm:"not null;default:false" json:"is_project"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Tags           []string  `gorm:"-" json:"tags"`
	Student        Student   `gorm:"foreignKey:StudentRef;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"student"`
}

const (
	// SubmissionTypeScreenshot indicates an uploaded file artifact.
	SubmissionTypeScreenshot = "screenshot"
	// SubmissionTypeGithubRepo indicates a repository link artifact.
	SubmissionTypeGithubRepo = "github_repo"
)

const (
	// ProjectTypeMidterm marks a midterm project submission.
	ProjectTypeMidterm = "midterm"
	// ProjectTypeFinal marks a final project submission.
	ProjectTypeFinal = "final"
	// ProjectTypeRegular marks an ordinary submission.
	ProjectTypeRegular = "regular"
)

// HasFile reports whether the submission carries an uploaded blob.
func (s Submission) HasFile() bool {
	return s.FilePath != ""
}

// BeforeSave normalises tag data before persisting.
func (s *Submission) BeforeSave(tx *gorm.DB) error {
	s.TagsRaw = encodeTags(s.Tags)
	return nil
}

// AfterFind hydrates the tag list after retrieval.
func (s *Submission) AfterFind(tx *gorm.DB) error {
	s.Tags = decodeTags(s.TagsRaw)
	return nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(strings.ToLower(tag))
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "|" + strings.Join(cleaned, "|") + "|"
}

func decodeTags(raw string) []string {
	raw = strings.Trim(raw, "|")
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, "|")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		tags = append(tags, trimmed)
	}
	return tags
}
