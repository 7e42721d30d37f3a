package dto

import (
	"time"

	"github.com/learnify-app/learnify-api/internal/models"
)

// SubmissionCreateRequest describes the multipart payload for creating a submission.
type SubmissionCreateRequest struct {
	StudentID      string   `form:"student_id" validate:"required,min=1,max=64"`
	FullName       string   `form:"full_name" validate:"omitempty,max=255"`
	SubmissionType string   `form:"submission_type" validate:"required,oneof=screenshot github_repo"`
	Title          string   `form:"title" validate:"required,min=1,max=255"`
	Description    string   `form:"description" validate:"omitempty"`
	GithubURL      string   `form:"github_url" validate:"omitempty,url,max=512"`
	LessonID       string   `form:"lesson_id" validate:"omitempty,max=64"`
	Tags           []string `form:"tags" validate:"omitempty,dive,max=64"`
	ProjectType    string   `form:"project_type" validate:"omitempty,oneof=midterm final regular"`
	IsProject      bool     `form:"is_project"`
}

// SubmissionListFilter describes query string filters for listing submissions.
type SubmissionListFilter struct {
	StudentID      *string `query:"student_id"`
	SubmissionType *string `query:"submission_type" validate:"omitempty,oneof=screenshot github_repo"`
	LessonID       *string `query:"lesson_id"`
	ProjectType    *string `query:"project_type" validate:"omitempty,oneof=midterm final regular"`
	IsProject      *bool   `query:"is_project"`
	Tags           []string
	Limit          int `query:"limit" validate:"gte=0"`
	Offset         int `query:"offset" validate:"gte=0"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID             uint      `json:"id"`
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	SubmissionType string    `json:"submission_type"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	FilePath       string    `json:"file_path,omitempty"`
	FileURL        string    `json:"file_url,omitempty"`
	FileName       string    `json:"file_name,omitempty"`
	FileSize       *int64    `json:"file_size,omitempty"`
	MimeType       string    `json:"mime_type,omitempty"`
	GithubURL      string    `json:"github_url,omitempty"`
	LessonID       string    `json:"lesson_id,omitempty"`
	Tags           []string  `json:"tags"`
	ProjectType    string    `json:"project_type"`
	IsProject      bool      `json:"is_project"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SubmissionListShowing echoes the pagination and filters applied to a listing.
type SubmissionListShowing struct {
	Limit                int     `json:"limit"`
	Offset               int     `json:"offset"`
	StudentIDFilter      *string `json:"student_id_filter,omitempty"`
	SubmissionTypeFilter *string `json:"submission_type_filter,omitempty"`
	LessonIDFilter       *string `json:"lesson_id_filter,omitempty"`
	ProjectTypeFilter    *string `json:"project_type_filter,omitempty"`
}

// SubmissionListResponse wraps a page of submissions.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse  `json:"submissions"`
	Total       int64                 `json:"total"`
	Showing     SubmissionListShowing `json:"showing"`
}

// NewSubmissionResponse converts a Submission model into a DTO. The public
// file URL is derived by the caller from the stored path.
func NewSubmissionResponse(model models.Submission, fileURL string) SubmissionResponse {
	response := SubmissionResponse{
		ID:             model.ID,
		StudentID:      model.StudentID,
		SubmissionType: model.SubmissionType,
		Title:          model.Title,
		Description:    model.Description,
		FilePath:       model.FilePath,
		FileURL:        fileURL,
		FileName:       model.FileName,
		FileSize:       model.FileSize,
		MimeType:       model.MimeType,
		GithubURL:      model.GithubURL,
		LessonID:       model.LessonID,
		Tags:           model.Tags,
		ProjectType:    model.ProjectType,
		IsProject:      model.IsProject,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}

	if response.Tags == nil {
		response.Tags = []string{}
	}

	if model.Student.ID != 0 {
		response.StudentName = model.Student.FullName
	}

	return response
}
