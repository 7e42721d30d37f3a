package dto

import (
	"time"

	"github.com/learnify-app/learnify-api/internal/models"
)

// FeedbackCreateRequest describes the payload for attaching feedback to a submission.
type FeedbackCreateRequest struct {
	ReviewerStudentID string `json:"reviewer_student_id" validate:"required,min=1,max=64"`
	ReviewerFullName  string `json:"reviewer_full_name" validate:"omitempty,max=255"`
	FeedbackText      string `json:"feedback_text" validate:"required,min=1"`
	Rating            *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	IsPrivate         *bool  `json:"is_private"`
}

// FeedbackResponse serializes a feedback row for API clients.
type FeedbackResponse struct {
	ID                uint      `json:"id"`
	SubmissionID      uint      `json:"submission_id"`
	ReviewerStudentID string    `json:"reviewer_student_id"`
	ReviewerName      string    `json:"reviewer_name"`
	FeedbackText      string    `json:"feedback_text"`
	Rating            *int      `json:"rating,omitempty"`
	IsPrivate         bool      `json:"is_private"`
	CreatedAt         time.Time `json:"created_at"`
}

// FeedbackListResponse wraps the feedback attached to one submission.
type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
	Total    int                `json:"total"`
}

// NewFeedbackResponse converts a SubmissionFeedback model into a DTO.
func NewFeedbackResponse(model models.SubmissionFeedback) FeedbackResponse {
	response := FeedbackResponse{
		ID:                model.ID,
		SubmissionID:      model.SubmissionID,
		ReviewerStudentID: model.ReviewerStudentID,
		ReviewerName:      "Anonymous",
		FeedbackText:      model.FeedbackText,
		Rating:            model.Rating,
		IsPrivate:         model.IsPrivate,
		CreatedAt:         model.CreatedAt,
	}

	if model.Reviewer.ID != 0 && model.Reviewer.FullName != "" {
		response.ReviewerName = model.Reviewer.FullName
	}

	return response
}

// NewFeedbackResponseSlice converts feedback models into DTOs.
func NewFeedbackResponseSlice(models []models.SubmissionFeedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(models))
	for _, feedback := range models {
		responses = append(responses, NewFeedbackResponse(feedback))
	}

	return responses
}
