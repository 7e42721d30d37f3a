package dto

import (
	"time"

	"github.com/learnify-app/learnify-api/internal/models"
)

// VoteCreateRequest describes the payload for casting a vote.
type VoteCreateRequest struct {
	VoterStudentID string `json:"voter_student_id" validate:"required,min=1,max=64"`
	VoterFullName  string `json:"voter_full_name" validate:"omitempty,max=255"`
	VoteType       string `json:"vote_type" validate:"omitempty,oneof=best_project most_creative best_presentation"`
}

// VoteResponse serializes a vote row for API clients.
type VoteResponse struct {
	ID             uint      `json:"id"`
	SubmissionID   uint      `json:"submission_id"`
	VoterStudentID string    `json:"voter_student_id"`
	VoterName      string    `json:"voter_name"`
	VoteType       string    `json:"vote_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// VoteListResponse wraps the votes cast on one submission with a per-category summary.
type VoteListResponse struct {
	Votes   []VoteResponse   `json:"votes"`
	Total   int              `json:"total"`
	Summary map[string]int64 `json:"summary"`
}

// NewVoteResponse converts a SubmissionVote model into a DTO.
func NewVoteResponse(model models.SubmissionVote) VoteResponse {
	response := VoteResponse{
		ID:             model.ID,
		SubmissionID:   model.SubmissionID,
		VoterStudentID: model.VoterStudentID,
		VoterName:      "Anonymous",
		VoteType:       model.VoteType,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}

	if model.Voter.ID != 0 && model.Voter.FullName != "" {
		response.VoterName = model.Voter.FullName
	}

	return response
}

// NewVoteResponseSlice converts vote models into DTOs.
func NewVoteResponseSlice(models []models.SubmissionVote) []VoteResponse {
	responses := make([]VoteResponse, 0, len(models))
	for _, vote := range models {
		responses = append(responses, NewVoteResponse(vote))
	}

	return responses
}
