package models

import "time"

// SubmissionVote records a categorical endorsement of a project submission.
// The composite unique index makes repeated casts by the same voter for the
// same category converge to a single row.
type SubmissionVote struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SubmissionID   uint       `gorm:"not null;uniqueIndex:idx_vote_key" json:"submission_id"`
	VoterStudentID string     `gorm:"size:64;not null;uniqueIndex:idx_vote_key" json:"voter_student_id"`
	VoterRef       uint       `gorm:"not null" json:"voter_ref"`
	VoteType       string     `gorm:"size:32;not null;default:best_project;uniqueIndex:idx_vote_key" json:"vote_type"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Submission     Submission `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Voter          Student    `gorm:"foreignKey:VoterRef;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"voter"`
}

const (
	// VoteTypeBestProject is the default voting category.
	VoteTypeBestProject = "best_project"
	// VoteTypeMostCreative rewards originality.
	VoteTypeMostCreative = "most_creative"
	// VoteTypeBestPresentation rewards delivery quality.
	VoteTypeBestPresentation = "best_presentation"
)

// VoteTypes lists the accepted voting categories.
func VoteTypes() []string {
	return []string{VoteTypeBestProject, VoteTypeMostCreative, VoteTypeBestPresentation}
}
