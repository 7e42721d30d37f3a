package models

import "time"

// SubmissionFeedback stores peer commentary attached to a submission. Rows are
// immutable once created and are removed only together with their submission.
type SubmissionFeedback struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	SubmissionID      uint       `gorm:"not null;index" json:"submission_id"`
	ReviewerStudentID string     `gorm:"size:64;not null" json:"reviewer_student_id"`
	ReviewerRef       uint       `gorm:"not null" json:"reviewer_ref"`
	FeedbackText      string     `gorm:"type:text;not null" json:"feedback_text"`
	Rating            *int       `json:"rating"`
	IsPrivate         bool       `gorm:"not null;default:true" json:"is_private"`
	CreatedAt         time.Time  `json:"created_at"`
	Submission        Submission `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Reviewer          Student    `gorm:"foreignKey:ReviewerRef;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reviewer"`
}
