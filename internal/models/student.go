package models

import "time"

// Student represents a learner identified by a self-asserted student code.
// Rows are created lazily the first time a code appears on any endpoint and
// are never deleted by this service.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"size:64;uniqueIndex;not null" json:"student_id"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
