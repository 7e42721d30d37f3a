package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnify-app/learnify-api/internal/models"
)

// StudentRepository resolves self-asserted student codes to durable records.
type StudentRepository interface {
	Resolve(ctx context.Context, studentID, fullName string) (models.Student, error)
	GetByCode(ctx context.Context, studentID string) (models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Resolve returns the student row for the given code, creating one when
// absent. Creation races on the unique student_id index; the conflict clause
// makes concurrent resolves of the same code converge on a single row.
func (r *studentRepository) Resolve(ctx context.Context, studentID, fullName string) (models.Student, error) {
	code := strings.TrimSpace(studentID)
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = code
	}

	candidate := models.Student{StudentID: code, FullName: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&candidate).Error; err != nil {
		return models.Student{}, err
	}

	return r.GetByCode(ctx, code)
}

func (r *studentRepository) GetByCode(ctx context.Context, studentID string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", strings.TrimSpace(studentID)).
		First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}
