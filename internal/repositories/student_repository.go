package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
)

type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *sql.DB) *studentRepository {
	return &studentRepository{
		db: db,
	}
}

// GetByID retrieves a student profile by ID
func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `
		SELECT id, name, email, roll_number, department, year
		FROM students
		WHERE id = ?
		LIMIT 1
	`

	var student models.Student
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.RollNumber,
		&student.Department,
		&student.Year,
	)

	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("student not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	return &student, nil
}
