package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
)

const courseColumns = `id, title, description, levels, allowed_years, allowed_student_ids, enrolled_student_ids, created_at, updated_at`

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// courseDocument holds the JSON columns of a course row
type courseDocument struct {
	levels   []byte
	years    []byte
	allowed  []byte
	enrolled []byte
}

func encodeCourse(c *models.Course) (*courseDocument, error) {
	var (
		doc courseDocument
		err error
	)
	if doc.levels, err = json.Marshal(nonNil(c.Levels)); err != nil {
		return nil, fmt.Errorf("failed to encode levels: %w", err)
	}
	if doc.years, err = json.Marshal(nonNil(c.AllowedYears)); err != nil {
		return nil, fmt.Errorf("failed to encode allowed years: %w", err)
	}
	if doc.allowed, err = json.Marshal(nonNil(c.AllowedStudentIDs)); err != nil {
		return nil, fmt.Errorf("failed to encode allowed students: %w", err)
	}
	if doc.enrolled, err = json.Marshal(nonNil(c.EnrolledStudentIDs)); err != nil {
		return nil, fmt.Errorf("failed to encode enrolled students: %w", err)
	}
	return &doc, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		c   models.Course
		doc courseDocument
	)
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&doc.levels,
		&doc.years,
		&doc.allowed,
		&doc.enrolled,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	targets := []struct {
		raw  []byte
		dest any
	}{
		{doc.levels, &c.Levels},
		{doc.years, &c.AllowedYears},
		{doc.allowed, &c.AllowedStudentIDs},
		{doc.enrolled, &c.EnrolledStudentIDs},
	}
	for _, target := range targets {
		if len(target.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(target.raw, target.dest); err != nil {
			return nil, fmt.Errorf("failed to decode course document: %w", err)
		}
	}

	return &c, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ? LIMIT 1`

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return course, nil
}

// GetAll retrieves every course ordered by title
func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY title, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	doc, err := encodeCourse(course)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		doc.levels,
		doc.years,
		doc.allowed,
		doc.enrolled,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// Update replaces the course document
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	doc, err := encodeCourse(course)
	if err != nil {
		return err
	}

	query := `
		UPDATE courses
		SET title = ?, description = ?, levels = ?, allowed_years = ?, allowed_student_ids = ?, enrolled_student_ids = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		doc.levels,
		doc.years,
		doc.allowed,
		doc.enrolled,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.NotFound("course not found")
	}

	return nil
}

// Delete deletes a course by ID. Progress records go with it through the foreign key.
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.NotFound("course not found")
	}

	return nil
}
