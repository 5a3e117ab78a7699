package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coursetrack/backend/internal/models"
	"github.com/go-sql-driver/mysql"
)

const (
	maxMutateAttempts  = 3
	errDeadlock        = 1213
	errLockWaitTimeout = 1205
)

const progressColumns = `id, student_id, course_id, levels, overall_progress, total_watch_time, last_accessed_at, created_at`

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*models.Progress, error) {
	var (
		p            models.Progress
		levelsJSON   []byte
		lastAccessed sql.NullTime
	)
	if err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.CourseID,
		&levelsJSON,
		&p.OverallProgress,
		&p.TotalWatchTime,
		&lastAccessed,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(levelsJSON, &p.Levels); err != nil {
		return nil, fmt.Errorf("failed to decode progress levels: %w", err)
	}
	if lastAccessed.Valid {
		t := lastAccessed.Time
		p.LastAccessedAt = &t
	}
	return &p, nil
}

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func nullTime(p *models.Progress) sql.NullTime {
	if p.LastAccessedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p.LastAccessedAt, Valid: true}
}

// GetByStudentAndCourse retrieves the progress of a student in a course.
//
// Returns nil without an error when the student has no progress yet.
func (r *progressRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Progress, error) {
	query := `SELECT ` + progressColumns + ` FROM course_progress WHERE student_id = ? AND course_id = ? LIMIT 1`

	p, err := scanProgress(r.db.QueryRowContext(ctx, query, studentID, courseID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return p, nil
}

// Save inserts the progress or overwrites the record of the same student and course
func (r *progressRepository) Save(ctx context.Context, p *models.Progress) error {
	return save(ctx, r.db, p)
}

func save(ctx context.Context, exec execer, p *models.Progress) error {
	levelsJSON, err := json.Marshal(p.Levels)
	if err != nil {
		return fmt.Errorf("failed to encode progress levels: %w", err)
	}

	query := `
		INSERT INTO course_progress (` + progressColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			levels = VALUES(levels),
			overall_progress = VALUES(overall_progress),
			total_watch_time = VALUES(total_watch_time),
			last_accessed_at = VALUES(last_accessed_at)
	`

	_, err = exec.ExecContext(ctx, query,
		p.ID,
		p.StudentID,
		p.CourseID,
		levelsJSON,
		p.OverallProgress,
		p.TotalWatchTime,
		nullTime(p),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// Mutate runs mutate against the stored progress of seed's student and course
// inside a single transaction.
//
// The row is created from seed when it does not exist yet (INSERT IGNORE keeps the
// unique student/course key intact under concurrent first writes) and then locked
// with SELECT ... FOR UPDATE, so concurrent mutations of the same record are applied
// one after another instead of overwriting each other. The mutated record is then
// written back with Save's overwrite while the lock is still held.
//
// Two first writers can deadlock on the seed row; InnoDB aborts one of them and the
// transaction is retried up to maxMutateAttempts times. mutate may therefore run more
// than once and must only change p.
func (r *progressRepository) Mutate(ctx context.Context, seed *models.Progress, mutate func(p *models.Progress) error) (*models.Progress, error) {
	seedLevels, err := json.Marshal(seed.Levels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress levels: %w", err)
	}

	for attempt := 1; ; attempt++ {
		p, err := r.mutateOnce(ctx, seed, seedLevels, mutate)
		if err == nil || attempt == maxMutateAttempts || !isDeadlock(err) {
			return p, err
		}
	}
}

// isDeadlock reports whether err is an InnoDB deadlock or lock wait abort
func isDeadlock(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && (mysqlErr.Number == errDeadlock || mysqlErr.Number == errLockWaitTimeout)
}

func (r *progressRepository) mutateOnce(ctx context.Context, seed *models.Progress, seedLevels []byte, mutate func(p *models.Progress) error) (*models.Progress, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `INSERT IGNORE INTO course_progress (` + progressColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertQuery,
		seed.ID,
		seed.StudentID,
		seed.CourseID,
		seedLevels,
		seed.OverallProgress,
		seed.TotalWatchTime,
		nullTime(seed),
		seed.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to seed progress: %w", err)
	}

	selectQuery := `SELECT ` + progressColumns + ` FROM course_progress WHERE student_id = ? AND course_id = ? FOR UPDATE`
	p, err := scanProgress(tx.QueryRowContext(ctx, selectQuery, seed.StudentID, seed.CourseID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock progress: %w", err)
	}

	if err := mutate(p); err != nil {
		return nil, err
	}

	// the row is locked, so the overwrite cannot lose a concurrent update
	if err := save(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return p, nil
}

// ListStudentIDsByCourse returns the ids of the students that have progress in a course
func (r *progressRepository) ListStudentIDsByCourse(ctx context.Context, courseID string) ([]string, error) {
	query := `SELECT student_id FROM course_progress WHERE course_id = ? ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan student id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

// GetAnalyticsRows loads every progress record of a course joined with the learner profile
func (r *progressRepository) GetAnalyticsRows(ctx context.Context, courseID string) ([]models.AnalyticsRow, error) {
	query := `
		SELECT
			s.id,
			s.name,
			s.email,
			s.roll_number,
			s.department,
			s.year,
			cp.overall_progress,
			cp.total_watch_time,
			cp.last_accessed_at
		FROM course_progress cp
		INNER JOIN students s ON s.id = cp.student_id
		WHERE cp.course_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}
	defer rows.Close()

	result := []models.AnalyticsRow{}
	for rows.Next() {
		var (
			row          models.AnalyticsRow
			lastAccessed sql.NullTime
		)
		err := rows.Scan(
			&row.Student.ID,
			&row.Student.Name,
			&row.Student.Email,
			&row.Student.RollNumber,
			&row.Student.Department,
			&row.Student.Year,
			&row.OverallProgress,
			&row.TotalWatchTime,
			&lastAccessed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}
		if lastAccessed.Valid {
			t := lastAccessed.Time
			row.LastAccessedAt = &t
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
