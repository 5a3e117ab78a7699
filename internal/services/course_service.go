package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
	"github.com/coursetrack/backend/internal/tasks"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// CourseStore defines methods for course document storage
type CourseStore interface {
	CourseRepository
	// GetAll retrieves all courses
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of courses and an error if any.
	GetAll(ctx context.Context) ([]models.Course, error)
	// Create creates a new course
	//
	// "ctx" is the context for the request.
	// "course" is the course to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, course *models.Course) error
	// Update replaces a course
	//
	// "ctx" is the context for the request.
	// "course" is the course to store.
	//
	// Returns an error if any. A missing course is a not found error.
	Update(ctx context.Context, course *models.Course) error
	// Delete deletes a course together with its progress records
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error if any. A missing course is a not found error.
	Delete(ctx context.Context, id string) error
}

// StudentRepository defines methods for student profile access
type StudentRepository interface {
	// GetByID retrieves a student profile by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the student.
	//
	// Returns the student and an error if any. A missing student is a not found error.
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

// TaskEnqueuer enqueues background jobs
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type courseService struct {
	courseRepo  CourseStore
	studentRepo StudentRepository
	enqueuer    TaskEnqueuer
	cache       AnalyticsInvalidator
	logger      *zap.Logger
	now         func() time.Time
}

// NewCourseService creates a new course service.
// enqueuer and cache may be nil.
func NewCourseService(courseRepo CourseStore, studentRepo StudentRepository, enqueuer TaskEnqueuer, cache AnalyticsInvalidator, logger *zap.Logger) *courseService {
	return &courseService{
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		enqueuer:    enqueuer,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

// visibilityFilter returns a predicate telling which courses the caller may see.
// A learner without a profile only sees global courses and courses naming them.
func (s *courseService) visibilityFilter(ctx context.Context, userID string, role models.Role) (func(*models.Course) bool, error) {
	if role == models.RoleAdmin {
		return func(*models.Course) bool { return true }, nil
	}

	year := 0
	student, err := s.studentRepo.GetByID(ctx, userID)
	switch {
	case err == nil:
		year = student.Year
	case apperr.KindOf(err) != apperr.KindNotFound:
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return func(course *models.Course) bool {
		return course.IsVisibleTo(userID, year)
	}, nil
}

// ListCourses retrieves the courses visible to the caller
func (s *courseService) ListCourses(ctx context.Context, userID string, role models.Role) ([]models.CourseListItem, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	visible, err := s.visibilityFilter(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	items := make([]models.CourseListItem, 0, len(courses))
	for i := range courses {
		course := &courses[i]
		if !visible(course) {
			continue
		}
		items = append(items, models.CourseListItem{
			ID:           course.ID,
			Title:        course.Title,
			Description:  course.Description,
			TotalLevels:  len(course.Levels),
			TotalModules: course.ModuleCount(),
		})
	}

	return items, nil
}

// GetCourse retrieves a course document. Courses hidden from the caller are reported as not found.
func (s *courseService) GetCourse(ctx context.Context, userID string, role models.Role, courseID string) (*models.Course, error) {
	if err := validateIDs("course id", courseID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	visible, err := s.visibilityFilter(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if !visible(course) {
		return nil, apperr.NotFound("course not found")
	}

	return course, nil
}

// validateStructure rejects duplicate level or module ids inside a course
func validateStructure(levels []models.Level) error {
	seen := make(map[string]struct{})
	for _, level := range levels {
		if _, dup := seen[level.ID]; dup {
			return apperr.BadRequest("duplicate id %s", level.ID)
		}
		seen[level.ID] = struct{}{}
		for _, module := range level.Modules {
			if _, dup := seen[module.ID]; dup {
				return apperr.BadRequest("duplicate id %s", module.ID)
			}
			seen[module.ID] = struct{}{}
		}
	}
	return nil
}

func applyCourseRequest(course *models.Course, req *models.CourseRequest) {
	course.Title = req.Title
	course.Description = req.Description
	course.Levels = req.Levels
	course.AllowedYears = req.AllowedYears
	course.AllowedStudentIDs = req.AllowedStudentIDs
	course.EnrolledStudentIDs = req.EnrolledStudentIDs
}

// CreateCourse creates a new course
func (s *courseService) CreateCourse(ctx context.Context, req *models.CourseRequest) (*models.Course, error) {
	if err := validateStructure(req.Levels); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	course := &models.Course{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCourseRequest(course, req)

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

// UpdateCourse replaces a course and schedules reconciliation of its progress records
func (s *courseService) UpdateCourse(ctx context.Context, courseID string, req *models.CourseRequest) (*models.Course, error) {
	if err := validateIDs("course id", courseID); err != nil {
		return nil, err
	}
	if err := validateStructure(req.Levels); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	applyCourseRequest(course, req)
	course.UpdatedAt = s.now().UTC()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.enqueueReconcile(courseID)
	return course, nil
}

// enqueueReconcile schedules a reconcile job. Progress is also reconciled lazily on
// the next read or write, so a failed enqueue is only logged.
func (s *courseService) enqueueReconcile(courseID string) {
	if s.enqueuer == nil {
		return
	}

	task, err := tasks.NewReconcileCourseTask(courseID)
	if err == nil {
		_, err = s.enqueuer.Enqueue(task, asynq.Queue(tasks.QueueProgress), asynq.MaxRetry(5))
	}
	if err != nil {
		s.logger.Warn("failed to enqueue course reconciliation", zap.String("course_id", courseID), zap.Error(err))
	}
}

// DeleteCourse deletes a course and every progress record of it
func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	if err := validateIDs("course id", courseID); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, courseID); err != nil {
			s.logger.Warn("failed to invalidate analytics cache", zap.String("course_id", courseID), zap.Error(err))
		}
	}

	return nil
}
