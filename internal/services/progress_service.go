package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
	"github.com/coursetrack/backend/internal/progress"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any. A missing course is a not found error.
	GetByID(ctx context.Context, id string) (*models.Course, error)
}

// ProgressRepository defines methods for progress data access
type ProgressRepository interface {
	// GetByStudentAndCourse retrieves the progress of a student in a course
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the student.
	// "courseID" is the ID of the course.
	//
	// Returns the progress, or nil when the student has none yet, and an error if any.
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Progress, error)
	// Mutate applies a change to a progress record atomically
	//
	// "ctx" is the context for the request.
	// "seed" is stored first when the student has no progress in the course yet.
	// "mutate" receives the current stored record and changes it in place.
	//
	// Returns the stored progress after the change and an error if any.
	Mutate(ctx context.Context, seed *models.Progress, mutate func(p *models.Progress) error) (*models.Progress, error)
	// ListStudentIDsByCourse retrieves the IDs of students with progress in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of student IDs and an error if any.
	ListStudentIDsByCourse(ctx context.Context, courseID string) ([]string, error)
}

// AnalyticsInvalidator drops cached analytics of a course
type AnalyticsInvalidator interface {
	// Invalidate drops the cached analytics rows of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	Invalidate(ctx context.Context, courseID string) error
}

type progressService struct {
	courseRepo   CourseRepository
	progressRepo ProgressRepository
	cache        AnalyticsInvalidator
	locker       *progress.KeyedLocker
	logger       *zap.Logger
	now          func() time.Time
}

// NewProgressService creates a new progress service.
// cache may be nil when analytics caching is disabled.
func NewProgressService(courseRepo CourseRepository, progressRepo ProgressRepository, cache AnalyticsInvalidator, logger *zap.Logger) *progressService {
	return &progressService{
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		cache:        cache,
		locker:       progress.NewKeyedLocker(),
		logger:       logger,
		now:          time.Now,
	}
}

// validateIDs checks that every identifier is a well-formed UUID.
// Arguments are name and value pairs.
func validateIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, err := uuid.Parse(pairs[i+1]); err != nil {
			return apperr.BadRequest("invalid %s", pairs[i])
		}
	}
	return nil
}

// loadCourseModule retrieves the course and the module that must belong to it
func (s *progressService) loadCourseModule(ctx context.Context, courseID, moduleID string) (*models.Course, *models.Module, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	module, _, ok := course.FindModule(moduleID)
	if !ok {
		return nil, nil, apperr.NotFound("module not found")
	}

	return course, module, nil
}

// mutate runs change against the stored progress of the student while holding the
// per student and course lock, then recomputes the rollups
func (s *progressService) mutate(ctx context.Context, studentID string, course *models.Course, change func(p *models.Progress, now time.Time) error) (*models.Progress, error) {
	unlock := s.locker.Lock(progress.Key(studentID, course.ID))
	defer unlock()

	now := s.now().UTC()
	seed := progress.NewSkeleton(course, studentID, now)

	p, err := s.progressRepo.Mutate(ctx, seed, func(p *models.Progress) error {
		reconciled := progress.Reconcile(p, course)
		if err := change(p, now); err != nil {
			return err
		}
		progress.Recompute(p, course, now)
		p.Reconciled = reconciled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAnalytics(ctx, course.ID)
	return p, nil
}

func (s *progressService) invalidateAnalytics(ctx context.Context, courseID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, courseID); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.String("course_id", courseID), zap.Error(err))
	}
}

// RecordSession folds a watch report into the student's progress
func (s *progressService) RecordSession(ctx context.Context, studentID, courseID, moduleID string, req *models.WatchRequest) (*models.Progress, error) {
	if err := validateIDs("student id", studentID, "course id", courseID, "module id", moduleID); err != nil {
		return nil, err
	}
	if req.WatchTime < 0 {
		return nil, apperr.BadRequest("watchTime must not be negative")
	}

	course, module, err := s.loadCourseModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	watch := progress.Watch{
		Delta:          req.WatchTime,
		PercentWatched: req.PercentWatched,
		ResumeAt:       req.ResumeAt,
		ReportedLength: req.TotalLength,
	}

	p, err := s.mutate(ctx, studentID, course, func(p *models.Progress, now time.Time) error {
		return progress.ApplyWatch(p, module, watch, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record watch session: %w", err)
	}

	return p, nil
}

// MarkComplete completes a module for the student regardless of watched time
func (s *progressService) MarkComplete(ctx context.Context, studentID, courseID, moduleID string) (*models.Progress, error) {
	if err := validateIDs("student id", studentID, "course id", courseID, "module id", moduleID); err != nil {
		return nil, err
	}

	course, _, err := s.loadCourseModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	p, err := s.mutate(ctx, studentID, course, func(p *models.Progress, now time.Time) error {
		_, err := progress.MarkComplete(p, moduleID, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark module complete: %w", err)
	}

	return p, nil
}

// readProgress returns the student's progress reconciled with the live course
// without persisting anything. A student without progress gets a zeroed skeleton.
func (s *progressService) readProgress(ctx context.Context, studentID string, course *models.Course) (*models.Progress, bool, error) {
	p, err := s.progressRepo.GetByStudentAndCourse(ctx, studentID, course.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get progress: %w", err)
	}
	if p == nil {
		return progress.NewSkeleton(course, studentID, s.now().UTC()), false, nil
	}

	if progress.Reconcile(p, course) {
		lastAccessed := p.LastAccessedAt
		progress.Recompute(p, course, s.now().UTC())
		p.LastAccessedAt = lastAccessed
		p.Reconciled = true
	}

	return p, true, nil
}

// GetCourseProgress retrieves the student's progress in a course
func (s *progressService) GetCourseProgress(ctx context.Context, studentID, courseID string) (*models.Progress, error) {
	if err := validateIDs("student id", studentID, "course id", courseID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	p, _, err := s.readProgress(ctx, studentID, course)
	return p, err
}

// GetModuleProgress retrieves the student's progress in one module.
// Returns nil without an error when the student has not started the course.
func (s *progressService) GetModuleProgress(ctx context.Context, studentID, courseID, moduleID string) (*models.ModuleProgress, error) {
	if err := validateIDs("student id", studentID, "course id", courseID, "module id", moduleID); err != nil {
		return nil, err
	}

	course, _, err := s.loadCourseModule(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	p, exists, err := s.readProgress(ctx, studentID, course)
	if err != nil || !exists {
		return nil, err
	}

	mp, ok := p.FindModule(moduleID)
	if !ok {
		return nil, apperr.NotFound("module not found in progress")
	}

	return mp, nil
}

// ReconcileCourse rebuilds the skeleton and rollups of every progress record of a course.
// A course that no longer exists is skipped.
func (s *progressService) ReconcileCourse(ctx context.Context, courseID string) (int, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if apperr.KindOf(err) == apperr.KindNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	studentIDs, err := s.progressRepo.ListStudentIDsByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, studentID := range studentIDs {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if err := s.reconcileStudent(ctx, studentID, course); err != nil {
			return updated, fmt.Errorf("failed to reconcile progress of student %s: %w", studentID, err)
		}
		updated++
	}

	s.invalidateAnalytics(ctx, courseID)
	return updated, nil
}

func (s *progressService) reconcileStudent(ctx context.Context, studentID string, course *models.Course) error {
	unlock := s.locker.Lock(progress.Key(studentID, course.ID))
	defer unlock()

	now := s.now().UTC()
	_, err := s.progressRepo.Mutate(ctx, progress.NewSkeleton(course, studentID, now), func(p *models.Progress) error {
		progress.Reconcile(p, course)
		lastAccessed := p.LastAccessedAt
		progress.Recompute(p, course, now)
		p.LastAccessedAt = lastAccessed
		return nil
	})
	return err
}
