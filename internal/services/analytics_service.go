package services

import (
	"context"
	"fmt"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
	"github.com/coursetrack/backend/internal/progress"
	"go.uber.org/zap"
)

// AnalyticsRepository defines methods for analytics data access
type AnalyticsRepository interface {
	// GetAnalyticsRows retrieves every progress record of a course joined with the student profile
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of analytics rows and an error if any.
	GetAnalyticsRows(ctx context.Context, courseID string) ([]models.AnalyticsRow, error)
}

// AnalyticsCache defines methods for the per-course analytics cache
type AnalyticsCache interface {
	AnalyticsInvalidator
	// Get retrieves the cached analytics rows of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the rows, the current cache generation of the course,
	// false on a cache miss, and an error if any.
	Get(ctx context.Context, courseID string) ([]models.AnalyticsRow, int64, bool, error)
	// Set stores the analytics rows of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "generation" is the generation returned by Get before the rows were loaded.
	// "rows" are the rows to cache.
	//
	// Returns an error if any.
	Set(ctx context.Context, courseID string, generation int64, rows []models.AnalyticsRow) error
}

type analyticsService struct {
	courseRepo    CourseRepository
	analyticsRepo AnalyticsRepository
	cache         AnalyticsCache
	logger        *zap.Logger
}

// NewAnalyticsService creates a new analytics service.
// cache may be nil when analytics caching is disabled.
func NewAnalyticsService(courseRepo CourseRepository, analyticsRepo AnalyticsRepository, cache AnalyticsCache, logger *zap.Logger) *analyticsService {
	return &analyticsService{
		courseRepo:    courseRepo,
		analyticsRepo: analyticsRepo,
		cache:         cache,
		logger:        logger,
	}
}

// validateQuery rejects unknown sort fields and buckets
func validateQuery(q models.AnalyticsQuery) error {
	switch q.SortBy {
	case "", models.SortByName, models.SortByProgress, models.SortByLastAccessed:
	default:
		return apperr.BadRequest("invalid sortBy %q", q.SortBy)
	}

	switch q.Bucket {
	case "", models.BucketCompleted, models.BucketInProgress, models.BucketStruggling, models.BucketNotStarted:
	default:
		return apperr.BadRequest("invalid bucket %q", q.Bucket)
	}

	if q.Page < 0 || q.Count < 0 {
		return apperr.BadRequest("page and count must not be negative")
	}
	if q.Count > progress.MaxAnalyticsCount {
		return apperr.BadRequest("count must not exceed %d", progress.MaxAnalyticsCount)
	}

	return nil
}

// CourseAnalytics builds the analytics report of a course. Only administrators may call it.
func (s *analyticsService) CourseAnalytics(ctx context.Context, courseID string, role models.Role, q models.AnalyticsQuery) (*models.AnalyticsReport, error) {
	if role != models.RoleAdmin {
		return nil, apperr.Forbidden("only administrators can view course analytics")
	}
	if err := validateIDs("course id", courseID); err != nil {
		return nil, err
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	rows, err := s.loadRows(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return progress.BuildReport(courseID, rows, q), nil
}

// loadRows reads the analytics rows from the cache, falling back to the repository.
// Cache failures are logged and never fail the request. Rows are only written back
// under the generation observed before the repository read.
func (s *analyticsService) loadRows(ctx context.Context, courseID string) ([]models.AnalyticsRow, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		rows, gen, hit, err := s.cache.Get(ctx, courseID)
		switch {
		case err != nil:
			s.logger.Warn("failed to read analytics cache", zap.String("course_id", courseID), zap.Error(err))
		case hit:
			return rows, nil
		default:
			generation, cacheable = gen, true
		}
	}

	rows, err := s.analyticsRepo.GetAnalyticsRows(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, courseID, generation, rows); err != nil {
			s.logger.Warn("failed to write analytics cache", zap.String("course_id", courseID), zap.Error(err))
		}
	}

	return rows, nil
}
