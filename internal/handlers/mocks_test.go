package handlers

import (
	"context"
	"net/http"

	authMiddleware "github.com/coursetrack/backend/internal/auth/middleware"
	"github.com/coursetrack/backend/internal/auth/service"
	"github.com/coursetrack/backend/internal/models"
)

const (
	testCourseID  = "0b6f7d0e-7c59-4f4e-a2a4-0f1d3c6f9a01"
	testModuleID  = "0b6f7d0e-7c59-4f4e-a2a4-0f1d3c6f9a02"
	testStudentID = "0b6f7d0e-7c59-4f4e-a2a4-0f1d3c6f9a03"
)

// withIdentity returns a middleware that authenticates every request as the given caller
func withIdentity(userID string, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := authMiddleware.WithIdentity(r.Context(), &service.Identity{UserID: userID, Role: string(role)})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// passThrough is a middleware that does nothing
func passThrough(next http.Handler) http.Handler {
	return next
}

// mockProgressService is a mock implementation of ProgressService
type mockProgressService struct {
	progress       *models.Progress
	moduleProgress *models.ModuleProgress
	err            error

	studentID string
	courseID  string
	moduleID  string
	watch     *models.WatchRequest
}

func (m *mockProgressService) RecordSession(ctx context.Context, studentID, courseID, moduleID string, req *models.WatchRequest) (*models.Progress, error) {
	m.studentID, m.courseID, m.moduleID, m.watch = studentID, courseID, moduleID, req
	if m.err != nil {
		return nil, m.err
	}
	return m.progress, nil
}

func (m *mockProgressService) MarkComplete(ctx context.Context, studentID, courseID, moduleID string) (*models.Progress, error) {
	m.studentID, m.courseID, m.moduleID = studentID, courseID, moduleID
	if m.err != nil {
		return nil, m.err
	}
	return m.progress, nil
}

func (m *mockProgressService) GetCourseProgress(ctx context.Context, studentID, courseID string) (*models.Progress, error) {
	m.studentID, m.courseID = studentID, courseID
	if m.err != nil {
		return nil, m.err
	}
	return m.progress, nil
}

func (m *mockProgressService) GetModuleProgress(ctx context.Context, studentID, courseID, moduleID string) (*models.ModuleProgress, error) {
	m.studentID, m.courseID, m.moduleID = studentID, courseID, moduleID
	if m.err != nil {
		return nil, m.err
	}
	return m.moduleProgress, nil
}

// mockAnalyticsService is a mock implementation of AnalyticsService
type mockAnalyticsService struct {
	report *models.AnalyticsReport
	err    error
	role   models.Role
	query  models.AnalyticsQuery
	called bool
}

func (m *mockAnalyticsService) CourseAnalytics(ctx context.Context, courseID string, role models.Role, q models.AnalyticsQuery) (*models.AnalyticsReport, error) {
	m.called = true
	m.role, m.query = role, q
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockCourseService is a mock implementation of CourseService
type mockCourseService struct {
	courses []models.CourseListItem
	course  *models.Course
	err     error

	userID   string
	role     models.Role
	courseID string
	request  *models.CourseRequest
	called   bool
}

func (m *mockCourseService) ListCourses(ctx context.Context, userID string, role models.Role) ([]models.CourseListItem, error) {
	m.called = true
	m.userID, m.role = userID, role
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseService) GetCourse(ctx context.Context, userID string, role models.Role, courseID string) (*models.Course, error) {
	m.called = true
	m.userID, m.role, m.courseID = userID, role, courseID
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseService) CreateCourse(ctx context.Context, req *models.CourseRequest) (*models.Course, error) {
	m.called = true
	m.request = req
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseService) UpdateCourse(ctx context.Context, courseID string, req *models.CourseRequest) (*models.Course, error) {
	m.called = true
	m.courseID, m.request = courseID, req
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseService) DeleteCourse(ctx context.Context, courseID string) error {
	m.called = true
	m.courseID = courseID
	return m.err
}
