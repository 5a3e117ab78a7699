package handlers

import (
	"context"
	"net/http"
	"strconv"

	authMiddleware "github.com/coursetrack/backend/internal/auth/middleware"
	"github.com/coursetrack/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for learner progress operations
type ProgressService interface {
	// RecordSession records a watch report for a module
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the learner.
	// "courseID" is the ID of the course.
	// "moduleID" is the ID of the watched module.
	// "req" is the watch report.
	//
	// Returns the updated course progress and an error if any.
	RecordSession(ctx context.Context, studentID, courseID, moduleID string, req *models.WatchRequest) (*models.Progress, error)
	// MarkComplete marks a module as completed
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the learner.
	// "courseID" is the ID of the course.
	// "moduleID" is the ID of the module.
	//
	// Returns the updated course progress and an error if any.
	MarkComplete(ctx context.Context, studentID, courseID, moduleID string) (*models.Progress, error)
	// GetCourseProgress retrieves the progress of a learner in a course
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the learner.
	// "courseID" is the ID of the course.
	//
	// Returns the course progress, a zeroed skeleton when none was recorded yet, and an error if any.
	GetCourseProgress(ctx context.Context, studentID, courseID string) (*models.Progress, error)
	// GetModuleProgress retrieves the progress of a learner in a single module
	//
	// "ctx" is the context for the request.
	// "studentID" is the ID of the learner.
	// "courseID" is the ID of the course.
	// "moduleID" is the ID of the module.
	//
	// Returns the module progress, nil when none was recorded yet, and an error if any.
	GetModuleProgress(ctx context.Context, studentID, courseID, moduleID string) (*models.ModuleProgress, error)
}

// AnalyticsService is the interface that wraps the course analytics operation
type AnalyticsService interface {
	// CourseAnalytics builds the analytics report of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "role" is the role of the caller. Only administrators are allowed.
	// "q" holds filtering, sorting and pagination.
	//
	// Returns the report and an error if any.
	CourseAnalytics(ctx context.Context, courseID string, role models.Role, q models.AnalyticsQuery) (*models.AnalyticsReport, error)
}

// ProgressHandler handles HTTP requests for learner progress and course analytics
type ProgressHandler struct {
	BaseHandler
	service   ProgressService
	analytics AnalyticsService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, analytics AnalyticsService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		analytics:   analytics,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{courseId}", h.GetCourseProgress)
		r.Get("/{courseId}/analytics", h.GetCourseAnalytics)
		r.Get("/{courseId}/{moduleId}", h.GetModuleProgress)
		r.Post("/{courseId}/{moduleId}/watch", h.RecordWatch)
		r.Post("/{courseId}/{moduleId}/complete", h.MarkComplete)
	})
}

// RecordWatch handles POST /progress/{courseId}/{moduleId}/watch
// @Summary Record a watch session
// @Description Record watch telemetry for a module and return the updated course progress
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.WatchRequest true "Watch report"
// @Success 200 {object} map[string]models.Progress "Updated progress"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{courseId}/{moduleId}/watch [post]
func (h *ProgressHandler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.WatchRequest
	if msg, ok := h.DecodeAndValidate(r, &req); !ok {
		h.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	progress, err := h.service.RecordSession(r.Context(), userID, chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to record watch session")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// MarkComplete handles POST /progress/{courseId}/{moduleId}/complete
// @Summary Mark a module as completed
// @Description Mark a module as completed. Repeated calls keep the first completion time.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} map[string]models.Progress "Updated progress"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{courseId}/{moduleId}/complete [post]
func (h *ProgressHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	progress, err := h.service.MarkComplete(r.Context(), userID, chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to mark module complete")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// GetModuleProgress handles GET /progress/{courseId}/{moduleId}
// @Summary Get module progress
// @Description Get the caller's progress in a module. progress is null when nothing was recorded yet.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} map[string]models.ModuleProgress "Module progress"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{courseId}/{moduleId} [get]
func (h *ProgressHandler) GetModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	progress, err := h.service.GetModuleProgress(r.Context(), userID, chi.URLParam(r, "courseId"), chi.URLParam(r, "moduleId"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to get module progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// GetCourseProgress handles GET /progress/{courseId}
// @Summary Get course progress
// @Description Get the caller's progress in a course, reconciled with the current course structure
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]models.Progress "Course progress"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{courseId} [get]
func (h *ProgressHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	progress, err := h.service.GetCourseProgress(r.Context(), userID, chi.URLParam(r, "courseId"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to get course progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// GetCourseAnalytics handles GET /progress/{courseId}/analytics
// @Summary Get course analytics
// @Description Get per-learner progress of a course with department, year and bucket breakdowns. Administrators only.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param department query string false "Filter by department"
// @Param year query int false "Filter by study year"
// @Param bucket query string false "Filter by bucket (completed, in_progress, struggling, not_started)"
// @Param search query string false "Search by name, email or roll number"
// @Param sortBy query string false "Sort field (name, progress, lastAccessed)"
// @Param order query string false "Sort order (asc, desc)"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 50)"
// @Success 200 {object} map[string]models.AnalyticsReport "Analytics report"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{courseId}/analytics [get]
func (h *ProgressHandler) GetCourseAnalytics(w http.ResponseWriter, r *http.Request) {
	identity, ok := authMiddleware.GetIdentity(r.Context())
	if !ok {
		h.Logger.Error("identity not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	query, msg, ok := parseAnalyticsQuery(r)
	if !ok {
		h.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	report, err := h.analytics.CourseAnalytics(r.Context(), chi.URLParam(r, "courseId"), models.Role(identity.Role), query)
	if err != nil {
		h.RespondServiceError(w, err, "failed to build course analytics")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"analytics": report})
}

// parseAnalyticsQuery reads filtering, sorting and pagination parameters
func parseAnalyticsQuery(r *http.Request) (models.AnalyticsQuery, string, bool) {
	values := r.URL.Query()
	q := models.AnalyticsQuery{
		Department: values.Get("department"),
		Bucket:     models.Bucket(values.Get("bucket")),
		Search:     values.Get("search"),
		SortBy:     models.AnalyticsSortField(values.Get("sortBy")),
	}

	if yearStr := values.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return q, "invalid year parameter", false
		}
		q.Year = &year
	}

	switch values.Get("order") {
	case "", "asc":
	case "desc":
		q.Descending = true
	default:
		return q, "order must be asc or desc", false
	}

	if pageStr := values.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return q, "invalid page parameter", false
		}
		q.Page = page
	}
	if countStr := values.Get("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return q, "invalid count parameter", false
		}
		q.Count = count
	}

	return q, "", true
}
