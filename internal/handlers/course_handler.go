package handlers

import (
	"context"
	"net/http"

	authMiddleware "github.com/coursetrack/backend/internal/auth/middleware"
	"github.com/coursetrack/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course operations
type CourseService interface {
	// ListCourses retrieves the courses visible to the caller
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the caller.
	// "role" is the role of the caller.
	//
	// Returns a list of courses and an error if any.
	ListCourses(ctx context.Context, userID string, role models.Role) ([]models.CourseListItem, error)
	// GetCourse retrieves a course document
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the caller.
	// "role" is the role of the caller.
	// "courseID" is the ID of the course.
	//
	// Returns the course and an error if any. Hidden courses are not found.
	GetCourse(ctx context.Context, userID string, role models.Role, courseID string) (*models.Course, error)
	// CreateCourse creates a new course
	//
	// "ctx" is the context for the request.
	// "req" is the course document.
	//
	// Returns the created course and an error if any.
	CreateCourse(ctx context.Context, req *models.CourseRequest) (*models.Course, error)
	// UpdateCourse replaces a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "req" is the new course document.
	//
	// Returns the updated course and an error if any.
	UpdateCourse(ctx context.Context, courseID string, req *models.CourseRequest) (*models.Course, error)
	// DeleteCourse deletes a course and its progress records
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	DeleteCourse(ctx context.Context, courseID string) error
}

// CourseHandler handles HTTP requests for courses
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListCourses)
		r.Get("/{courseId}", h.GetCourse)
	})
	r.Route("/admin/courses", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/", h.CreateCourse)
		r.Put("/{courseId}", h.UpdateCourse)
		r.Delete("/{courseId}", h.DeleteCourse)
	})
}

// ListCourses handles GET /courses
// @Summary Get list of courses
// @Description Get the courses visible to the caller
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	identity, ok := authMiddleware.GetIdentity(r.Context())
	if !ok {
		h.Logger.Error("identity not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courses, err := h.service.ListCourses(r.Context(), identity.UserID, models.Role(identity.Role))
	if err != nil {
		h.RespondServiceError(w, err, "failed to get courses list")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{courseId}
// @Summary Get course
// @Description Get a course document with its levels and modules
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} models.Course "Course"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	identity, ok := authMiddleware.GetIdentity(r.Context())
	if !ok {
		h.Logger.Error("identity not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	course, err := h.service.GetCourse(r.Context(), identity.UserID, models.Role(identity.Role), chi.URLParam(r, "courseId"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to get course")
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// CreateCourse handles POST /admin/courses
// @Summary Create course
// @Description Create a course document
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CourseRequest true "Course document"
// @Success 201 {object} models.Course "Created course"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CourseRequest
	if msg, ok := h.DecodeAndValidate(r, &req); !ok {
		h.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create course")
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PUT /admin/courses/{courseId}
// @Summary Replace course
// @Description Replace a course document. Progress records are reconciled in the background.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body models.CourseRequest true "Course document"
// @Success 200 {object} models.Course "Updated course"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{courseId} [put]
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CourseRequest
	if msg, ok := h.DecodeAndValidate(r, &req); !ok {
		h.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), chi.URLParam(r, "courseId"), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to update course")
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /admin/courses/{courseId}
// @Summary Delete course
// @Description Delete a course together with every progress record of it
// @Tags admin
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{courseId} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCourse(r.Context(), chi.URLParam(r, "courseId")); err != nil {
		h.RespondServiceError(w, err, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
