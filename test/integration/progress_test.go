package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coursetrack/backend/internal/auth/middleware"
	"github.com/coursetrack/backend/internal/auth/service"
	"github.com/coursetrack/backend/internal/config"
	"github.com/coursetrack/backend/internal/handlers"
	"github.com/coursetrack/backend/internal/models"
	"github.com/coursetrack/backend/internal/repositories"
	"github.com/coursetrack/backend/internal/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testCourseID  = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f01"
	testLevel1ID  = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f11"
	testLevel2ID  = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f12"
	testModule1ID = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f21"
	testModule2ID = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f22"
	testModule3ID = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f23"
	testModule4ID = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f24"
	testStudentID = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f31"
	testAdminID   = "9a3e1c52-6f0b-4d7e-8c21-3b5a7d9e0f32"
	testSecret    = "integration-secret"
)

var (
	testDB     *sql.DB
	testLogger *zap.Logger
	testTokens *service.TokenGenerator
)

// setupTestRouter creates a test router wired the way cmd/api wires it, without cache and queue
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	courseRepo := repositories.NewCourseRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	studentRepo := repositories.NewStudentRepository(db)

	progressService := services.NewProgressService(courseRepo, progressRepo, nil, logger)
	analyticsService := services.NewAnalyticsService(courseRepo, progressRepo, nil, logger)
	courseService := services.NewCourseService(courseRepo, studentRepo, nil, nil, logger)

	progressHandler := handlers.NewProgressHandler(progressService, analyticsService, logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		progressHandler.RegisterRoutes(r, middleware.AuthMiddleware(testTokens))
		courseHandler.RegisterRoutes(r, middleware.AuthMiddleware(testTokens), middleware.RoleMiddleware(testTokens, string(models.RoleAdmin)))
	})
	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	if cfg.Database.Host == "" {
		fmt.Println("TEST_DB_* is not set, skipping integration tests")
		os.Exit(0)
	}

	testDB, err = sql.Open("mysql", cfg.DSN()+"&multiStatements=true")
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	if err := migrateUp(testDB); err != nil {
		panic(fmt.Sprintf("Failed to run migrations: %v", err))
	}

	testTokens = service.NewTokenGenerator(testSecret, time.Hour)

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func migrateUp(db *sql.DB) error {
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{
		MigrationsTable: "coursetrack_schema_migrations",
	})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "mysql", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// seedTestData inserts a student, an administrator and a course with two levels of two modules
func seedTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	cleanupTestData(t, db)

	_, err := db.Exec(`
		INSERT INTO students (id, name, email, roll_number, department, year) VALUES
		(?, 'Ann Lee', 'ann@example.com', 'CS-001', 'CS', 2),
		(?, 'Admin', 'admin@example.com', 'ADM-001', 'Staff', 0)`,
		testStudentID, testAdminID)
	require.NoError(t, err, "Failed to seed students")

	now := time.Now().UTC()
	course := &models.Course{
		ID:    testCourseID,
		Title: "Go Basics",
		Levels: []models.Level{
			{ID: testLevel1ID, Title: "Level 1", Order: 1, Modules: []models.Module{
				{ID: testModule1ID, Title: "Intro", Order: 1, ContentType: models.ContentTypeVideo, TotalLength: 600},
				{ID: testModule2ID, Title: "Syntax", Order: 2, ContentType: models.ContentTypeVideo, TotalLength: 300},
			}},
			{ID: testLevel2ID, Title: "Level 2", Order: 2, Modules: []models.Module{
				{ID: testModule3ID, Title: "Types", Order: 1, ContentType: models.ContentTypeVideo},
				{ID: testModule4ID, Title: "Exercise", Order: 2, ContentType: models.ContentTypeProblem},
			}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repositories.NewCourseRepository(db).Create(context.Background(), course), "Failed to seed course")
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"course_progress", "courses", "students"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err, "Failed to cleanup "+table)
	}
}

func doRequest(t *testing.T, router http.Handler, method, path, userID string, role models.Role, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := testTokens.Generate(userID, string(role))
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProgress(t *testing.T, w *httptest.ResponseRecorder) models.Progress {
	t.Helper()
	var body struct {
		Progress models.Progress `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Progress
}

func TestIntegration_ProgressScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)
	router := setupTestRouter(testDB, testLogger)

	base := "/api/v1/progress/" + testCourseID

	w := doRequest(t, router, http.MethodGet, base, testStudentID, models.RoleStudent, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeProgress(t, w).OverallProgress)

	w = doRequest(t, router, http.MethodPost, base+"/"+testModule1ID+"/watch", testStudentID, models.RoleStudent, `{"watchTime":30,"percentWatched":95}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 25, decodeProgress(t, w).OverallProgress)

	w = doRequest(t, router, http.MethodPost, base+"/"+testModule2ID+"/watch", testStudentID, models.RoleStudent, `{"watchTime":10,"percentWatched":50}`)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decodeProgress(t, w)
	assert.Equal(t, 25, progress.OverallProgress)
	assert.Equal(t, 40, progress.TotalWatchTime)

	w = doRequest(t, router, http.MethodPost, base+"/"+testModule2ID+"/complete", testStudentID, models.RoleStudent, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, decodeProgress(t, w).OverallProgress)

	w = doRequest(t, router, http.MethodGet, base+"/"+testModule3ID, testStudentID, models.RoleStudent, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":false`)

	w = doRequest(t, router, http.MethodPost, base+"/not-a-uuid/watch", testStudentID, models.RoleStudent, `{"watchTime":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegration_ConcurrentWatchReports(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	// Two routers own separate in-process locks, so only the store serialises them
	routers := []http.Handler{setupTestRouter(testDB, testLogger), setupTestRouter(testDB, testLogger)}
	path := "/api/v1/progress/" + testCourseID + "/" + testModule1ID + "/watch"

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(router http.Handler) {
			defer wg.Done()
			w := doRequest(t, router, http.MethodPost, path, testStudentID, models.RoleStudent, `{"watchTime":10,"percentWatched":5}`)
			assert.Equal(t, http.StatusOK, w.Code)
		}(routers[i%2])
	}
	wg.Wait()

	progress, err := repositories.NewProgressRepository(testDB).GetByStudentAndCourse(context.Background(), testStudentID, testCourseID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 100, progress.TotalWatchTime)
}

func TestIntegration_CourseAnalytics(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)
	router := setupTestRouter(testDB, testLogger)

	w := doRequest(t, router, http.MethodPost, "/api/v1/progress/"+testCourseID+"/"+testModule1ID+"/complete", testStudentID, models.RoleStudent, "")
	require.Equal(t, http.StatusOK, w.Code)

	path := "/api/v1/progress/" + testCourseID + "/analytics?department=CS"

	w = doRequest(t, router, http.MethodGet, path, testStudentID, models.RoleStudent, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodGet, path, testAdminID, models.RoleAdmin, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Analytics models.AnalyticsReport `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Analytics.Total)
	require.Len(t, body.Analytics.Entries, 1)
	assert.Equal(t, "Ann Lee", body.Analytics.Entries[0].Student.Name)
	assert.Equal(t, 25, body.Analytics.Entries[0].OverallProgress)
	assert.Equal(t, models.BucketStruggling, body.Analytics.Entries[0].Bucket)
}

func TestIntegration_CourseVisibilityAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)
	router := setupTestRouter(testDB, testLogger)

	w := doRequest(t, router, http.MethodGet, "/api/v1/courses", testStudentID, models.RoleStudent, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testCourseID)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/admin/courses/"+testCourseID, testStudentID, models.RoleStudent, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/progress/"+testCourseID+"/"+testModule1ID+"/complete", testStudentID, models.RoleStudent, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/admin/courses/"+testCourseID, testAdminID, models.RoleAdmin, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	var remaining int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM course_progress WHERE course_id = ?", testCourseID).Scan(&remaining))
	assert.Equal(t, 0, remaining)
}
