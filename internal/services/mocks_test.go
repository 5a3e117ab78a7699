package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
	"github.com/hibiken/asynq"
)

const (
	testCourseID  = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c01"
	testStudentID = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c02"
	testLevel1ID  = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c11"
	testLevel2ID  = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c12"
	testModule1ID = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c21"
	testModule2ID = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c22"
	testModule3ID = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c23"
	testModule4ID = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c24"
	testModule5ID = "6f1c2b1e-0a7d-4c55-8d2e-6a4a1f0b9c25"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// testCourse returns a course with two levels of two modules each
func testCourse() *models.Course {
	return &models.Course{
		ID:    testCourseID,
		Title: "Go Basics",
		Levels: []models.Level{
			{
				ID:    testLevel1ID,
				Title: "Level 1",
				Order: 1,
				Modules: []models.Module{
					{ID: testModule1ID, Title: "Intro", Order: 1, ContentType: models.ContentTypeVideo, TotalLength: 600},
					{ID: testModule2ID, Title: "Syntax", Order: 2, ContentType: models.ContentTypeVideo, TotalLength: 300},
				},
			},
			{
				ID:    testLevel2ID,
				Title: "Level 2",
				Order: 2,
				Modules: []models.Module{
					{ID: testModule3ID, Title: "Types", Order: 1, ContentType: models.ContentTypeVideo},
					{ID: testModule4ID, Title: "Exercise", Order: 2, ContentType: models.ContentTypeProblem},
				},
			},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return testNow }
}

func cloneProgress(p *models.Progress) *models.Progress {
	raw, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	var out models.Progress
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

// mockCourseRepository is a mock implementation of CourseStore
type mockCourseRepository struct {
	mu         sync.Mutex
	course     *models.Course
	courses    []models.Course
	err        error
	getAllErr  error
	createErr  error
	updateErr  error
	deleteErr  error
	created    *models.Course
	updated    *models.Course
	deletedID  string
	getByIDCnt int
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByIDCnt++
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil || m.course.ID != id {
		return nil, apperr.NotFound("course not found")
	}
	copied := *m.course
	return &copied, nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.courses, nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	m.created = course
	return m.createErr
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	m.updated = course
	return m.updateErr
}

func (m *mockCourseRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

// mockProgressRepository is an in-memory ProgressRepository.
//
// It has no locking of its own: Mutate reads, sleeps for delay and writes back, so
// unsynchronised callers lose updates the way an unguarded store would.
type mockProgressRepository struct {
	records     map[string]*models.Progress
	getErr      error
	mutateErr   error
	listErr     error
	mutateCalls int
	delay       time.Duration
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{records: make(map[string]*models.Progress)}
}

func progressKey(studentID, courseID string) string {
	return studentID + "|" + courseID
}

func (m *mockProgressRepository) put(p *models.Progress) {
	m.records[progressKey(p.StudentID, p.CourseID)] = cloneProgress(p)
}

func (m *mockProgressRepository) stored(studentID, courseID string) *models.Progress {
	return m.records[progressKey(studentID, courseID)]
}

func (m *mockProgressRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Progress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.records[progressKey(studentID, courseID)]
	if !ok {
		return nil, nil
	}
	return cloneProgress(p), nil
}

func (m *mockProgressRepository) Mutate(ctx context.Context, seed *models.Progress, mutate func(p *models.Progress) error) (*models.Progress, error) {
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	m.mutateCalls++

	key := progressKey(seed.StudentID, seed.CourseID)
	current, ok := m.records[key]
	if !ok {
		current = seed
	}
	working := cloneProgress(current)

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if err := mutate(working); err != nil {
		return nil, err
	}
	m.records[key] = cloneProgress(working)
	return working, nil
}

func (m *mockProgressRepository) ListStudentIDsByCourse(ctx context.Context, courseID string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var ids []string
	for _, p := range m.records {
		if p.CourseID == courseID {
			ids = append(ids, p.StudentID)
		}
	}
	return ids, nil
}

// mockAnalyticsCache is a mock implementation of AnalyticsCache
type mockAnalyticsCache struct {
	mu            sync.Mutex
	rows          map[string]cachedRows
	generations   map[string]int64
	getErr        error
	setErr        error
	invalidateErr error
	invalidated   []string
	setCalls      int
}

type cachedRows struct {
	generation int64
	rows       []models.AnalyticsRow
}

func newMockAnalyticsCache() *mockAnalyticsCache {
	return &mockAnalyticsCache{
		rows:        make(map[string]cachedRows),
		generations: make(map[string]int64),
	}
}

func (m *mockAnalyticsCache) Get(ctx context.Context, courseID string) ([]models.AnalyticsRow, int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, 0, false, m.getErr
	}
	gen := m.generations[courseID]
	entry, ok := m.rows[courseID]
	if !ok || entry.generation != gen {
		return nil, gen, false, nil
	}
	return entry.rows, gen, true, nil
}

func (m *mockAnalyticsCache) Set(ctx context.Context, courseID string, generation int64, rows []models.AnalyticsRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.rows[courseID] = cachedRows{generation: generation, rows: rows}
	return nil
}

func (m *mockAnalyticsCache) Invalidate(ctx context.Context, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, courseID)
	if m.invalidateErr != nil {
		return m.invalidateErr
	}
	m.generations[courseID]++
	return nil
}

// mockAnalyticsRepository is a mock implementation of AnalyticsRepository
type mockAnalyticsRepository struct {
	rows  []models.AnalyticsRow
	err   error
	calls int
	// afterRead runs once the rows are read and before they are returned
	afterRead func()
}

func (m *mockAnalyticsRepository) GetAnalyticsRows(ctx context.Context, courseID string) ([]models.AnalyticsRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	rows := m.rows
	if m.afterRead != nil {
		hook := m.afterRead
		m.afterRead = nil
		hook()
	}
	return rows, nil
}

// mockStudentRepository is a mock implementation of StudentRepository
type mockStudentRepository struct {
	students map[string]*models.Student
	err      error
}

func (m *mockStudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	student, ok := m.students[id]
	if !ok {
		return nil, apperr.NotFound("student not found")
	}
	return student, nil
}

// mockEnqueuer is a mock implementation of TaskEnqueuer
type mockEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	return &asynq.TaskInfo{Type: task.Type(), Payload: task.Payload()}, nil
}
