package progress

import (
	"math"
	"testing"
	"time"

	"github.com/coursetrack/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBucket(t *testing.T) {
	tests := []struct {
		progress int
		expected models.Bucket
	}{
		{progress: 0, expected: models.BucketNotStarted},
		{progress: 1, expected: models.BucketStruggling},
		{progress: 39, expected: models.BucketStruggling},
		{progress: 40, expected: models.BucketInProgress},
		{progress: 89, expected: models.BucketInProgress},
		{progress: 90, expected: models.BucketCompleted},
		{progress: 100, expected: models.BucketCompleted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyBucket(tt.progress), "progress %d", tt.progress)
	}
}

func analyticsRows() []models.AnalyticsRow {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.AnalyticsRow{
		{Student: models.Student{ID: "s1", Name: "Charlie", Email: "charlie@uni.edu", RollNumber: "CS-001", Department: "CS", Year: 2}, OverallProgress: 95, TotalWatchTime: 3000, LastAccessedAt: &t2},
		{Student: models.Student{ID: "s2", Name: "alice", Email: "alice@uni.edu", RollNumber: "EE-014", Department: "EE", Year: 1}, OverallProgress: 20, TotalWatchTime: 600, LastAccessedAt: &t3},
		{Student: models.Student{ID: "s3", Name: "Bob", Email: "bob@uni.edu", RollNumber: "CS-002", Department: "CS", Year: 1}, OverallProgress: 0, TotalWatchTime: 0},
		{Student: models.Student{ID: "s4", Name: "Dana", Email: "dana@uni.edu", RollNumber: "ME-100", Department: "ME", Year: 3}, OverallProgress: 60, TotalWatchTime: 1800, LastAccessedAt: &t1},
	}
}

func entryIDs(entries []models.AnalyticsEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Student.ID)
	}
	return ids
}

func TestBuildReport_SortAndFilter(t *testing.T) {
	year1 := 1

	tests := []struct {
		name          string
		query         models.AnalyticsQuery
		expectedIDs   []string
		expectedTotal int
	}{
		{
			name:          "default sorts by name case-insensitively",
			query:         models.AnalyticsQuery{},
			expectedIDs:   []string{"s2", "s3", "s1", "s4"},
			expectedTotal: 4,
		},
		{
			name:          "progress descending",
			query:         models.AnalyticsQuery{SortBy: models.SortByProgress, Descending: true},
			expectedIDs:   []string{"s1", "s4", "s2", "s3"},
			expectedTotal: 4,
		},
		{
			name:          "last accessed ascending puts never accessed first",
			query:         models.AnalyticsQuery{SortBy: models.SortByLastAccessed},
			expectedIDs:   []string{"s3", "s4", "s1", "s2"},
			expectedTotal: 4,
		},
		{
			name:          "department filter ignores case",
			query:         models.AnalyticsQuery{Department: "cs"},
			expectedIDs:   []string{"s3", "s1"},
			expectedTotal: 2,
		},
		{
			name:          "year filter",
			query:         models.AnalyticsQuery{Year: &year1},
			expectedIDs:   []string{"s2", "s3"},
			expectedTotal: 2,
		},
		{
			name:          "bucket filter",
			query:         models.AnalyticsQuery{Bucket: models.BucketStruggling},
			expectedIDs:   []string{"s2"},
			expectedTotal: 1,
		},
		{
			name:          "search matches roll number",
			query:         models.AnalyticsQuery{Search: "me-1"},
			expectedIDs:   []string{"s4"},
			expectedTotal: 1,
		},
		{
			name:          "search matches email",
			query:         models.AnalyticsQuery{Search: "BOB@"},
			expectedIDs:   []string{"s3"},
			expectedTotal: 1,
		},
		{
			name:          "pagination",
			query:         models.AnalyticsQuery{Page: 2, Count: 3},
			expectedIDs:   []string{"s4"},
			expectedTotal: 4,
		},
		{
			name:          "page past the end",
			query:         models.AnalyticsQuery{Page: 5, Count: 3},
			expectedIDs:   []string{},
			expectedTotal: 4,
		},
		{
			name:          "last partial page",
			query:         models.AnalyticsQuery{Page: 4, Count: 1},
			expectedIDs:   []string{"s4"},
			expectedTotal: 4,
		},
		{
			name:          "count larger than the result set",
			query:         models.AnalyticsQuery{Count: math.MaxInt},
			expectedIDs:   []string{"s2", "s3", "s1", "s4"},
			expectedTotal: 4,
		},
		{
			name:          "huge count on a later page",
			query:         models.AnalyticsQuery{Page: 4, Count: math.MaxInt/2 + 1},
			expectedIDs:   []string{},
			expectedTotal: 4,
		},
		{
			name:          "huge page",
			query:         models.AnalyticsQuery{Page: math.MaxInt, Count: 3},
			expectedIDs:   []string{},
			expectedTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := BuildReport(courseID, analyticsRows(), tt.query)

			assert.Equal(t, courseID, report.CourseID)
			assert.Equal(t, tt.expectedTotal, report.Total)
			assert.Equal(t, tt.expectedIDs, entryIDs(report.Entries))
		})
	}
}

func TestBuildReport_Groups(t *testing.T) {
	report := BuildReport(courseID, analyticsRows(), models.AnalyticsQuery{Count: 1})

	require.Len(t, report.Entries, 1)
	assert.Equal(t, 4, report.Summary.Learners)
	assert.Equal(t, 43.75, report.Summary.AverageProgress)
	assert.Equal(t, 1350.0, report.Summary.AverageWatchTime)
	assert.Equal(t, 25.0, report.Summary.CompletionRatePct)

	require.Len(t, report.ByDepartment, 3)
	assert.Equal(t, "CS", report.ByDepartment[0].Key)
	assert.Equal(t, 2, report.ByDepartment[0].Learners)
	assert.Equal(t, 47.5, report.ByDepartment[0].AverageProgress)
	assert.Equal(t, 1, report.ByDepartment[0].CompletedCount)
	assert.Equal(t, 1, report.ByDepartment[0].NotStartedCount)

	require.Len(t, report.ByYear, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{report.ByYear[0].Key, report.ByYear[1].Key, report.ByYear[2].Key})
	assert.Equal(t, 2, report.ByYear[0].Learners)

	require.Len(t, report.ByBucket, 4)
	counts := map[string]int{}
	for _, g := range report.ByBucket {
		counts[g.Key] = g.Learners
	}
	assert.Equal(t, map[string]int{"completed": 1, "in_progress": 1, "struggling": 1, "not_started": 1}, counts)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(courseID, nil, models.AnalyticsQuery{})

	assert.Equal(t, 0, report.Total)
	assert.NotNil(t, report.Entries)
	assert.Empty(t, report.Entries)
	assert.Equal(t, 0, report.Summary.Learners)
	assert.Empty(t, report.ByDepartment)
	assert.Len(t, report.ByBucket, 4)
}
