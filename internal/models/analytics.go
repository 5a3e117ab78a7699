package models

import "time"

// Bucket classifies a learner by overall progress
type Bucket string

const (
	BucketCompleted  Bucket = "completed"
	BucketInProgress Bucket = "in_progress"
	BucketStruggling Bucket = "struggling"
	BucketNotStarted Bucket = "not_started"
)

// AnalyticsSortField is the column analytics entries are sorted by
type AnalyticsSortField string

const (
	SortByName         AnalyticsSortField = "name"
	SortByProgress     AnalyticsSortField = "progress"
	SortByLastAccessed AnalyticsSortField = "lastAccessed"
)

// AnalyticsRow is one progress record joined with its learner profile
type AnalyticsRow struct {
	Student         Student    `json:"student"`
	OverallProgress int        `json:"overallProgress"`
	TotalWatchTime  int        `json:"totalWatchTime"`
	LastAccessedAt  *time.Time `json:"lastAccessedAt,omitempty"`
}

// AnalyticsEntry is an analytics row with its bucket attached
type AnalyticsEntry struct {
	AnalyticsRow
	Bucket Bucket `json:"bucket"`
}

// AnalyticsQuery holds filtering, sorting and pagination for course analytics
type AnalyticsQuery struct {
	Department string
	Year       *int
	Bucket     Bucket
	Search     string
	SortBy     AnalyticsSortField
	Descending bool
	Page       int
	Count      int
}

// GroupSummary aggregates a set of analytics entries
type GroupSummary struct {
	Key               string  `json:"key"`
	Learners          int     `json:"learners"`
	AverageProgress   float64 `json:"averageProgress"`
	AverageWatchTime  float64 `json:"averageWatchTime"`
	CompletedCount    int     `json:"completedCount"`
	InProgressCount   int     `json:"inProgressCount"`
	StrugglingCount   int     `json:"strugglingCount"`
	NotStartedCount   int     `json:"notStartedCount"`
	CompletionRatePct float64 `json:"completionRatePct"`
}

// AnalyticsReport is the response of the course analytics operation
type AnalyticsReport struct {
	CourseID     string           `json:"courseId"`
	Total        int              `json:"total"`
	Page         int              `json:"page"`
	Count        int              `json:"count"`
	Entries      []AnalyticsEntry `json:"entries"`
	Summary      GroupSummary     `json:"summary"`
	ByDepartment []GroupSummary   `json:"byDepartment"`
	ByYear       []GroupSummary   `json:"byYear"`
	ByBucket     []GroupSummary   `json:"byBucket"`
}
