package progress

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/coursetrack/backend/internal/models"
)

const (
	CompletedBucketMin  = 90
	StrugglingBucketMax = 40

	DefaultAnalyticsCount = 50
	MaxAnalyticsCount     = 1000
)

var bucketOrder = []models.Bucket{
	models.BucketCompleted,
	models.BucketInProgress,
	models.BucketStruggling,
	models.BucketNotStarted,
}

// ClassifyBucket maps an overall progress value to its bucket
func ClassifyBucket(overall int) models.Bucket {
	switch {
	case overall >= CompletedBucketMin:
		return models.BucketCompleted
	case overall <= 0:
		return models.BucketNotStarted
	case overall < StrugglingBucketMax:
		return models.BucketStruggling
	default:
		return models.BucketInProgress
	}
}

// BuildReport filters, sorts, groups and paginates analytics rows for one course.
// Groups and the summary cover every row that passed the filters, not only the
// returned page.
func BuildReport(courseID string, rows []models.AnalyticsRow, q models.AnalyticsQuery) *models.AnalyticsReport {
	entries := make([]models.AnalyticsEntry, 0, len(rows))
	for _, row := range rows {
		entry := models.AnalyticsEntry{AnalyticsRow: row, Bucket: ClassifyBucket(row.OverallProgress)}
		if matches(entry, q) {
			entries = append(entries, entry)
		}
	}

	sortEntries(entries, q.SortBy, q.Descending)

	page, count := q.Page, q.Count
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = DefaultAnalyticsCount
	}

	report := &models.AnalyticsReport{
		CourseID: courseID,
		Total:    len(entries),
		Page:     page,
		Count:    count,
		Entries:  paginate(entries, page, count),
		Summary:  summarize("all", entries),
	}
	report.ByDepartment = groupBy(entries, func(e models.AnalyticsEntry) string { return e.Student.Department }, strings.Compare)
	report.ByYear = groupBy(entries, func(e models.AnalyticsEntry) string { return strconv.Itoa(e.Student.Year) }, compareNumeric)
	report.ByBucket = bucketGroups(entries)

	return report
}

func matches(e models.AnalyticsEntry, q models.AnalyticsQuery) bool {
	if q.Department != "" && !strings.EqualFold(e.Student.Department, q.Department) {
		return false
	}
	if q.Year != nil && e.Student.Year != *q.Year {
		return false
	}
	if q.Bucket != "" && e.Bucket != q.Bucket {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(q.Search))
		haystack := []string{e.Student.Name, e.Student.Email, e.Student.RollNumber}
		found := false
		for _, s := range haystack {
			if strings.Contains(strings.ToLower(s), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortEntries(entries []models.AnalyticsEntry, by models.AnalyticsSortField, desc bool) {
	byName := func(a, b models.AnalyticsEntry) int {
		if c := cmp.Compare(strings.ToLower(a.Student.Name), strings.ToLower(b.Student.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Student.ID, b.Student.ID)
	}

	var primary func(a, b models.AnalyticsEntry) int
	switch by {
	case models.SortByProgress:
		primary = func(a, b models.AnalyticsEntry) int { return cmp.Compare(a.OverallProgress, b.OverallProgress) }
	case models.SortByLastAccessed:
		primary = func(a, b models.AnalyticsEntry) int { return compareTimes(a.LastAccessedAt, b.LastAccessedAt) }
	default:
		primary = byName
	}

	slices.SortStableFunc(entries, func(a, b models.AnalyticsEntry) int {
		c := primary(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return byName(a, b)
	})
}

// compareTimes orders never-accessed records before everything else
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func compareNumeric(a, b string) int {
	x, _ := strconv.Atoi(a)
	y, _ := strconv.Atoi(b)
	return cmp.Compare(x, y)
}

func paginate(entries []models.AnalyticsEntry, page, count int) []models.AnalyticsEntry {
	// compare in page units so huge page or count values cannot overflow
	if len(entries) == 0 || page-1 > (len(entries)-1)/count {
		return []models.AnalyticsEntry{}
	}
	start := (page - 1) * count
	end := start + min(count, len(entries)-start)
	return entries[start:end]
}

func groupBy(entries []models.AnalyticsEntry, key func(models.AnalyticsEntry) string, order func(a, b string) int) []models.GroupSummary {
	grouped := make(map[string][]models.AnalyticsEntry)
	for _, e := range entries {
		k := key(e)
		grouped[k] = append(grouped[k], e)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, order)

	groups := make([]models.GroupSummary, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, summarize(k, grouped[k]))
	}
	return groups
}

func bucketGroups(entries []models.AnalyticsEntry) []models.GroupSummary {
	groups := make([]models.GroupSummary, 0, len(bucketOrder))
	for _, bucket := range bucketOrder {
		var members []models.AnalyticsEntry
		for _, e := range entries {
			if e.Bucket == bucket {
				members = append(members, e)
			}
		}
		groups = append(groups, summarize(string(bucket), members))
	}
	return groups
}

func summarize(key string, entries []models.AnalyticsEntry) models.GroupSummary {
	g := models.GroupSummary{Key: key, Learners: len(entries)}
	if len(entries) == 0 {
		return g
	}

	var progressSum, watchSum int
	for _, e := range entries {
		progressSum += e.OverallProgress
		watchSum += e.TotalWatchTime
		switch e.Bucket {
		case models.BucketCompleted:
			g.CompletedCount++
		case models.BucketInProgress:
			g.InProgressCount++
		case models.BucketStruggling:
			g.StrugglingCount++
		case models.BucketNotStarted:
			g.NotStartedCount++
		}
	}

	n := float64(len(entries))
	g.AverageProgress = round2(float64(progressSum) / n)
	g.AverageWatchTime = round2(float64(watchSum) / n)
	g.CompletionRatePct = round2(100 * float64(g.CompletedCount) / n)
	return g
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
