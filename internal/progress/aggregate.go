package progress

import (
	"math"
	"time"

	"github.com/coursetrack/backend/internal/models"
)

// Recompute refreshes every derived field of p.
//
// The module count comes from the live course, so adding modules to a course lowers
// overallProgress for existing learners without any migration. Orphaned modules keep
// their own history but are left out of every rollup, watch time included.
func Recompute(p *models.Progress, course *models.Course, now time.Time) {
	completedModules := 0
	totalWatch := 0

	for i := range p.Levels {
		lp := &p.Levels[i]
		lp.TotalTimeSpent = 0
		allDone := true
		for _, mp := range lp.Modules {
			if mp.Orphaned {
				continue
			}
			lp.TotalTimeSpent += mp.TotalWatched
			if mp.Completed {
				completedModules++
			} else {
				allDone = false
			}
		}
		lp.Completed = allDone && !lp.Orphaned
		totalWatch += lp.TotalTimeSpent
	}

	p.OverallProgress = OverallPercent(completedModules, course.ModuleCount())
	p.TotalWatchTime = totalWatch
	accessed := now
	p.LastAccessedAt = &accessed
}

// OverallPercent returns round(100 * completed / total), 0 for an empty course
func OverallPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct > 100 {
		return 100
	}
	return pct
}
