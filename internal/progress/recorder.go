package progress

import (
	"time"

	"github.com/coursetrack/backend/internal/apperr"
	"github.com/coursetrack/backend/internal/models"
)

// CompletionThreshold is the watched percentage at which a module completes
const CompletionThreshold = 90.0

// Watch is one telemetry report folded into a module
type Watch struct {
	Delta          int
	PercentWatched float64
	ResumeAt       int
	// ReportedLength is the duration reported by the player, used only when the
	// module does not declare its own length.
	ReportedLength int
}

// ApplyWatch folds a watch report into the module entry of p.
//
// percentWatched never regresses and completion is sticky. Watched time is
// accumulated as reported, so resending the same delta counts it twice.
func ApplyWatch(p *models.Progress, module *models.Module, w Watch, now time.Time) error {
	mp, ok := p.FindModule(module.ID)
	if !ok || mp.Orphaned {
		return apperr.NotFound("module %s not found in progress", module.ID)
	}

	length := module.TotalLength
	if length <= 0 {
		length = w.ReportedLength
	}

	delta := w.Delta
	if delta < 0 {
		delta = 0
	}
	if length > 0 && delta > length {
		delta = length
	}
	percent := clampPercent(w.PercentWatched)
	resumeAt := w.ResumeAt
	if resumeAt < 0 {
		resumeAt = 0
	}
	if length > 0 && resumeAt > length {
		resumeAt = length
	}

	mp.Sessions = append(mp.Sessions, models.WatchSession{
		StartTime:      now,
		Duration:       delta,
		PercentWatched: percent,
	})
	mp.TotalWatched += delta
	if percent > mp.PercentWatched {
		mp.PercentWatched = percent
	}
	if mp.PercentWatched >= CompletionThreshold && !mp.Completed {
		markCompleted(mp, now)
	}
	watched := now
	mp.LastWatchedAt = &watched
	mp.ResumeAt = resumeAt

	return nil
}

// MarkComplete completes a module without telemetry. Calling it on an already
// completed module changes nothing and returns false.
func MarkComplete(p *models.Progress, moduleID string, now time.Time) (bool, error) {
	mp, ok := p.FindModule(moduleID)
	if !ok || mp.Orphaned {
		return false, apperr.NotFound("module %s not found in progress", moduleID)
	}
	if mp.Completed && mp.PercentWatched == 100 {
		return false, nil
	}
	mp.PercentWatched = 100
	if !mp.Completed {
		markCompleted(mp, now)
	}
	return true, nil
}

func markCompleted(mp *models.ModuleProgress, now time.Time) {
	completedAt := now
	mp.Completed = true
	mp.CompletedAt = &completedAt
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
