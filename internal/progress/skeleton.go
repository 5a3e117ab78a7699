// Package progress holds the pure progress model: skeleton seeding, reconciliation
// against the live course, watch-session folding and rollup recomputation.
//
// Nothing here touches storage, so every rule can be tested on plain values.
package progress

import (
	"strings"
	"time"

	"github.com/coursetrack/backend/internal/models"
	"github.com/google/uuid"
)

// NewSkeleton creates a zero-progress record mirroring the course structure
func NewSkeleton(course *models.Course, studentID string, now time.Time) *models.Progress {
	p := &models.Progress{
		ID:        uuid.New().String(),
		StudentID: studentID,
		CourseID:  course.ID,
		Levels:    make([]models.LevelProgress, 0, len(course.Levels)),
		CreatedAt: now,
	}
	for _, level := range course.Levels {
		lp := models.LevelProgress{
			LevelID: level.ID,
			Modules: make([]models.ModuleProgress, 0, len(level.Modules)),
		}
		for _, module := range level.Modules {
			lp.Modules = append(lp.Modules, models.ModuleProgress{ModuleID: module.ID, Sessions: []models.WatchSession{}})
		}
		p.Levels = append(p.Levels, lp)
	}
	return p
}

// Reconcile rewrites the skeleton of p to follow the live course structure.
//
// Modules added to the course get zero-progress entries, modules that moved between
// levels follow the course, and modules that were removed are kept as orphaned
// entries. Returns true when the skeleton changed.
func Reconcile(p *models.Progress, course *models.Course) bool {
	before := signature(p)

	existing := make(map[string]models.ModuleProgress)
	homeLevel := make(map[string]string)
	for _, lp := range p.Levels {
		for _, mp := range lp.Modules {
			existing[mp.ModuleID] = mp
			homeLevel[mp.ModuleID] = lp.LevelID
		}
	}

	levels := make([]models.LevelProgress, 0, len(course.Levels))
	levelIndex := make(map[string]int, len(course.Levels))
	for _, level := range course.Levels {
		lp := models.LevelProgress{
			LevelID: level.ID,
			Modules: make([]models.ModuleProgress, 0, len(level.Modules)),
		}
		for _, module := range level.Modules {
			mp, ok := existing[module.ID]
			if !ok {
				mp = models.ModuleProgress{ModuleID: module.ID, Sessions: []models.WatchSession{}}
			}
			mp.Orphaned = false
			delete(existing, module.ID)
			lp.Modules = append(lp.Modules, mp)
		}
		levelIndex[level.ID] = len(levels)
		levels = append(levels, lp)
	}

	// Whatever is left no longer exists in the course. Walk the old tree again so
	// orphans keep their original order.
	for _, oldLevel := range p.Levels {
		for _, old := range oldLevel.Modules {
			mp, ok := existing[old.ModuleID]
			if !ok {
				continue
			}
			mp.Orphaned = true
			home := homeLevel[mp.ModuleID]
			idx, ok := levelIndex[home]
			if !ok {
				idx = len(levels)
				levelIndex[home] = idx
				levels = append(levels, models.LevelProgress{LevelID: home, Orphaned: true})
			}
			levels[idx].Modules = append(levels[idx].Modules, mp)
		}
	}

	p.Levels = levels
	return signature(p) != before
}

func signature(p *models.Progress) string {
	var b strings.Builder
	for _, lp := range p.Levels {
		b.WriteString(lp.LevelID)
		if lp.Orphaned {
			b.WriteByte('!')
		}
		b.WriteByte('[')
		for _, mp := range lp.Modules {
			b.WriteString(mp.ModuleID)
			if mp.Orphaned {
				b.WriteByte('!')
			}
			b.WriteByte(',')
		}
		b.WriteByte(']')
	}
	return b.String()
}
