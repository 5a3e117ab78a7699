package models

import "time"

// WatchSession is one reported interval of viewing telemetry
type WatchSession struct {
	StartTime      time.Time `json:"startTime"`
	Duration       int       `json:"duration"`
	PercentWatched float64   `json:"percentWatched"`
}

// ModuleProgress is the learner state for a single module
type ModuleProgress struct {
	ModuleID       string         `json:"moduleId"`
	TotalWatched   int            `json:"totalWatched"`
	PercentWatched float64        `json:"percentWatched"`
	Completed      bool           `json:"completed"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	LastWatchedAt  *time.Time     `json:"lastWatchedAt,omitempty"`
	ResumeAt       int            `json:"resumeAt"`
	Sessions       []WatchSession `json:"sessions"`
	// Orphaned is set when the module no longer exists in the course.
	// Orphaned entries keep their history but are left out of every rollup.
	Orphaned bool `json:"orphaned,omitempty"`
}

// LevelProgress holds module progress for one level of the course
type LevelProgress struct {
	LevelID        string           `json:"levelId"`
	Modules        []ModuleProgress `json:"modules"`
	Completed      bool             `json:"completed"`
	TotalTimeSpent int              `json:"totalTimeSpent"`
	Orphaned       bool             `json:"orphaned,omitempty"`
}

// Progress is the aggregate record of one learner's advancement through one course
type Progress struct {
	ID              string          `json:"id"`
	StudentID       string          `json:"studentId"`
	CourseID        string          `json:"courseId"`
	Levels          []LevelProgress `json:"levels"`
	OverallProgress int             `json:"overallProgress"`
	TotalWatchTime  int             `json:"totalWatchTime"`
	LastAccessedAt  *time.Time      `json:"lastAccessedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	// Reconciled is true when the skeleton was changed to match the live course
	// while serving the request.
	Reconciled bool `json:"reconciled,omitempty"`
}

// FindModule returns a pointer into the progress tree for the given module
func (p *Progress) FindModule(moduleID string) (*ModuleProgress, bool) {
	for i := range p.Levels {
		for j := range p.Levels[i].Modules {
			if p.Levels[i].Modules[j].ModuleID == moduleID {
				return &p.Levels[i].Modules[j], true
			}
		}
	}
	return nil, false
}

// WatchRequest is the telemetry body sent by the player
type WatchRequest struct {
	WatchTime      int     `json:"watchTime" validate:"gte=0"`
	PercentWatched float64 `json:"percentWatched"`
	TotalLength    int     `json:"totalLength" validate:"gte=0"`
	ResumeAt       int     `json:"resumeAt" validate:"gte=0"`
}
