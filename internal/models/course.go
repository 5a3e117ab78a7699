package models

import "time"

// ContentType describes what a module delivers to the learner
type ContentType string

const (
	ContentTypeVideo   ContentType = "video"
	ContentTypeProblem ContentType = "problem"
)

// Module is a single unit of content inside a level
type Module struct {
	ID          string      `json:"id" validate:"required,uuid"`
	Title       string      `json:"title" validate:"required,max=255"`
	Order       int         `json:"order"`
	ContentType ContentType `json:"contentType" validate:"required,oneof=video problem"`
	// Content is a video locator for video modules and the problem statement otherwise.
	Content string `json:"content"`
	// TotalLength is the declared video length in seconds. When positive it wins
	// over the duration reported by the player.
	TotalLength     int      `json:"totalLength" validate:"gte=0"`
	CodingQuestions []string `json:"codingQuestions,omitempty" validate:"dive,required"`
}

// Level groups modules of a course
type Level struct {
	ID      string   `json:"id" validate:"required,uuid"`
	Title   string   `json:"title" validate:"required,max=255"`
	Order   int      `json:"order"`
	Modules []Module `json:"modules" validate:"dive"`
}

// Course is the course document. Levels and modules are embedded.
type Course struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Levels             []Level   `json:"levels"`
	AllowedYears       []int     `json:"allowedYears"`
	AllowedStudentIDs  []string  `json:"allowedStudentIds"`
	EnrolledStudentIDs []string  `json:"enrolledStudentIds"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ModuleCount returns the number of modules across all levels
func (c *Course) ModuleCount() int {
	total := 0
	for _, level := range c.Levels {
		total += len(level.Modules)
	}
	return total
}

// FindModule looks a module up by id and returns it together with its level id
func (c *Course) FindModule(moduleID string) (*Module, string, bool) {
	for i := range c.Levels {
		for j := range c.Levels[i].Modules {
			if c.Levels[i].Modules[j].ID == moduleID {
				return &c.Levels[i].Modules[j], c.Levels[i].ID, true
			}
		}
	}
	return nil, "", false
}

// IsVisibleTo reports whether a student may see the course.
//
// A course with no allowed years and no allowed students is visible to everyone.
// Otherwise the student must match either list.
func (c *Course) IsVisibleTo(studentID string, year int) bool {
	if len(c.AllowedYears) == 0 && len(c.AllowedStudentIDs) == 0 {
		return true
	}
	for _, y := range c.AllowedYears {
		if y == year {
			return true
		}
	}
	for _, id := range c.AllowedStudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TotalLevels  int    `json:"totalLevels"`
	TotalModules int    `json:"totalModules"`
}

// CourseRequest is the body for creating or replacing a course
type CourseRequest struct {
	Title              string   `json:"title" validate:"required,max=255"`
	Description        string   `json:"description" validate:"max=5000"`
	Levels             []Level  `json:"levels" validate:"dive"`
	AllowedYears       []int    `json:"allowedYears" validate:"dive,gte=1,lte=10"`
	AllowedStudentIDs  []string `json:"allowedStudentIds" validate:"dive,uuid"`
	EnrolledStudentIDs []string `json:"enrolledStudentIds" validate:"dive,uuid"`
}
