package progress

import (
	"time"

	"github.com/coursetrack/backend/internal/models"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

const (
	courseID  = "0b6f2c1e-4c1a-4d5e-9f10-2a3b4c5d6e7f"
	studentID = "5d9a8b7c-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
	level1ID  = "11111111-1111-4111-8111-111111111111"
	level2ID  = "22222222-2222-4222-8222-222222222222"
	module1ID = "aaaaaaaa-0001-4000-8000-000000000001"
	module2ID = "aaaaaaaa-0002-4000-8000-000000000002"
	module3ID = "aaaaaaaa-0003-4000-8000-000000000003"
	module4ID = "aaaaaaaa-0004-4000-8000-000000000004"
	module5ID = "aaaaaaaa-0005-4000-8000-000000000005"
)

// twoByTwoCourse returns a course with 2 levels of 2 video modules each
func twoByTwoCourse() *models.Course {
	return &models.Course{
		ID:    courseID,
		Title: "Data Structures",
		Levels: []models.Level{
			{
				ID:    level1ID,
				Title: "Basics",
				Modules: []models.Module{
					{ID: module1ID, Title: "Arrays", ContentType: models.ContentTypeVideo, TotalLength: 600},
					{ID: module2ID, Title: "Lists", ContentType: models.ContentTypeVideo, TotalLength: 300},
				},
			},
			{
				ID:    level2ID,
				Title: "Trees",
				Modules: []models.Module{
					{ID: module3ID, Title: "Binary trees", ContentType: models.ContentTypeVideo},
					{ID: module4ID, Title: "Heaps", ContentType: models.ContentTypeProblem, Content: "Implement a heap"},
				},
			},
		},
	}
}

func moduleOf(c *models.Course, id string) *models.Module {
	m, _, ok := c.FindModule(id)
	if !ok {
		panic("unknown module " + id)
	}
	return m
}
