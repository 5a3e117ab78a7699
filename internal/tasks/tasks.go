// Package tasks defines the background jobs exchanged between the API and the worker
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeReconcileCourse rebuilds every progress record of a course after the course changed
	TypeReconcileCourse = "progress:reconcile_course"

	// QueueProgress is the queue progress maintenance jobs run on
	QueueProgress = "progress"
)

// ReconcileCoursePayload is the payload of TypeReconcileCourse
type ReconcileCoursePayload struct {
	CourseID string `json:"courseId"`
}

// NewReconcileCourseTask creates a reconcile job for a course
func NewReconcileCourseTask(courseID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ReconcileCoursePayload{CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode reconcile payload: %w", err)
	}
	return asynq.NewTask(TypeReconcileCourse, payload), nil
}

// ParseReconcileCoursePayload decodes the payload of a reconcile job
func ParseReconcileCoursePayload(t *asynq.Task) (*ReconcileCoursePayload, error) {
	var payload ReconcileCoursePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode reconcile payload: %w", err)
	}
	if payload.CourseID == "" {
		return nil, fmt.Errorf("course id is required")
	}
	return &payload, nil
}
