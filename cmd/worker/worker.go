package main

import (
	"context"
	"fmt"

	"github.com/coursetrack/backend/internal/tasks"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ProgressReconciler defines the interface for bulk progress reconciliation
type ProgressReconciler interface {
	// ReconcileCourse rebuilds every progress record of a course against its current structure
	//
	// "ctx" is the context for the task.
	// "courseID" is the ID of the course.
	//
	// Returns the number of reconciled records and an error if any.
	ReconcileCourse(ctx context.Context, courseID string) (int, error)
}

// Worker handles task processing
type Worker struct {
	logger     *zap.Logger
	reconciler ProgressReconciler
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, reconciler ProgressReconciler) *Worker {
	return &Worker{
		logger:     logger,
		reconciler: reconciler,
	}
}

// HandleReconcileCourse handles course reconciliation tasks
func (w *Worker) HandleReconcileCourse(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseReconcileCoursePayload(t)
	if err != nil {
		// A malformed payload never becomes valid
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	updated, err := w.reconciler.ReconcileCourse(ctx, payload.CourseID)
	if err != nil {
		w.logger.Error("Course reconciliation failed",
			zap.String("course_id", payload.CourseID),
			zap.Int("reconciled", updated),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("Course reconciliation completed",
		zap.String("course_id", payload.CourseID),
		zap.Int("reconciled", updated),
	)
	return nil
}
