package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCourseTask(t *testing.T) {
	task, err := NewReconcileCourseTask("3f0c9a52-8a4e-4a53-bf0e-1d1f3c7b2a10")
	require.NoError(t, err)
	assert.Equal(t, TypeReconcileCourse, task.Type())

	payload, err := ParseReconcileCoursePayload(task)
	require.NoError(t, err)
	assert.Equal(t, "3f0c9a52-8a4e-4a53-bf0e-1d1f3c7b2a10", payload.CourseID)
}

func TestParseReconcileCoursePayload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "not json", payload: []byte("course")},
		{name: "missing course id", payload: []byte(`{}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParseReconcileCoursePayload(asynq.NewTask(TypeReconcileCourse, tt.payload))

			assert.Error(t, err)
			assert.Nil(t, payload)
		})
	}
}
