package cron

import (
	"context"
	"errors"
	"testing"

	"handyhelp/models"
	"handyhelp/services/tasks"
	"handyhelp/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockResumer struct {
	mock.Mock
}

func (m *mockResumer) ResumeWorkflow(ctx context.Context, workflowID string) error {
	return m.Called(ctx, workflowID).Error(0)
}

func resumeTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewWorkflowResumeTask(models.WorkflowResumePayload{WorkflowID: id, BookingID: "b"})
	require.NoError(t, err)
	return task
}

func TestHandleWorkflowResume(t *testing.T) {
	utils.Logger = zap.NewNop()

	tests := []struct {
		name      string
		resumeErr error
		wantErr   bool
		skipRetry bool
	}{
		{"completed", nil, false, false},
		{"conflict is final", utils.ConflictError("Booking is no longer awaiting a response"), false, false},
		{"missing workflow", utils.NotFoundError("workflow wf not found"), true, true},
		{"store outage retries", utils.StoreError("Failed to accept booking.", errors.New("timeout")), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resumer := &mockResumer{}
			resumer.On("ResumeWorkflow", mock.Anything, "wf").Return(tt.resumeErr).Once()

			err := HandleWorkflowResume(resumer)(context.Background(), resumeTask(t, "wf"))
			resumer.AssertExpectations(t)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestHandleWorkflowResumeBadPayload(t *testing.T) {
	utils.Logger = zap.NewNop()
	resumer := &mockResumer{}

	err := HandleWorkflowResume(resumer)(context.Background(), asynq.NewTask(tasks.TypeWorkflowResume, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	resumer.AssertNotCalled(t, "ResumeWorkflow", mock.Anything, mock.Anything)
}
