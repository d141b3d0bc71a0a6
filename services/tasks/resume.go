package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"handyhelp/models"

	"github.com/hibiken/asynq"
)

const TypeWorkflowResume = "booking:workflow:resume"

// ResumeDelay gives the store time to recover before the first retry.
const ResumeDelay = 30 * time.Second

func NewWorkflowResumeTask(payload models.WorkflowResumePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWorkflowResume, b)
	opts := []asynq.Option{
		asynq.ProcessIn(ResumeDelay),
		asynq.MaxRetry(10),
		// One pending resume per workflow.
		asynq.TaskID(TypeWorkflowResume + ":" + payload.WorkflowID),
	}

	return task, opts, nil
}

// AsynqResumeEnqueuer queues workflow resumes on an asynq client.
type AsynqResumeEnqueuer struct {
	Client *asynq.Client
}

func NewAsynqResumeEnqueuer(opt asynq.RedisConnOpt) *AsynqResumeEnqueuer {
	return &AsynqResumeEnqueuer{Client: asynq.NewClient(opt)}
}

func (e *AsynqResumeEnqueuer) EnqueueResume(ctx context.Context, wf *models.BookingWorkflow) error {
	task, opts, err := NewWorkflowResumeTask(models.WorkflowResumePayload{
		WorkflowID: wf.ID,
		BookingID:  wf.BookingID,
	})
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}

func (e *AsynqResumeEnqueuer) Close() error {
	return e.Client.Close()
}
