package workflowRepo

import (
	"context"

	"handyhelp/models"
)

// WorkflowRepository persists the progress of composite booking actions.
type WorkflowRepository interface {
	Create(ctx context.Context, wf *models.BookingWorkflow) error
	Get(ctx context.Context, id string) (*models.BookingWorkflow, error)
	// FindOpen returns the running or failed workflow for the booking and target,
	// or nil, nil when there is none.
	FindOpen(ctx context.Context, bookingID string, target models.BookingStatus) (*models.BookingWorkflow, error)
	// BeginAttempt marks the workflow running and increments its attempt counter.
	BeginAttempt(ctx context.Context, id string) error
	// MarkStep records that a step has been committed.
	MarkStep(ctx context.Context, id string, step models.WorkflowStep) error
	// Finish sets the final state of an attempt and its error message, if any.
	Finish(ctx context.Context, id string, state models.WorkflowState, lastErr string) error
}
