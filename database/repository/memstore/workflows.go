package memstore

import (
	"context"
	"fmt"
	"time"

	"handyhelp/database"
	"handyhelp/models"
)

// WorkflowRepo implements workflowRepo.WorkflowRepository.
type WorkflowRepo struct{ s *Store }

func (r *WorkflowRepo) Create(_ context.Context, wf *models.BookingWorkflow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("workflows.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.workflows {
		if existing.ID == wf.ID {
			return fmt.Errorf("workflow %s: %w", wf.ID, database.ErrDuplicate)
		}
	}
	stamp(&wf.CreatedAt, &wf.UpdatedAt)
	c := copyWorkflow(wf)
	r.s.workflows = append(r.s.workflows, &c)
	return nil
}

func (r *WorkflowRepo) find(id string) (*models.BookingWorkflow, error) {
	for _, wf := range r.s.workflows {
		if wf.ID == id {
			return wf, nil
		}
	}
	return nil, fmt.Errorf("workflow %s: %w", id, database.ErrNotFound)
}

func (r *WorkflowRepo) Get(_ context.Context, id string) (*models.BookingWorkflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("workflows.Get"); err != nil {
		return nil, err
	}
	wf, err := r.find(id)
	if err != nil {
		return nil, err
	}
	c := copyWorkflow(wf)
	return &c, nil
}

func (r *WorkflowRepo) FindOpen(_ context.Context, bookingID string, target models.BookingStatus) (*models.BookingWorkflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("workflows.FindOpen"); err != nil {
		return nil, err
	}
	// Newest first: later entries were created later.
	for i := len(r.s.workflows) - 1; i >= 0; i-- {
		wf := r.s.workflows[i]
		if wf.BookingID != bookingID || wf.Target != target {
			continue
		}
		if wf.State == models.WorkflowRunning || wf.State == models.WorkflowFailed {
			c := copyWorkflow(wf)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *WorkflowRepo) BeginAttempt(_ context.Context, id string) error {
	return r.update("workflows.BeginAttempt", id, func(wf *models.BookingWorkflow) {
		wf.State = models.WorkflowRunning
		wf.Attempts++
	})
}

func (r *WorkflowRepo) MarkStep(_ context.Context, id string, step models.WorkflowStep) error {
	return r.update("workflows.MarkStep", id, func(wf *models.BookingWorkflow) {
		if !wf.Done(step) {
			wf.Completed = append(wf.Completed, step)
		}
	})
}

func (r *WorkflowRepo) Finish(_ context.Context, id string, state models.WorkflowState, lastErr string) error {
	return r.update("workflows.Finish", id, func(wf *models.BookingWorkflow) {
		wf.State = state
		wf.LastError = lastErr
	})
}

func (r *WorkflowRepo) update(op, id string, apply func(*models.BookingWorkflow)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return err
	}
	wf, err := r.find(id)
	if err != nil {
		return err
	}
	apply(wf)
	wf.UpdatedAt = time.Now()
	return nil
}
