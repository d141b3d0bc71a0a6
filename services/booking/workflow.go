package booking

import (
	"context"
	"errors"
	"fmt"

	"handyhelp/database"
	bookingRepo "handyhelp/database/repository/booking"
	"handyhelp/models"
	"handyhelp/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const acceptChatTemplate = "This is an auto-generated chat. Hi %s, I have accepted your booking for %s. " +
	"Please confirm if the following details are correct:\nName: %s,\nContact: %s,\nAddress: %s,\nBooking Date: %s\nThank you!"

// AcceptChatContent renders the message sent to the user when a booking is accepted.
func AcceptChatContent(req models.AcceptBookingRequest) string {
	return fmt.Sprintf(acceptChatTemplate, req.Name, req.ServiceDetails, req.Name, req.Contact, req.Address, req.DateOfService)
}

// AcceptBooking claims the booking for the handyman, then sends the
// confirmation chat and the notification.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, p models.Principal, req models.AcceptBookingRequest) error {
	if err := utils.Authorize(p, s.EnforceAuth, models.KindHandyman, req.HandymanID); err != nil {
		return err
	}
	return s.run(ctx, &models.BookingWorkflow{
		BookingID:    req.BookingID,
		HandymanID:   req.HandymanID,
		UserID:       req.UserID,
		Target:       models.BookingAccepted,
		Steps:        []models.WorkflowStep{models.StepStatus, models.StepChat, models.StepNotification},
		ChatContent:  AcceptChatContent(req),
		Notification: utils.AcceptedNotification,
	})
}

// DeclineBooking declines the booking and notifies the user. No chat is sent.
func (s *DefaultBookingService) DeclineBooking(ctx context.Context, p models.Principal, req models.DeclineBookingRequest) error {
	if err := utils.Authorize(p, s.EnforceAuth, models.KindHandyman, req.HandymanID); err != nil {
		return err
	}
	return s.run(ctx, &models.BookingWorkflow{
		BookingID:    req.BookingID,
		HandymanID:   req.HandymanID,
		UserID:       req.UserID,
		Target:       models.BookingDeclined,
		Steps:        []models.WorkflowStep{models.StepStatus, models.StepNotification},
		Notification: utils.DeclinedNotification,
	})
}

// ResumeWorkflow continues a failed or interrupted workflow. Finished workflows are left alone.
func (s *DefaultBookingService) ResumeWorkflow(ctx context.Context, workflowID string) error {
	wf, err := s.Workflows.Get(ctx, workflowID)
	if err != nil {
		return database.LookupError("workflow", workflowID, err)
	}
	switch wf.State {
	case models.WorkflowCompleted, models.WorkflowConflicted, models.WorkflowSuperseded:
		return nil
	}
	return s.execute(ctx, wf)
}

// run checks the booking, then starts a new workflow or picks up the open one.
func (s *DefaultBookingService) run(ctx context.Context, draft *models.BookingWorkflow) error {
	logger := utils.GetLogger()

	b, err := s.Bookings.GetByID(ctx, draft.BookingID)
	if err != nil {
		return database.LookupError("booking", draft.BookingID, err)
	}
	if b.HandymanID != draft.HandymanID || b.UserID != draft.UserID {
		return utils.ValidationError("Booking %s does not belong to this handyman and user", draft.BookingID)
	}

	open, err := s.Workflows.FindOpen(ctx, draft.BookingID, draft.Target)
	if err != nil {
		logger.Error("booking workflow lookup failed", zap.String("bookingId", draft.BookingID), zap.Error(err))
		return utils.StoreError(failureMessage(draft.Target), err)
	}
	if open != nil {
		logger.Info("Resuming open booking workflow", zap.String("workflowId", open.ID), zap.String("bookingId", open.BookingID))
		return s.execute(ctx, open)
	}

	if b.Status == draft.Target {
		return nil
	}
	if !b.Status.CanTransition(draft.Target) {
		return utils.ConflictError("Booking is already %s", b.Status)
	}

	draft.ID = uuid.New().String()
	draft.NotificationID = primitive.NewObjectID()
	for _, step := range draft.Steps {
		if step == models.StepChat {
			draft.ChatID = primitive.NewObjectID()
		}
	}
	draft.Completed = []models.WorkflowStep{}
	draft.State = models.WorkflowRunning
	if err := s.Workflows.Create(ctx, draft); err != nil {
		logger.Error("failed to create booking workflow", zap.String("bookingId", draft.BookingID), zap.Error(err))
		return utils.StoreError(failureMessage(draft.Target), err)
	}
	return s.execute(ctx, draft)
}

// execute runs the pending steps in order and records each one as it commits.
func (s *DefaultBookingService) execute(ctx context.Context, wf *models.BookingWorkflow) error {
	logger := utils.GetLogger().With(
		zap.String("workflowId", wf.ID),
		zap.String("bookingId", wf.BookingID),
		zap.String("target", string(wf.Target)))

	if err := s.Workflows.BeginAttempt(ctx, wf.ID); err != nil {
		logger.Error("failed to start workflow attempt", zap.Error(err))
		return utils.StoreError(failureMessage(wf.Target), err)
	}

	for _, step := range wf.Pending() {
		err := s.runStep(ctx, wf, step)
		if errors.Is(err, errSuperseded) {
			logger.Info("Booking already moved by another workflow, nothing to send")
			if ferr := s.Workflows.Finish(ctx, wf.ID, models.WorkflowSuperseded, ""); ferr != nil {
				logger.Error("failed to record superseded workflow", zap.Error(ferr))
			}
			return nil
		}
		if errors.Is(err, bookingRepo.ErrStatusMismatch) {
			logger.Warn("booking changed state before the workflow could claim it")
			if ferr := s.Workflows.Finish(ctx, wf.ID, models.WorkflowConflicted, err.Error()); ferr != nil {
				logger.Error("failed to record workflow conflict", zap.Error(ferr))
			}
			return utils.ConflictError("Booking is no longer awaiting a response")
		}
		if err == nil {
			err = s.Workflows.MarkStep(ctx, wf.ID, step)
		}
		if err != nil {
			return s.fail(ctx, logger, wf, step, err)
		}
		wf.Completed = append(wf.Completed, step)
	}

	if err := s.Workflows.Finish(ctx, wf.ID, models.WorkflowCompleted, ""); err != nil {
		// Every step has committed, so a resume would only repeat this call.
		logger.Warn("failed to mark workflow completed", zap.Error(err))
	}
	logger.Info("Booking workflow completed")
	return nil
}

func (s *DefaultBookingService) runStep(ctx context.Context, wf *models.BookingWorkflow, step models.WorkflowStep) error {
	switch step {
	case models.StepStatus:
		err := s.Bookings.TransitionStatus(ctx, wf.BookingID, models.BookingRequested, wf.Target, wf.ID)
		if !errors.Is(err, bookingRepo.ErrStatusMismatch) {
			return err
		}
		b, gerr := s.Bookings.GetByID(ctx, wf.BookingID)
		if gerr != nil {
			return gerr
		}
		switch {
		case b.Status != wf.Target:
			return err
		case b.WorkflowID == wf.ID:
			// An earlier attempt of this workflow committed without recording it.
			return nil
		default:
			return errSuperseded
		}

	case models.StepChat:
		err := s.Chats.Insert(ctx, &models.ChatMessage{
			ID:         wf.ChatID,
			BookingID:  wf.BookingID,
			HandymanID: wf.HandymanID,
			UserID:     wf.UserID,
			Sender:     models.SenderHandyman,
			Contents:   wf.ChatContent,
			DateSent:   s.now(),
		})
		return ignoreDuplicate(err)

	case models.StepNotification:
		err := s.Notifications.Record(ctx, &models.Notification{
			ID:         wf.NotificationID,
			HandymanID: wf.HandymanID,
			UserID:     wf.UserID,
			Content:    wf.Notification,
			DateSent:   s.now(),
		})
		return ignoreDuplicate(err)
	}
	return fmt.Errorf("unknown workflow step %q", step)
}

func (s *DefaultBookingService) fail(ctx context.Context, logger *zap.Logger, wf *models.BookingWorkflow, step models.WorkflowStep, cause error) error {
	logger.Error("booking workflow step failed", zap.String("step", string(step)), zap.Error(cause))

	// The caller may already be gone; the failure and its resume must still be recorded.
	ctx = context.WithoutCancel(ctx)
	if err := s.Workflows.Finish(ctx, wf.ID, models.WorkflowFailed, cause.Error()); err != nil {
		logger.Error("failed to record workflow failure", zap.Error(err))
	}
	if s.Resumes != nil {
		if err := s.Resumes.EnqueueResume(ctx, wf); err != nil {
			logger.Error("failed to enqueue workflow resume", zap.Error(err))
		}
	}
	return utils.StoreError(failureMessage(wf.Target), cause)
}

// errSuperseded means the booking reached the target through a different workflow.
var errSuperseded = errors.New("booking already moved by another workflow")

// ignoreDuplicate treats a pre-allocated record that already exists as written.
func ignoreDuplicate(err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return nil
	}
	return err
}

func failureMessage(target models.BookingStatus) string {
	if target == models.BookingDeclined {
		return "Failed to decline booking."
	}
	return "Failed to accept booking."
}
