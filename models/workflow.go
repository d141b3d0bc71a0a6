package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkflowStep is one write of a composite booking action.
type WorkflowStep string

const (
	StepChat         WorkflowStep = "chat"
	StepNotification WorkflowStep = "notification"
	StepStatus       WorkflowStep = "status"
)

// WorkflowState tracks the progress of a composite booking action.
type WorkflowState string

const (
	WorkflowRunning    WorkflowState = "running"
	WorkflowCompleted  WorkflowState = "completed"
	WorkflowFailed     WorkflowState = "failed"
	WorkflowConflicted WorkflowState = "conflicted"
	// WorkflowSuperseded marks a duplicate action whose target another workflow already reached.
	WorkflowSuperseded WorkflowState = "superseded"
)

// BookingWorkflow records which writes of an accept or decline have been committed,
// so that an interrupted action can be resumed without duplicating records.
type BookingWorkflow struct {
	ID             string             `bson:"_id" json:"id"`
	BookingID      string             `bson:"bookingId" json:"bookingId"`
	HandymanID     string             `bson:"handymanId" json:"handymanId"`
	UserID         string             `bson:"userId" json:"userId"`
	Target         BookingStatus      `bson:"target" json:"target"`
	Steps          []WorkflowStep     `bson:"steps" json:"steps"`
	Completed      []WorkflowStep     `bson:"completed" json:"completed"`
	ChatID         primitive.ObjectID `bson:"chatId,omitempty" json:"chatId,omitempty"`
	ChatContent    string             `bson:"chatContent,omitempty" json:"chatContent,omitempty"`
	NotificationID primitive.ObjectID `bson:"notificationId" json:"notificationId"`
	Notification   string             `bson:"notification" json:"notification"`
	State          WorkflowState      `bson:"state" json:"state"`
	Attempts       int                `bson:"attempts" json:"attempts"`
	LastError      string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Done reports whether the step has already been committed.
func (w *BookingWorkflow) Done(step WorkflowStep) bool {
	for _, s := range w.Completed {
		if s == step {
			return true
		}
	}
	return false
}

// Pending returns the steps not yet committed, in execution order.
func (w *BookingWorkflow) Pending() []WorkflowStep {
	var out []WorkflowStep
	for _, s := range w.Steps {
		if !w.Done(s) {
			out = append(out, s)
		}
	}
	return out
}
