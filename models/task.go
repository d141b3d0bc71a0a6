package models

// WorkflowResumePayload is the queued payload for resuming an interrupted booking workflow.
type WorkflowResumePayload struct {
	WorkflowID string `json:"workflowId"`
	BookingID  string `json:"bookingId"`
}
