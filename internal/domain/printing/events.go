package printing

import (
	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// Event type constants
const (
	EventPrintJobQueued    = "printing.job.queued"
	EventPrintJobCompleted = "printing.job.completed"
	EventPrintJobFailed    = "printing.job.failed"
)

// PrintJobQueuedEvent is published when a job enters the queue. The
// delivery driver and the agent bridge both listen for it.
type PrintJobQueuedEvent struct {
	shared.BaseDomainEvent
	PrinterID uuid.UUID `json:"printer_id"`
	JobType   JobType   `json:"job_type"`
}

// NewPrintJobQueuedEvent creates a new job queued event
func NewPrintJobQueuedEvent(jobID, propertyID, printerID uuid.UUID, jobType JobType) *PrintJobQueuedEvent {
	return &PrintJobQueuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrintJobQueued, "PrintJob", jobID, propertyID),
		PrinterID:       printerID,
		JobType:         jobType,
	}
}

// PrintJobCompletedEvent is published when a job is delivered
type PrintJobCompletedEvent struct {
	shared.BaseDomainEvent
	PrinterID uuid.UUID `json:"printer_id"`
}

// NewPrintJobCompletedEvent creates a new job completed event
func NewPrintJobCompletedEvent(jobID, propertyID, printerID uuid.UUID) *PrintJobCompletedEvent {
	return &PrintJobCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrintJobCompleted, "PrintJob", jobID, propertyID),
		PrinterID:       printerID,
	}
}

// PrintJobFailedEvent is published when a job goes terminal failed
type PrintJobFailedEvent struct {
	shared.BaseDomainEvent
	PrinterID uuid.UUID `json:"printer_id"`
	LastError string    `json:"last_error"`
}

// NewPrintJobFailedEvent creates a new job failed event
func NewPrintJobFailedEvent(jobID, propertyID, printerID uuid.UUID, lastError string) *PrintJobFailedEvent {
	return &PrintJobFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrintJobFailed, "PrintJob", jobID, propertyID),
		PrinterID:       printerID,
		LastError:       lastError,
	}
}
