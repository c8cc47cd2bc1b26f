package printing

import (
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// PrintJob is one unit of delivery work: an encoded payload bound for a
// single printer. Jobs are created by the document fanout and mutated
// only by the delivery driver; once completed or failed they are
// retained unchanged for audit.
type PrintJob struct {
	shared.PropertyAggregateRoot
	PrinterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	KdsDeviceID  *uuid.UUID `gorm:"type:uuid"` // set when the job mirrors a kitchen ticket
	Type         JobType    `gorm:"not null"`
	Status       JobStatus  `gorm:"not null;default:'pending';index"`
	Payload      []byte     `gorm:"not null"`
	PlainText    string     // command-stripped projection for audit and reprint review
	Priority     int        `gorm:"not null;default:5;index"`
	Attempts     int        `gorm:"not null;default:0"`
	MaxAttempts  int        `gorm:"not null;default:3"`
	LastError    string
	ExpiresAt    *time.Time
	PrintedAt    *time.Time
	CheckID      *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid"`
	BusinessDate string     `gorm:"index"`
}

// NewPrintJob creates a pending print job
func NewPrintJob(propertyID, printerID uuid.UUID, jobType JobType, payload []byte, plainText string, priority, maxAttempts int) (*PrintJob, error) {
	if !jobType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRINT_JOB", "unknown job type: "+jobType.String())
	}
	if len(payload) == 0 {
		return nil, shared.NewDomainError("INVALID_PRINT_JOB", "print job payload is empty")
	}
	if priority <= 0 {
		priority = PriorityNormal
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	job := &PrintJob{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		PrinterID:             printerID,
		Type:                  jobType,
		Status:                JobStatusPending,
		Payload:               payload,
		PlainText:             plainText,
		Priority:              priority,
		MaxAttempts:           maxAttempts,
	}
	job.AddDomainEvent(NewPrintJobQueuedEvent(job.ID, propertyID, printerID, jobType))
	return job, nil
}

// LinkCheck attaches audit linkage to the originating check
func (j *PrintJob) LinkCheck(checkID, employeeID uuid.UUID, businessDate string) {
	j.CheckID = &checkID
	j.EmployeeID = &employeeID
	j.BusinessDate = businessDate
}

// SetExpiry bounds how long the job may wait for delivery
func (j *PrintJob) SetExpiry(at time.Time) {
	t := at
	j.ExpiresAt = &t
}

// IsExpired reports whether the job's expiry has passed
func (j *PrintJob) IsExpired(now time.Time) bool {
	return j.ExpiresAt != nil && now.After(*j.ExpiresAt)
}

// StartAttempt claims the job for a delivery attempt. Only pending jobs
// can be claimed; jobs stuck in printing after a crash are left for
// operational tooling, never auto-requeued.
func (j *PrintJob) StartAttempt() error {
	if j.Status != JobStatusPending {
		return shared.NewDomainError("INVALID_JOB_STATE", "only pending jobs can start delivery")
	}
	j.Status = JobStatusPrinting
	j.Attempts++
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return nil
}

// CompleteDelivery marks the job delivered
func (j *PrintJob) CompleteDelivery(at time.Time) error {
	if j.Status != JobStatusPrinting {
		return shared.NewDomainError("INVALID_JOB_STATE", "only printing jobs can complete")
	}
	j.Status = JobStatusCompleted
	t := at
	j.PrintedAt = &t
	j.LastError = ""
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	j.AddDomainEvent(NewPrintJobCompletedEvent(j.ID, j.PropertyID, j.PrinterID))
	return nil
}

// FailAttempt records a delivery failure. The job returns to pending
// while attempts remain, otherwise it goes terminal failed. Returns
// whether the job was requeued.
func (j *PrintJob) FailAttempt(errMsg string) (requeued bool, err error) {
	if j.Status != JobStatusPrinting {
		return false, shared.NewDomainError("INVALID_JOB_STATE", "only printing jobs can record a failure")
	}
	j.LastError = errMsg
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	if j.Attempts < j.MaxAttempts {
		j.Status = JobStatusPending
		return true, nil
	}
	j.Status = JobStatusFailed
	j.AddDomainEvent(NewPrintJobFailedEvent(j.ID, j.PropertyID, j.PrinterID, errMsg))
	return false, nil
}

// Expire fails a pending job whose expiry has passed
func (j *PrintJob) Expire() error {
	if j.Status != JobStatusPending {
		return shared.NewDomainError("INVALID_JOB_STATE", "only pending jobs can expire")
	}
	j.Status = JobStatusFailed
	j.LastError = "job expired before delivery"
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	j.AddDomainEvent(NewPrintJobFailedEvent(j.ID, j.PropertyID, j.PrinterID, j.LastError))
	return nil
}

// Requeue returns a failed job to pending with a fresh attempt budget.
// Used by the operator-facing requeue action, never by the driver.
func (j *PrintJob) Requeue() error {
	if j.Status != JobStatusFailed {
		return shared.NewDomainError("INVALID_JOB_STATE", "only failed jobs can be requeued")
	}
	j.Status = JobStatusPending
	j.Attempts = 0
	j.LastError = ""
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return nil
}
