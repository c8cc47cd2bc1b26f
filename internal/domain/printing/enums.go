package printing

// JobType represents the kind of document a print job carries
type JobType string

const (
	JobTypeReceipt       JobType = "receipt"
	JobTypeKitchenTicket JobType = "kitchen_ticket"
	JobTypeReport        JobType = "report"
)

// IsValid checks if the job type is valid
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeReceipt, JobTypeKitchenTicket, JobTypeReport:
		return true
	}
	return false
}

// String returns the string representation
func (t JobType) String() string {
	return string(t)
}

// JobStatus represents the delivery state of a print job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusPrinting  JobStatus = "printing"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// IsValid checks if the job status is valid
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusPrinting, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal checks if this is a terminal status
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusPrinting || target == JobStatusFailed
	case JobStatusPrinting:
		return target == JobStatusCompleted || target == JobStatusFailed || target == JobStatusPending
	}
	return false
}

// Priority levels; lower values are delivered first
const (
	PriorityHigh   = 1
	PriorityNormal = 5
	PriorityLow    = 9
)
