package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	domainprinting "github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/domain/shared"
)

// PrintService owns the job queue surface: enqueueing, the operator
// status view, and the operator requeue action. Delivery itself is the
// dispatcher's job.
type PrintService struct {
	jobs      domainprinting.PrintJobRepository
	printers  hardware.PrinterRepository
	publisher shared.EventPublisher
	jobTTL    time.Duration
	logger    *zap.Logger
}

// NewPrintService creates the print service. jobTTL expires queued jobs
// that sat undelivered too long; zero means jobs never expire.
func NewPrintService(
	jobs domainprinting.PrintJobRepository,
	printers hardware.PrinterRepository,
	publisher shared.EventPublisher,
	jobTTL time.Duration,
	logger *zap.Logger,
) *PrintService {
	return &PrintService{
		jobs:      jobs,
		printers:  printers,
		publisher: publisher,
		jobTTL:    jobTTL,
		logger:    logger,
	}
}

// EnqueueInput describes one job to queue
type EnqueueInput struct {
	PropertyID   uuid.UUID
	PrinterID    uuid.UUID
	Type         domainprinting.JobType
	Payload      []byte
	PlainText    string
	Priority     int
	CheckID      *uuid.UUID
	EmployeeID   *uuid.UUID
	BusinessDate string
	TTL          time.Duration
}

// Enqueue creates a pending job bound for one printer. The printer's
// configured retry policy caps the job's attempts.
func (s *PrintService) Enqueue(ctx context.Context, in EnqueueInput) (*domainprinting.PrintJob, error) {
	printer, err := s.printers.FindByID(ctx, in.PrinterID)
	if err != nil {
		return nil, err
	}
	job, err := domainprinting.NewPrintJob(in.PropertyID, printer.ID, in.Type, in.Payload, in.PlainText, in.Priority, printer.MaxAttempts)
	if err != nil {
		return nil, err
	}
	if in.CheckID != nil && in.EmployeeID != nil {
		job.LinkCheck(*in.CheckID, *in.EmployeeID, in.BusinessDate)
	}
	ttl := in.TTL
	if ttl == 0 {
		ttl = s.jobTTL
	}
	if ttl > 0 {
		job.SetExpiry(time.Now().Add(ttl))
	}

	events := job.GetDomainEvents()
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("publish job queued event failed", zap.Error(err))
		}
	}
	job.ClearDomainEvents()

	s.logger.Info("print job enqueued",
		zap.String("job_id", job.ID.String()),
		zap.String("printer", printer.Name),
		zap.String("type", in.Type.String()))
	return job, nil
}

// GetJob returns one job by ID
func (s *PrintService) GetJob(ctx context.Context, jobID uuid.UUID) (*domainprinting.PrintJob, error) {
	return s.jobs.FindByID(ctx, jobID)
}

// ListJobs returns jobs of one status for the operator view
func (s *PrintService) ListJobs(ctx context.Context, propertyID uuid.UUID, status domainprinting.JobStatus, filter shared.Filter) ([]domainprinting.PrintJob, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown job status: "+status.String())
	}
	return s.jobs.FindByStatus(ctx, propertyID, status, filter)
}

// RequeueJob returns a terminally failed job to the queue with a fresh
// attempt budget. This is the operator recovery path; stuck printing
// jobs are deliberately out of its reach.
func (s *PrintService) RequeueJob(ctx context.Context, jobID uuid.UUID) (*domainprinting.PrintJob, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Requeue(); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	s.logger.Info("print job requeued", zap.String("job_id", jobID.String()))
	return job, nil
}

// QueueOverview returns per-property printer liveness and job counts.
// This is the data an operator dashboard renders.
func (s *PrintService) QueueOverview(ctx context.Context, propertyID uuid.UUID) ([]hardware.Printer, map[domainprinting.JobStatus]int64, error) {
	printers, err := s.printers.FindByProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.jobs.CountByStatus(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	return printers, counts, nil
}
