package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	domainprinting "github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/domain/shared"
	infraprinting "github.com/possuite/backend/internal/infrastructure/printing"
)

const (
	// DefaultBatchSize is the number of jobs claimed per tick
	DefaultBatchSize = 10
	// DefaultInterval between driver ticks
	DefaultInterval = 2 * time.Second
)

// Clock abstracts time so tests can drive the driver deterministically
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns a wall-clock implementation
func SystemClock() Clock { return realClock{} }

// AgentSender pushes jobs for locally-attached printers to the property's
// print agent.
type AgentSender interface {
	SendPrint(propertyID uuid.UUID, msg infraprinting.PrintMessage) error
	IsConnected(propertyID uuid.UUID) bool
}

// Dispatcher is the delivery driver: a periodic loop that claims pending
// print jobs in (priority, creation time) order and pushes each to its
// printer. Network printers get a raw TCP write; serial/usb printers are
// handed to the agent bridge and complete asynchronously. Jobs stuck in
// printing from a crashed run are never auto-requeued here.
type Dispatcher struct {
	jobs      domainprinting.PrintJobRepository
	printers  hardware.PrinterRepository
	transport infraprinting.Transport
	agent     AgentSender
	publisher shared.EventPublisher
	logger    *zap.Logger
	clock     Clock

	interval  time.Duration
	batchSize int

	mu        sync.Mutex
	isRunning bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// Options tunes the dispatcher
type Options struct {
	Interval  time.Duration
	BatchSize int
	Clock     Clock
}

// NewDispatcher creates a delivery driver
func NewDispatcher(
	jobs domainprinting.PrintJobRepository,
	printers hardware.PrinterRepository,
	transport infraprinting.Transport,
	agent AgentSender,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	opts Options,
) *Dispatcher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	return &Dispatcher{
		jobs:      jobs,
		printers:  printers,
		transport: transport,
		agent:     agent,
		publisher: publisher,
		logger:    logger,
		clock:     opts.Clock,
		interval:  opts.Interval,
		batchSize: opts.BatchSize,
	}
}

// Start launches the periodic driver loop
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return fmt.Errorf("dispatcher already running")
	}
	d.isRunning = true
	d.stopCh = make(chan struct{})
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run(ctx)
	d.logger.Info("print dispatcher started",
		zap.Duration("interval", d.interval),
		zap.Int("batch_size", d.batchSize))
	return nil
}

// Stop shuts the driver down, waiting for the in-flight batch
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	close(d.stopCh)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.logger.Info("print dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopCh:
			return
		case <-ticker.C:
			if err := d.ProcessBatch(ctx); err != nil {
				d.logger.Error("batch processing failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch claims and delivers one batch of pending jobs. Jobs in
// the batch are dispatched concurrently; only the selection order is
// guaranteed, not completion order.
func (d *Dispatcher) ProcessBatch(ctx context.Context) error {
	due, err := d.jobs.FindDue(ctx, d.batchSize)
	if err != nil {
		return fmt.Errorf("select due jobs: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for idx := range due {
		job := due[idx]
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.deliver(ctx, &job)
		}()
	}
	wg.Wait()
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, job *domainprinting.PrintJob) {
	now := d.clock.Now()

	if job.IsExpired(now) {
		if err := job.Expire(); err == nil {
			d.saveJob(ctx, job)
		}
		return
	}

	printer, err := d.printers.FindByID(ctx, job.PrinterID)
	if err != nil {
		d.failAttempt(ctx, job, nil, fmt.Sprintf("printer %s not found", job.PrinterID))
		return
	}

	if printer.Connection.IsLocal() {
		d.deliverViaAgent(ctx, job, printer)
		return
	}
	d.deliverViaNetwork(ctx, job, printer)
}

func (d *Dispatcher) deliverViaNetwork(ctx context.Context, job *domainprinting.PrintJob, printer *hardware.Printer) {
	if err := job.StartAttempt(); err != nil {
		return
	}
	d.saveJob(ctx, job)

	err := d.transport.Deliver(ctx, printer.Address, printer.Port, job.Payload)
	now := d.clock.Now()
	if err != nil {
		d.logger.Warn("delivery failed",
			zap.String("job_id", job.ID.String()),
			zap.String("printer", printer.Name),
			zap.Int("attempt", job.Attempts),
			zap.Error(err))
		printer.MarkOffline()
		d.savePrinter(ctx, printer)
		if _, failErr := job.FailAttempt(err.Error()); failErr == nil {
			d.saveJob(ctx, job)
		}
		return
	}

	printer.MarkOnline(now)
	d.savePrinter(ctx, printer)
	if err := job.CompleteDelivery(now); err == nil {
		d.saveJob(ctx, job)
	}
	d.logger.Debug("job delivered",
		zap.String("job_id", job.ID.String()),
		zap.String("printer", printer.Name))
}

// deliverViaAgent hands the job to the property's print agent. The job
// stays in printing until the agent reports a result.
func (d *Dispatcher) deliverViaAgent(ctx context.Context, job *domainprinting.PrintJob, printer *hardware.Printer) {
	if !d.agent.IsConnected(job.PropertyID) {
		// no claim burned while the agent is away; the job waits pending
		d.logger.Debug("agent offline, job deferred",
			zap.String("job_id", job.ID.String()),
			zap.String("printer", printer.Name))
		return
	}
	if err := job.StartAttempt(); err != nil {
		return
	}
	d.saveJob(ctx, job)

	msg := infraprinting.PrintMessage{
		JobID:       job.ID,
		PrinterID:   printer.ID,
		Data:        job.Payload,
		PrinterType: printer.Connection.String(),
		Port:        printer.DevicePath,
	}
	if err := d.agent.SendPrint(job.PropertyID, msg); err != nil {
		printer.MarkOffline()
		d.savePrinter(ctx, printer)
		if _, failErr := job.FailAttempt("agent unreachable: " + err.Error()); failErr == nil {
			d.saveJob(ctx, job)
		}
	}
}

// HandleAgentResult finishes a job the agent delivered (or failed to).
// Wire this as the agent hub's result handler.
func (d *Dispatcher) HandleAgentResult(ctx context.Context, propertyID uuid.UUID, result infraprinting.ResultMessage) {
	job, err := d.jobs.FindByID(ctx, result.JobID)
	if err != nil {
		d.logger.Warn("agent result for unknown job", zap.String("job_id", result.JobID.String()))
		return
	}
	printer, err := d.printers.FindByID(ctx, job.PrinterID)
	if err != nil {
		printer = nil
	}
	now := d.clock.Now()

	if result.Success {
		if err := job.CompleteDelivery(now); err == nil {
			d.saveJob(ctx, job)
		}
		if printer != nil {
			printer.MarkOnline(now)
			d.savePrinter(ctx, printer)
		}
		return
	}

	errMsg := result.Error
	if errMsg == "" {
		errMsg = "agent reported failure"
	}
	if _, err := job.FailAttempt(errMsg); err == nil {
		d.saveJob(ctx, job)
	}
	if printer != nil {
		printer.MarkOffline()
		d.savePrinter(ctx, printer)
	}
}

func (d *Dispatcher) failAttempt(ctx context.Context, job *domainprinting.PrintJob, printer *hardware.Printer, msg string) {
	if err := job.StartAttempt(); err != nil {
		return
	}
	if _, err := job.FailAttempt(msg); err == nil {
		d.saveJob(ctx, job)
	}
	if printer != nil {
		printer.MarkOffline()
		d.savePrinter(ctx, printer)
	}
}

func (d *Dispatcher) saveJob(ctx context.Context, job *domainprinting.PrintJob) {
	events := job.GetDomainEvents()
	if err := d.jobs.Save(ctx, job); err != nil {
		d.logger.Error("save print job failed",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return
	}
	if len(events) > 0 && d.publisher != nil {
		if err := d.publisher.Publish(ctx, events...); err != nil {
			d.logger.Warn("publish job events failed", zap.Error(err))
		}
	}
	job.ClearDomainEvents()
}

func (d *Dispatcher) savePrinter(ctx context.Context, printer *hardware.Printer) {
	events := printer.GetDomainEvents()
	if err := d.printers.Save(ctx, printer); err != nil {
		d.logger.Error("save printer failed",
			zap.String("printer_id", printer.ID.String()),
			zap.Error(err))
		return
	}
	if len(events) > 0 && d.publisher != nil {
		if err := d.publisher.Publish(ctx, events...); err != nil {
			d.logger.Warn("publish printer events failed", zap.Error(err))
		}
	}
	printer.ClearDomainEvents()
}
