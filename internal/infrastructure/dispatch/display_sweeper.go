package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/shared"
)

// DefaultSweepInterval between display liveness checks
const DefaultSweepInterval = 30 * time.Second

// DisplaySweeper marks kitchen displays offline once their heartbeats
// lapse. Display clients ping over HTTP; this worker is the other half
// of that contract.
type DisplaySweeper struct {
	displays  hardware.KitchenDisplayRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
	clock     Clock

	interval     time.Duration
	offlineAfter time.Duration

	mu        sync.Mutex
	isRunning bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// SweeperOptions tunes the sweeper. OfflineAfter of zero disables it.
type SweeperOptions struct {
	Interval     time.Duration
	OfflineAfter time.Duration
	Clock        Clock
}

// NewDisplaySweeper creates a display liveness sweeper
func NewDisplaySweeper(
	displays hardware.KitchenDisplayRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	opts SweeperOptions,
) *DisplaySweeper {
	if opts.Interval <= 0 {
		opts.Interval = DefaultSweepInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	return &DisplaySweeper{
		displays:     displays,
		publisher:    publisher,
		logger:       logger,
		clock:        opts.Clock,
		interval:     opts.Interval,
		offlineAfter: opts.OfflineAfter,
	}
}

// Start launches the periodic sweep loop. A zero OfflineAfter leaves
// the sweeper dormant.
func (s *DisplaySweeper) Start(ctx context.Context) error {
	if s.offlineAfter <= 0 {
		s.logger.Warn("display sweeper disabled, displays stay online until they disconnect")
		return nil
	}
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("display sweeper already running")
	}
	s.isRunning = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)
	s.logger.Info("display sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("offline_after", s.offlineAfter))
	return nil
}

// Stop shuts the sweeper down, waiting for the in-flight sweep
func (s *DisplaySweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	close(s.stopCh)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("display sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DisplaySweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("display sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep marks every online display whose last heartbeat is older than
// the lapse window as offline.
func (s *DisplaySweeper) Sweep(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.offlineAfter)
	stale, err := s.displays.FindStaleOnline(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("select stale displays: %w", err)
	}
	for idx := range stale {
		display := &stale[idx]
		display.MarkOffline()
		events := display.GetDomainEvents()
		if err := s.displays.Save(ctx, display); err != nil {
			s.logger.Error("save kitchen display failed",
				zap.String("display_id", display.ID.String()),
				zap.Error(err))
			continue
		}
		if len(events) > 0 && s.publisher != nil {
			if err := s.publisher.Publish(ctx, events...); err != nil {
				s.logger.Warn("publish display events failed", zap.Error(err))
			}
		}
		display.ClearDomainEvents()
		s.logger.Info("kitchen display marked offline",
			zap.String("display", display.Name))
	}
	return nil
}
