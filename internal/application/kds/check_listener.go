package kds

import (
	"context"

	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/shared"
)

// CheckListener reacts to check lifecycle events on behalf of the
// kitchen: when a check closes, its open tickets are flagged paid.
type CheckListener struct {
	tickets *TicketService
	logger  *zap.Logger
}

var _ shared.EventHandler = (*CheckListener)(nil)

// NewCheckListener creates the listener
func NewCheckListener(tickets *TicketService, logger *zap.Logger) *CheckListener {
	return &CheckListener{tickets: tickets, logger: logger}
}

// EventTypes lists the events the listener consumes
func (l *CheckListener) EventTypes() []string {
	return []string{ordering.EventCheckClosed}
}

// Handle flags the closed check's tickets as paid
func (l *CheckListener) Handle(ctx context.Context, event shared.DomainEvent) error {
	evt, ok := event.(*ordering.CheckClosedEvent)
	if !ok {
		return nil
	}
	if err := l.tickets.MarkCheckPaid(ctx, evt.AggregateID()); err != nil {
		l.logger.Warn("mark tickets paid failed",
			zap.String("check_id", evt.AggregateID().String()),
			zap.Error(err))
		return err
	}
	return nil
}
