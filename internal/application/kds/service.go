package kds

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	domainkds "github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/shared"
)

// TicketService drives the kitchen ticket lifecycle on behalf of the
// display clients. Mutations are last-write-wins: two stations racing
// on the same ticket both succeed and the second write is a no-op.
type TicketService struct {
	tickets   domainkds.KdsTicketRepository
	displays  hardware.KitchenDisplayRepository
	checks    ordering.CheckRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewTicketService creates the kitchen ticket service
func NewTicketService(
	tickets domainkds.KdsTicketRepository,
	displays hardware.KitchenDisplayRepository,
	checks ordering.CheckRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		tickets:   tickets,
		displays:  displays,
		checks:    checks,
		publisher: publisher,
		logger:    logger,
	}
}

// ListLive returns the display's live view: recalled tickets first,
// then oldest first. Draft and bumped tickets never appear.
func (s *TicketService) ListLive(ctx context.Context, displayID uuid.UUID) ([]domainkds.KdsTicket, error) {
	tickets, err := s.tickets.FindLiveByDisplay(ctx, displayID)
	if err != nil {
		return nil, err
	}
	return domainkds.SortLive(tickets), nil
}

// Bump completes a ticket and cascades its items
func (s *TicketService) Bump(ctx context.Context, ticketID, employeeID uuid.UUID) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := ticket.Bump(employeeID, time.Now()); err != nil {
		return err
	}
	return s.saveAndPublish(ctx, ticket)
}

// Recall returns a bumped ticket to the screen with priority
func (s *TicketService) Recall(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := ticket.Recall(); err != nil {
		return err
	}
	return s.saveAndPublish(ctx, ticket)
}

// MarkReady flags one ticket item ready
func (s *TicketService) MarkReady(ctx context.Context, ticketItemID uuid.UUID) error {
	ticket, err := s.tickets.FindByTicketItem(ctx, ticketItemID)
	if err != nil {
		return err
	}
	if err := ticket.MarkReady(ticketItemID, time.Now()); err != nil {
		return err
	}
	return s.saveAndPublish(ctx, ticket)
}

// UnmarkReady clears the ready flag on one ticket item
func (s *TicketService) UnmarkReady(ctx context.Context, ticketItemID uuid.UUID) error {
	ticket, err := s.tickets.FindByTicketItem(ctx, ticketItemID)
	if err != nil {
		return err
	}
	if err := ticket.UnmarkReady(ticketItemID); err != nil {
		return err
	}
	return s.saveAndPublish(ctx, ticket)
}

// VoidCheckItem voids the item on its check and strikes it on every
// ticket that references it, across all displays. Idempotent.
func (s *TicketService) VoidCheckItem(ctx context.Context, checkItemID uuid.UUID, reason string) error {
	check, err := s.checks.FindByItemID(ctx, checkItemID)
	switch {
	case err == nil:
		if err := check.VoidItem(checkItemID, reason); err != nil {
			return err
		}
		events := check.GetDomainEvents()
		if err := s.checks.Save(ctx, check); err != nil {
			return err
		}
		s.publish(ctx, events)
		check.ClearDomainEvents()
	case errors.Is(err, shared.ErrNotFound):
		// the check may already be archived; ticket cleanup still applies
	default:
		return err
	}

	tickets, err := s.tickets.FindByCheckItem(ctx, checkItemID)
	if err != nil {
		return err
	}
	for idx := range tickets {
		ticket := &tickets[idx]
		if ticket.VoidItem(checkItemID) == 0 {
			continue
		}
		if err := s.saveAndPublish(ctx, ticket); err != nil {
			return err
		}
	}
	return nil
}

// MarkCheckPaid flags the check's open tickets as paid on every display
// so stations see the table is settled. Already-paid tickets are left
// untouched.
func (s *TicketService) MarkCheckPaid(ctx context.Context, checkID uuid.UUID) error {
	tickets, err := s.tickets.FindOpenByCheck(ctx, checkID)
	if err != nil {
		return err
	}
	for idx := range tickets {
		ticket := &tickets[idx]
		if ticket.Paid {
			continue
		}
		ticket.MarkPaid()
		if err := s.saveAndPublish(ctx, ticket); err != nil {
			return err
		}
	}
	return nil
}

// Heartbeat records a liveness ping from a display client
func (s *TicketService) Heartbeat(ctx context.Context, displayID uuid.UUID) error {
	display, err := s.displays.FindByID(ctx, displayID)
	if err != nil {
		return err
	}
	display.Heartbeat(time.Now())
	return s.displays.Save(ctx, display)
}

func (s *TicketService) saveAndPublish(ctx context.Context, ticket *domainkds.KdsTicket) error {
	events := ticket.GetDomainEvents()
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return err
	}
	s.publish(ctx, events)
	ticket.ClearDomainEvents()
	return nil
}

func (s *TicketService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("publish ticket events failed", zap.Error(err))
	}
}
