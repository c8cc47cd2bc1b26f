package kds

import (
	"context"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// KdsTicketRepository defines the persistence interface for kitchen tickets
type KdsTicketRepository interface {
	shared.Repository[KdsTicket]
	// FindLiveByDisplay returns the active tickets for one display,
	// unsorted; the caller applies SortLive.
	FindLiveByDisplay(ctx context.Context, displayID uuid.UUID) ([]KdsTicket, error)
	// FindByCheckItem returns every ticket containing the check item,
	// across all displays.
	FindByCheckItem(ctx context.Context, checkItemID uuid.UUID) ([]KdsTicket, error)
	FindOpenByCheckAndDisplay(ctx context.Context, checkID, displayID uuid.UUID) (*KdsTicket, error)
	// FindOpenByCheck returns the unbumped tickets for a check across
	// all displays.
	FindOpenByCheck(ctx context.Context, checkID uuid.UUID) ([]KdsTicket, error)
	FindByTicketItem(ctx context.Context, ticketItemID uuid.UUID) (*KdsTicket, error)
}
