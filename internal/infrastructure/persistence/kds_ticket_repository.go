package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/shared"
)

// GormKdsTicketRepository implements kds.KdsTicketRepository using GORM
type GormKdsTicketRepository struct {
	db *gorm.DB
}

// NewGormKdsTicketRepository creates a new GORM KDS ticket repository
func NewGormKdsTicketRepository(db *gorm.DB) *GormKdsTicketRepository {
	return &GormKdsTicketRepository{db: db}
}

var _ kds.KdsTicketRepository = (*GormKdsTicketRepository)(nil)

// FindByID finds a ticket by ID with its items
func (r *GormKdsTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*kds.KdsTicket, error) {
	var ticket kds.KdsTicket
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find kds ticket: %w", err)
	}
	return &ticket, nil
}

// FindAll finds all tickets matching the filter
func (r *GormKdsTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]kds.KdsTicket, error) {
	var tickets []kds.KdsTicket
	query := applyFilter(r.db.WithContext(ctx).Preload("Items"), filter, commonSortColumns)
	if err := query.Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to find kds tickets: %w", err)
	}
	return tickets, nil
}

// Save persists a ticket with its items
func (r *GormKdsTicketRepository) Save(ctx context.Context, ticket *kds.KdsTicket) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ticket).Error
	if err != nil {
		return fmt.Errorf("failed to save kds ticket: %w", err)
	}
	return nil
}

// Delete removes a ticket and its items
func (r *GormKdsTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&kds.KdsTicketItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete kds ticket items: %w", err)
		}
		result := tx.Delete(&kds.KdsTicket{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete kds ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts tickets matching the filter
func (r *GormKdsTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&kds.KdsTicket{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count kds tickets: %w", err)
	}
	return count, nil
}

// FindLiveByDisplay returns the active tickets for one display
func (r *GormKdsTicketRepository) FindLiveByDisplay(ctx context.Context, displayID uuid.UUID) ([]kds.KdsTicket, error) {
	var tickets []kds.KdsTicket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("display_id = ? AND status = ?", displayID, kds.TicketStatusActive).
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find live kds tickets: %w", err)
	}
	return tickets, nil
}

// FindByCheckItem returns every ticket containing the check item
func (r *GormKdsTicketRepository) FindByCheckItem(ctx context.Context, checkItemID uuid.UUID) ([]kds.KdsTicket, error) {
	var ticketIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&kds.KdsTicketItem{}).
		Where("check_item_id = ?", checkItemID).
		Distinct().
		Pluck("ticket_id", &ticketIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find kds tickets by check item: %w", err)
	}
	if len(ticketIDs) == 0 {
		return []kds.KdsTicket{}, nil
	}

	var tickets []kds.KdsTicket
	err = r.db.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", ticketIDs).
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find kds tickets by check item: %w", err)
	}
	return tickets, nil
}

// FindOpenByCheckAndDisplay returns the unbumped ticket for a check on one
// display, if any.
func (r *GormKdsTicketRepository) FindOpenByCheckAndDisplay(ctx context.Context, checkID, displayID uuid.UUID) (*kds.KdsTicket, error) {
	var ticket kds.KdsTicket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("check_id = ? AND display_id = ? AND status IN ?",
			checkID, displayID, []kds.TicketStatus{kds.TicketStatusDraft, kds.TicketStatusActive}).
		Order("created_at ASC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open kds ticket: %w", err)
	}
	return &ticket, nil
}

// FindOpenByCheck returns the unbumped tickets for a check across all
// displays.
func (r *GormKdsTicketRepository) FindOpenByCheck(ctx context.Context, checkID uuid.UUID) ([]kds.KdsTicket, error) {
	var tickets []kds.KdsTicket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("check_id = ? AND status IN ?",
			checkID, []kds.TicketStatus{kds.TicketStatusDraft, kds.TicketStatusActive}).
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find open kds tickets by check: %w", err)
	}
	return tickets, nil
}

// FindByTicketItem returns the ticket owning one ticket item
func (r *GormKdsTicketRepository) FindByTicketItem(ctx context.Context, ticketItemID uuid.UUID) (*kds.KdsTicket, error) {
	var item kds.KdsTicketItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", ticketItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find kds ticket item: %w", err)
	}
	return r.FindByID(ctx, item.TicketID)
}
