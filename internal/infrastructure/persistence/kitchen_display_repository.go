package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/shared"
)

// GormKitchenDisplayRepository implements hardware.KitchenDisplayRepository using GORM
type GormKitchenDisplayRepository struct {
	db *gorm.DB
}

// NewGormKitchenDisplayRepository creates a new GORM kitchen display repository
func NewGormKitchenDisplayRepository(db *gorm.DB) *GormKitchenDisplayRepository {
	return &GormKitchenDisplayRepository{db: db}
}

var _ hardware.KitchenDisplayRepository = (*GormKitchenDisplayRepository)(nil)

// FindByID finds a kitchen display by ID
func (r *GormKitchenDisplayRepository) FindByID(ctx context.Context, id uuid.UUID) (*hardware.KitchenDisplay, error) {
	var display hardware.KitchenDisplay
	if err := r.db.WithContext(ctx).First(&display, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find kitchen display: %w", err)
	}
	return &display, nil
}

// FindAll finds all kitchen displays matching the filter
func (r *GormKitchenDisplayRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hardware.KitchenDisplay, error) {
	var displays []hardware.KitchenDisplay
	query := applyFilter(r.db.WithContext(ctx), filter, commonSortColumns)
	if err := query.Find(&displays).Error; err != nil {
		return nil, fmt.Errorf("failed to find kitchen displays: %w", err)
	}
	return displays, nil
}

// Save persists a kitchen display
func (r *GormKitchenDisplayRepository) Save(ctx context.Context, display *hardware.KitchenDisplay) error {
	if err := r.db.WithContext(ctx).Save(display).Error; err != nil {
		return fmt.Errorf("failed to save kitchen display: %w", err)
	}
	return nil
}

// Delete removes a kitchen display by ID
func (r *GormKitchenDisplayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&hardware.KitchenDisplay{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete kitchen display: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts kitchen displays matching the filter
func (r *GormKitchenDisplayRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&hardware.KitchenDisplay{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count kitchen displays: %w", err)
	}
	return count, nil
}

// FindByIDs finds kitchen displays by a set of IDs
func (r *GormKitchenDisplayRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]hardware.KitchenDisplay, error) {
	if len(ids) == 0 {
		return []hardware.KitchenDisplay{}, nil
	}
	var displays []hardware.KitchenDisplay
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&displays).Error; err != nil {
		return nil, fmt.Errorf("failed to find kitchen displays by ids: %w", err)
	}
	return displays, nil
}

// FindByProperty finds the kitchen displays of one property
func (r *GormKitchenDisplayRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]hardware.KitchenDisplay, error) {
	var displays []hardware.KitchenDisplay
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&displays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find kitchen displays by property: %w", err)
	}
	return displays, nil
}

// FindStaleOnline finds online displays whose last heartbeat predates
// the cutoff
func (r *GormKitchenDisplayRepository) FindStaleOnline(ctx context.Context, seenBefore time.Time) ([]hardware.KitchenDisplay, error) {
	var displays []hardware.KitchenDisplay
	err := r.db.WithContext(ctx).
		Where("is_online = ? AND (last_seen_at IS NULL OR last_seen_at < ?)", true, seenBefore).
		Find(&displays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stale kitchen displays: %w", err)
	}
	return displays, nil
}
