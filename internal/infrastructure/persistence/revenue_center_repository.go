package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/shared"
)

// GormRevenueCenterRepository implements ordering.RevenueCenterRepository using GORM
type GormRevenueCenterRepository struct {
	db *gorm.DB
}

// NewGormRevenueCenterRepository creates a new GORM revenue center repository
func NewGormRevenueCenterRepository(db *gorm.DB) *GormRevenueCenterRepository {
	return &GormRevenueCenterRepository{db: db}
}

var _ ordering.RevenueCenterRepository = (*GormRevenueCenterRepository)(nil)

// FindByID finds a revenue center by ID
func (r *GormRevenueCenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.RevenueCenter, error) {
	var rvc ordering.RevenueCenter
	if err := r.db.WithContext(ctx).First(&rvc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find revenue center: %w", err)
	}
	return &rvc, nil
}

// FindAll finds all revenue centers matching the filter
func (r *GormRevenueCenterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.RevenueCenter, error) {
	var rvcs []ordering.RevenueCenter
	query := applyFilter(r.db.WithContext(ctx), filter, commonSortColumns)
	if err := query.Find(&rvcs).Error; err != nil {
		return nil, fmt.Errorf("failed to find revenue centers: %w", err)
	}
	return rvcs, nil
}

// Save persists a revenue center
func (r *GormRevenueCenterRepository) Save(ctx context.Context, rvc *ordering.RevenueCenter) error {
	if err := r.db.WithContext(ctx).Save(rvc).Error; err != nil {
		return fmt.Errorf("failed to save revenue center: %w", err)
	}
	return nil
}

// Delete removes a revenue center by ID
func (r *GormRevenueCenterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ordering.RevenueCenter{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete revenue center: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts revenue centers matching the filter
func (r *GormRevenueCenterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.RevenueCenter{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count revenue centers: %w", err)
	}
	return count, nil
}

// FindByProperty finds the revenue centers of one property
func (r *GormRevenueCenterRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]ordering.RevenueCenter, error) {
	var rvcs []ordering.RevenueCenter
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&rvcs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find revenue centers by property: %w", err)
	}
	return rvcs, nil
}
