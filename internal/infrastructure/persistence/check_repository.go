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

// GormCheckRepository implements ordering.CheckRepository using GORM
type GormCheckRepository struct {
	db *gorm.DB
}

// NewGormCheckRepository creates a new GORM check repository
func NewGormCheckRepository(db *gorm.DB) *GormCheckRepository {
	return &GormCheckRepository{db: db}
}

var _ ordering.CheckRepository = (*GormCheckRepository)(nil)

func (r *GormCheckRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items.Modifiers").
		Preload("Payments")
}

// FindByID finds a check by ID with items, modifiers, and payments
func (r *GormCheckRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Check, error) {
	var check ordering.Check
	if err := r.withAssociations(ctx).First(&check, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check: %w", err)
	}
	return &check, nil
}

// FindAll finds all checks matching the filter
func (r *GormCheckRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Check, error) {
	var checks []ordering.Check
	query := applyFilter(r.withAssociations(ctx), filter, checkSortColumns)
	if err := query.Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("failed to find checks: %w", err)
	}
	return checks, nil
}

// Save persists a check with its items, modifiers, and payments
func (r *GormCheckRepository) Save(ctx context.Context, check *ordering.Check) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(check).Error
	if err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}
	return nil
}

// Delete removes a check and its child rows
func (r *GormCheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []uuid.UUID
		if err := tx.Model(&ordering.CheckItem{}).Where("check_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return fmt.Errorf("failed to list check items: %w", err)
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("check_item_id IN ?", itemIDs).Delete(&ordering.ItemModifier{}).Error; err != nil {
				return fmt.Errorf("failed to delete item modifiers: %w", err)
			}
		}
		if err := tx.Where("check_id = ?", id).Delete(&ordering.CheckItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete check items: %w", err)
		}
		if err := tx.Where("check_id = ?", id).Delete(&ordering.Payment{}).Error; err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		result := tx.Delete(&ordering.Check{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete check: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts checks matching the filter
func (r *GormCheckRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.Check{}), filter, checkSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count checks: %w", err)
	}
	return count, nil
}

// FindOpenByRvc finds the open checks in one revenue center
func (r *GormCheckRepository) FindOpenByRvc(ctx context.Context, rvcID uuid.UUID) ([]ordering.Check, error) {
	var checks []ordering.Check
	err := r.withAssociations(ctx).
		Where("rvc_id = ? AND status = ?", rvcID, ordering.CheckStatusOpen).
		Order("check_number ASC").
		Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find open checks: %w", err)
	}
	return checks, nil
}

// FindByNumber finds a check by its number within one business date
func (r *GormCheckRepository) FindByNumber(ctx context.Context, propertyID uuid.UUID, businessDate string, checkNumber int) (*ordering.Check, error) {
	var check ordering.Check
	err := r.withAssociations(ctx).
		Where("property_id = ? AND business_date = ? AND check_number = ?", propertyID, businessDate, checkNumber).
		First(&check).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check by number: %w", err)
	}
	return &check, nil
}

// FindByItemID finds the check owning one check item
func (r *GormCheckRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*ordering.Check, error) {
	var item ordering.CheckItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check item: %w", err)
	}
	return r.FindByID(ctx, item.CheckID)
}
