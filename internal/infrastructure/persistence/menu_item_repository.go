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

// GormMenuItemRepository implements ordering.MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GORM menu item repository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

var _ ordering.MenuItemRepository = (*GormMenuItemRepository)(nil)

// FindByID finds a menu item by ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.MenuItem, error) {
	var item ordering.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	return &item, nil
}

// FindAll finds all menu items matching the filter
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.MenuItem, error) {
	var items []ordering.MenuItem
	query := applyFilter(r.db.WithContext(ctx), filter, menuItemSortColumns)
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find menu items: %w", err)
	}
	return items, nil
}

// Save persists a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *ordering.MenuItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save menu item: %w", err)
	}
	return nil
}

// Delete removes a menu item by ID
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ordering.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts menu items matching the filter
func (r *GormMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.MenuItem{}), filter, menuItemSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}

// FindByIDs finds menu items by a set of IDs
func (r *GormMenuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ordering.MenuItem, error) {
	if len(ids) == 0 {
		return []ordering.MenuItem{}, nil
	}
	var items []ordering.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find menu items by ids: %w", err)
	}
	return items, nil
}

// FindByProperty finds the menu items of one property
func (r *GormMenuItemRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ordering.MenuItem, error) {
	var items []ordering.MenuItem
	query := r.db.WithContext(ctx).Where("property_id = ?", propertyID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR plu LIKE ?", pattern, pattern)
	}
	query = applyFilter(query, filter, menuItemSortColumns)
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find menu items by property: %w", err)
	}
	return items, nil
}

// FindByPrintClass finds the menu items assigned to one print class
func (r *GormMenuItemRepository) FindByPrintClass(ctx context.Context, printClassID uuid.UUID) ([]ordering.MenuItem, error) {
	var items []ordering.MenuItem
	err := r.db.WithContext(ctx).
		Where("print_class_id = ?", printClassID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find menu items by print class: %w", err)
	}
	return items, nil
}
