package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/routing"
	"github.com/possuite/backend/internal/domain/shared"
)

// GormPrintClassRepository implements routing.PrintClassRepository using GORM
type GormPrintClassRepository struct {
	db *gorm.DB
}

// NewGormPrintClassRepository creates a new GORM print class repository
func NewGormPrintClassRepository(db *gorm.DB) *GormPrintClassRepository {
	return &GormPrintClassRepository{db: db}
}

var _ routing.PrintClassRepository = (*GormPrintClassRepository)(nil)

// FindByID finds a print class by ID
func (r *GormPrintClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*routing.PrintClass, error) {
	var class routing.PrintClass
	if err := r.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find print class: %w", err)
	}
	return &class, nil
}

// FindAll finds all print classes matching the filter
func (r *GormPrintClassRepository) FindAll(ctx context.Context, filter shared.Filter) ([]routing.PrintClass, error) {
	var classes []routing.PrintClass
	query := applyFilter(r.db.WithContext(ctx), filter, commonSortColumns)
	if err := query.Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to find print classes: %w", err)
	}
	return classes, nil
}

// Save persists a print class
func (r *GormPrintClassRepository) Save(ctx context.Context, class *routing.PrintClass) error {
	if err := r.db.WithContext(ctx).Save(class).Error; err != nil {
		return fmt.Errorf("failed to save print class: %w", err)
	}
	return nil
}

// Delete removes a print class by ID
func (r *GormPrintClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&routing.PrintClass{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete print class: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts print classes matching the filter
func (r *GormPrintClassRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&routing.PrintClass{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count print classes: %w", err)
	}
	return count, nil
}

// FindByProperty finds the print classes of one property
func (r *GormPrintClassRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]routing.PrintClass, error) {
	var classes []routing.PrintClass
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&classes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find print classes by property: %w", err)
	}
	return classes, nil
}
