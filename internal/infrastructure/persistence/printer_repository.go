package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/shared"
)

// GormPrinterRepository implements hardware.PrinterRepository using GORM
type GormPrinterRepository struct {
	db *gorm.DB
}

// NewGormPrinterRepository creates a new GORM printer repository
func NewGormPrinterRepository(db *gorm.DB) *GormPrinterRepository {
	return &GormPrinterRepository{db: db}
}

var _ hardware.PrinterRepository = (*GormPrinterRepository)(nil)

// FindByID finds a printer by ID
func (r *GormPrinterRepository) FindByID(ctx context.Context, id uuid.UUID) (*hardware.Printer, error) {
	var printer hardware.Printer
	if err := r.db.WithContext(ctx).First(&printer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find printer: %w", err)
	}
	return &printer, nil
}

// FindAll finds all printers matching the filter
func (r *GormPrinterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hardware.Printer, error) {
	var printers []hardware.Printer
	query := applyFilter(r.db.WithContext(ctx), filter, commonSortColumns)
	if err := query.Find(&printers).Error; err != nil {
		return nil, fmt.Errorf("failed to find printers: %w", err)
	}
	return printers, nil
}

// Save persists a printer
func (r *GormPrinterRepository) Save(ctx context.Context, printer *hardware.Printer) error {
	if err := r.db.WithContext(ctx).Save(printer).Error; err != nil {
		return fmt.Errorf("failed to save printer: %w", err)
	}
	return nil
}

// Delete removes a printer by ID
func (r *GormPrinterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&hardware.Printer{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete printer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts printers matching the filter
func (r *GormPrinterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&hardware.Printer{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count printers: %w", err)
	}
	return count, nil
}

// FindByIDs finds printers by a set of IDs
func (r *GormPrinterRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]hardware.Printer, error) {
	if len(ids) == 0 {
		return []hardware.Printer{}, nil
	}
	var printers []hardware.Printer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&printers).Error; err != nil {
		return nil, fmt.Errorf("failed to find printers by ids: %w", err)
	}
	return printers, nil
}

// FindByProperty finds the printers of one property
func (r *GormPrinterRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]hardware.Printer, error) {
	var printers []hardware.Printer
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&printers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find printers by property: %w", err)
	}
	return printers, nil
}
