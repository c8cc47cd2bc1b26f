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

// GormOrderDeviceRepository implements hardware.OrderDeviceRepository using GORM
type GormOrderDeviceRepository struct {
	db *gorm.DB
}

// NewGormOrderDeviceRepository creates a new GORM order device repository
func NewGormOrderDeviceRepository(db *gorm.DB) *GormOrderDeviceRepository {
	return &GormOrderDeviceRepository{db: db}
}

var _ hardware.OrderDeviceRepository = (*GormOrderDeviceRepository)(nil)

func (r *GormOrderDeviceRepository) withLinks(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("PrinterLinks").
		Preload("DisplayLinks")
}

// FindByID finds an order device by ID with its links
func (r *GormOrderDeviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*hardware.OrderDevice, error) {
	var device hardware.OrderDevice
	if err := r.withLinks(ctx).First(&device, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order device: %w", err)
	}
	return &device, nil
}

// FindAll finds all order devices matching the filter
func (r *GormOrderDeviceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hardware.OrderDevice, error) {
	var devices []hardware.OrderDevice
	query := applyFilter(r.withLinks(ctx), filter, commonSortColumns)
	if err := query.Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to find order devices: %w", err)
	}
	return devices, nil
}

// Save persists an order device with its links. Links are replaced
// wholesale so detached targets do not linger.
func (r *GormOrderDeviceRepository) Save(ctx context.Context, device *hardware.OrderDevice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_device_id = ?", device.ID).Delete(&hardware.PrinterLink{}).Error; err != nil {
			return fmt.Errorf("failed to clear printer links: %w", err)
		}
		if err := tx.Where("order_device_id = ?", device.ID).Delete(&hardware.DisplayLink{}).Error; err != nil {
			return fmt.Errorf("failed to clear display links: %w", err)
		}
		err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(device).Error
		if err != nil {
			return fmt.Errorf("failed to save order device: %w", err)
		}
		return nil
	})
}

// Delete removes an order device and its links
func (r *GormOrderDeviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_device_id = ?", id).Delete(&hardware.PrinterLink{}).Error; err != nil {
			return fmt.Errorf("failed to delete printer links: %w", err)
		}
		if err := tx.Where("order_device_id = ?", id).Delete(&hardware.DisplayLink{}).Error; err != nil {
			return fmt.Errorf("failed to delete display links: %w", err)
		}
		result := tx.Delete(&hardware.OrderDevice{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order device: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts order devices matching the filter
func (r *GormOrderDeviceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&hardware.OrderDevice{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count order devices: %w", err)
	}
	return count, nil
}

// FindByIDs finds order devices by a set of IDs
func (r *GormOrderDeviceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]hardware.OrderDevice, error) {
	if len(ids) == 0 {
		return []hardware.OrderDevice{}, nil
	}
	var devices []hardware.OrderDevice
	if err := r.withLinks(ctx).Where("id IN ?", ids).Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to find order devices by ids: %w", err)
	}
	return devices, nil
}

// FindByProperty finds the order devices of one property
func (r *GormOrderDeviceRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]hardware.OrderDevice, error) {
	var devices []hardware.OrderDevice
	err := r.withLinks(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find order devices by property: %w", err)
	}
	return devices, nil
}
