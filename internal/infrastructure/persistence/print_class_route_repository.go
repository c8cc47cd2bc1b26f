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

// GormPrintClassRouteRepository implements routing.PrintClassRouteRepository using GORM
type GormPrintClassRouteRepository struct {
	db *gorm.DB
}

// NewGormPrintClassRouteRepository creates a new GORM print class route repository
func NewGormPrintClassRouteRepository(db *gorm.DB) *GormPrintClassRouteRepository {
	return &GormPrintClassRouteRepository{db: db}
}

var _ routing.PrintClassRouteRepository = (*GormPrintClassRouteRepository)(nil)

// FindByID finds a routing row by ID
func (r *GormPrintClassRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*routing.PrintClassRoute, error) {
	var route routing.PrintClassRoute
	if err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find print class route: %w", err)
	}
	return &route, nil
}

// FindAll finds all routing rows matching the filter
func (r *GormPrintClassRouteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]routing.PrintClassRoute, error) {
	var routes []routing.PrintClassRoute
	query := applyFilter(r.db.WithContext(ctx), filter, commonSortColumns)
	if err := query.Find(&routes).Error; err != nil {
		return nil, fmt.Errorf("failed to find print class routes: %w", err)
	}
	return routes, nil
}

// Save persists a routing row
func (r *GormPrintClassRouteRepository) Save(ctx context.Context, route *routing.PrintClassRoute) error {
	if err := r.db.WithContext(ctx).Save(route).Error; err != nil {
		return fmt.Errorf("failed to save print class route: %w", err)
	}
	return nil
}

// Delete removes a routing row by ID
func (r *GormPrintClassRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&routing.PrintClassRoute{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete print class route: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts routing rows matching the filter
func (r *GormPrintClassRouteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&routing.PrintClassRoute{}), filter, commonSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count print class routes: %w", err)
	}
	return count, nil
}

// FindByPrintClass finds every routing row bound to one print class
func (r *GormPrintClassRouteRepository) FindByPrintClass(ctx context.Context, printClassID uuid.UUID) ([]routing.PrintClassRoute, error) {
	var routes []routing.PrintClassRoute
	err := r.db.WithContext(ctx).
		Where("print_class_id = ?", printClassID).
		Order("created_at ASC").
		Find(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find print class routes by print class: %w", err)
	}
	return routes, nil
}

// FindByProperty finds the routing rows of one property
func (r *GormPrintClassRouteRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]routing.PrintClassRoute, error) {
	var routes []routing.PrintClassRoute
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find print class routes by property: %w", err)
	}
	return routes, nil
}
