package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/domain/shared"
)

// GormPrintJobRepository implements printing.PrintJobRepository using GORM
type GormPrintJobRepository struct {
	db *gorm.DB
}

// NewGormPrintJobRepository creates a new GORM print job repository
func NewGormPrintJobRepository(db *gorm.DB) *GormPrintJobRepository {
	return &GormPrintJobRepository{db: db}
}

var _ printing.PrintJobRepository = (*GormPrintJobRepository)(nil)

// FindByID finds a print job by ID
func (r *GormPrintJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*printing.PrintJob, error) {
	var job printing.PrintJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find print job: %w", err)
	}
	return &job, nil
}

// FindAll finds all print jobs matching the filter
func (r *GormPrintJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]printing.PrintJob, error) {
	var jobs []printing.PrintJob
	query := applyFilter(r.db.WithContext(ctx), filter, printJobSortColumns)
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find print jobs: %w", err)
	}
	return jobs, nil
}

// Save persists a print job
func (r *GormPrintJobRepository) Save(ctx context.Context, job *printing.PrintJob) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("failed to save print job: %w", err)
	}
	return nil
}

// Delete removes a print job by ID
func (r *GormPrintJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&printing.PrintJob{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete print job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts print jobs matching the filter
func (r *GormPrintJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&printing.PrintJob{}), filter, printJobSortColumns)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count print jobs: %w", err)
	}
	return count, nil
}

// FindDue returns up to limit pending jobs ordered by priority ascending,
// then creation time ascending.
func (r *GormPrintJobRepository) FindDue(ctx context.Context, limit int) ([]printing.PrintJob, error) {
	var jobs []printing.PrintJob
	err := r.db.WithContext(ctx).
		Where("status = ?", printing.JobStatusPending).
		Order("priority ASC, created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due print jobs: %w", err)
	}
	return jobs, nil
}

// FindByStatus finds print jobs for a property in the given status
func (r *GormPrintJobRepository) FindByStatus(ctx context.Context, propertyID uuid.UUID, status printing.JobStatus, filter shared.Filter) ([]printing.PrintJob, error) {
	var jobs []printing.PrintJob
	query := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, status)
	query = applyFilter(query, filter, printJobSortColumns)
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find print jobs by status: %w", err)
	}
	return jobs, nil
}

// FindByPrinter finds print jobs bound for one printer
func (r *GormPrintJobRepository) FindByPrinter(ctx context.Context, printerID uuid.UUID, filter shared.Filter) ([]printing.PrintJob, error) {
	var jobs []printing.PrintJob
	query := r.db.WithContext(ctx).Where("printer_id = ?", printerID)
	query = applyFilter(query, filter, printJobSortColumns)
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find print jobs by printer: %w", err)
	}
	return jobs, nil
}

// CountByStatus returns per-status job counts for a property
func (r *GormPrintJobRepository) CountByStatus(ctx context.Context, propertyID uuid.UUID) (map[printing.JobStatus]int64, error) {
	type statusCount struct {
		Status printing.JobStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&printing.PrintJob{}).
		Select("status, COUNT(*) as count").
		Where("property_id = ?", propertyID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count print jobs by status: %w", err)
	}

	counts := make(map[printing.JobStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
