package persistence

import (
	"gorm.io/gorm"

	"github.com/possuite/backend/internal/domain/shared"
)

// applyFilter applies column filters, sorting and pagination to a
// listing query.
func applyFilter(db *gorm.DB, filter shared.Filter, columns sortable) *gorm.DB {
	db = applyFilterWithoutPagination(db, filter, columns)

	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return db
}

// applyFilterWithoutPagination is the count-query variant: filters and
// sorting only.
func applyFilterWithoutPagination(db *gorm.DB, filter shared.Filter, columns sortable) *gorm.DB {
	for key, value := range filter.Filters {
		if columns.has(key) {
			db = db.Where(key+" = ?", value)
		}
	}

	if filter.OrderBy != "" {
		db = db.Order(columns.column(filter.OrderBy, "created_at") + " " + sortDirection(filter.OrderDir))
	}

	return db
}
