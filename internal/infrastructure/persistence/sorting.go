package persistence

import "strings"

// sortable lists the columns a caller may order or filter a listing by.
// Anything not on the list falls back to the entity default, so query
// parameters can never reach SQL unvalidated.
type sortable []string

func (s sortable) has(column string) bool {
	for _, c := range s {
		if c == column {
			return true
		}
	}
	return false
}

// column returns the requested sort column when whitelisted, fallback
// otherwise.
func (s sortable) column(requested, fallback string) string {
	requested = strings.TrimSpace(requested)
	if requested != "" && s.has(requested) {
		return requested
	}
	return fallback
}

// sortDirection normalizes a direction to ASC or DESC. Anything
// unrecognized sorts DESC.
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

var (
	commonSortColumns = sortable{"id", "created_at", "updated_at"}

	printJobSortColumns = sortable{
		"id", "created_at", "updated_at",
		"status", "priority", "printed_at", "attempts",
	}

	checkSortColumns = sortable{
		"id", "created_at", "updated_at",
		"check_number", "business_date", "status", "total", "closed_at",
	}

	menuItemSortColumns = sortable{
		"id", "created_at", "updated_at",
		"name", "plu", "price",
	}
)
