package repository

import (
	"strings"

	"gorm.io/gorm"
)

// applyPagination offsets and limits a query when a page size is set.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page <= 0 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// orderClause converts a "field" or "-field" sort key into an ORDER BY clause,
// accepting only whitelisted columns. Unknown keys fall back to the default.
func orderClause(sort string, columns map[string]string, fallback string) string {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return fallback
	}

	descending := strings.HasPrefix(sort, "-")
	key := strings.TrimPrefix(sort, "-")
	column, ok := columns[key]
	if !ok {
		return fallback
	}

	if descending {
		return column + " DESC"
	}
	return column + " ASC"
}
