package persistence

import (
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies page-based offset and limit to the query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyOrdering applies sorting, defaulting to newest first
func applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + orderDir)
	}
	return query.Order("created_at DESC")
}

// applyListFilter applies pagination and ordering together
func applyListFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyOrdering(applyPagination(query, filter), filter)
}

// applySearch adds a case-insensitive LIKE across the given columns
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clause := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clause = append(clause, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return query.Where(strings.Join(clause, " OR "), args...)
}
