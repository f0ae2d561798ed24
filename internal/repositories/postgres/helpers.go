package postgres

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort orders by sortBy when it is one of allowed and
// falls back to created_at desc otherwise.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed ...string) *gorm.DB {
	column := "created_at"
	for _, a := range allowed {
		if strings.EqualFold(a, sortBy) {
			column = a
			break
		}
	}
	direction := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "asc"
	}
	query = query.Order(column + " " + direction)

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	query = query.Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
