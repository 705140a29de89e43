package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 1000

	// batchSize bounds the rows per INSERT statement in CreateInBatches
	batchSize = 100
)

// applyPaginationAndSort applies a whitelisted ORDER BY plus LIMIT/OFFSET
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool, limit, offset int) *gorm.DB {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order)).Order("id ASC")

	// negative limit means unbounded, used by exports
	switch {
	case limit == 0:
		query = query.Limit(defaultLimit)
	case limit > maxLimit:
		query = query.Limit(maxLimit)
	case limit > 0:
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
