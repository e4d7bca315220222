package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jelectro/storefront/internal/domain/shared"
)

// allowedOrderColumns guards ORDER BY against injection. Only plain column
// names that appear in our schema are accepted.
var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"username":   true,
	"unit_price": true,
	"stock":      true,
	"quantity":   true,
	"total":      true,
}

// applyOrder applies validated ordering from the filter
func applyOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column := strings.ToLower(filter.OrderBy)
	if !allowedOrderColumns[column] {
		column = "created_at"
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return query.Order(fmt.Sprintf("%s %s", column, dir))
}

// applyPagination applies page-based limits from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	return query
}

// applyFilter applies ordering and pagination in one step
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applyOrder(query, filter), filter)
}
