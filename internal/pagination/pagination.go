package pagination

import (
	"strconv"

	"gorm.io/gorm"
)

// PerPage matches the listing pages: bookings, users and services are
// all paginated at 7 records per page.
const PerPage = 7

func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Scope applies the LIMIT/OFFSET window for the given page.
func Scope(page int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * PerPage).Limit(PerPage)
	}
}
