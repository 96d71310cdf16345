package services

const maxPageSize = 50

// Pagination clamps page/limit and returns the offset/limit to query
// with. Limit is capped so a caller cannot dump whole tables.
func Pagination(page, limit int) (offset, take int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return (page - 1) * limit, limit
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
