package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Meta describes one page of an offset-paginated listing.
type Meta struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage floors the page number at 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ResolveMeta builds page metadata from a server response. When the server
// supplies totalPages it wins; otherwise it is derived as ceil(total/limit),
// floored at 1 so an empty listing still reports a single page.
func ResolveMeta(page, limit, total int, totalPages *int) Meta {
	limit = NormalizeLimit(limit)
	page = NormalizePage(page)

	tp := 0
	if totalPages != nil {
		tp = *totalPages
	} else {
		tp = (total + limit - 1) / limit
	}
	if tp < 1 {
		tp = 1
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: tp,
	}
}
