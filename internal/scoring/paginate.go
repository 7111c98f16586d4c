package scoring

import "math"

const (
	PageSize   = 50
	FetchLimit = 100
	Margin     = 25
	// MaxPage is the largest page whose row offset fits in an int.
	MaxPage = math.MaxInt / PageSize
)

// PageWindow maps a logical page onto a physical fetch and a slice of it.
// The physical window starts Margin rows before the page, so adjacent pages
// read overlapping windows.
type PageWindow struct {
	Page   int
	Offset int // physical OFFSET, rows ordered by id desc
	Limit  int // physical LIMIT
	Start  int // index into the fetched rows where the page begins
}

// Window resolves the fetch window for a page. Negative pages and pages past
// MaxPage are page 0.
func Window(page int) PageWindow {
	if page < 0 || page > MaxPage {
		page = 0
	}
	logical := page * PageSize
	return PageWindow{
		Page:   page,
		Offset: max(0, logical-Margin),
		Limit:  FetchLimit,
		Start:  min(logical, Margin),
	}
}

// Slice extracts the logical page from the fetched rows.
func Slice[T any](w PageWindow, rows []T) []T {
	if w.Start < 0 || w.Start >= len(rows) {
		return []T{}
	}
	end := min(w.Start+PageSize, len(rows))
	return rows[w.Start:end]
}
