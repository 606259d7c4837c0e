package domain

import "fmt"

// Defaults for a freshly mounted log view
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageSizes are the page sizes offered by the console
var PageSizes = []int{10, 20, 50, 100}

// LogPage is a decoded page of request logs
type LogPage struct {
	Current int
	Pages   int
	Records []LogRecord
	Size    int
	Total   int
}

// TotalPages returns ceil(total/size), or 0 when there are no records
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps page within [1, max(pages, 1)]
func ClampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		return pages
	}
	return page
}

// PageSummary renders the "Showing X to Y of Z results" footer
func PageSummary(current, size, total int) string {
	from := 0
	if total > 0 {
		from = (current-1)*size + 1
	}
	to := current * size
	if to > total {
		to = total
	}
	return fmt.Sprintf("Showing %d to %d of %d results", from, to, total)
}

// NextPageSize returns the page size that follows size in PageSizes, wrapping around
func NextPageSize(size int) int {
	for i, s := range PageSizes {
		if s == size {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// ValidPageSize reports whether size is one of PageSizes
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
