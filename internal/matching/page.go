package matching

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a 1-based page position.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest normalizes page and size: page below 1 becomes 1, size
// falls back to DefaultPageSize and is capped at MaxPageSize. Page is capped
// so that Offset never overflows; such a page is always past the end.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return PageRequest{Page: page, Size: size}
}

// Offset is the number of ranked rows preceding this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page is one slice of a ranked result plus the eligible total.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// EmptyPage returns a well-formed page with no items and a zero total.
func EmptyPage[T any](req PageRequest) Page[T] {
	return Page[T]{Items: []T{}, Total: 0, Page: req.Page, Size: req.Size}
}
