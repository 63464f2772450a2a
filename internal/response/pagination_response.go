package response

import "math"

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes a page of count items at page/size out of total.
// From and To are 1-based item positions and both 0 when the page is empty.
func NewPagination(page, size, count int, total int64) *Pagination {
	p := &Pagination{Page: page, PageSize: size, TotalItems: total}
	if size > 0 {
		if total > 0 {
			p.TotalPages = (total-1)/int64(size) + 1
		}
		if page > math.MaxInt/size {
			page = math.MaxInt / size
		}
	}
	if count > 0 {
		p.From = (page-1)*size + 1
		p.To = p.From + count - 1
	}
	p.HasMore = int64(page)*int64(size) < total
	return p
}
