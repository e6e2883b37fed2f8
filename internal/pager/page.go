package pager

import (
	"fmt"

	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/filter"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize is used when no valid size is configured.
const DefaultPageSize = 25

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// NextPageSize returns the page size following n, wrapping around.
func NextPageSize(n int) int {
	for i, s := range PageSizes {
		if s == n {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return DefaultPageSize
}

// Page is one displayed slice of the working view.
type Page struct {
	Rows       []congress.BillSummary
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// Paginate returns rows [(page-1)*size, page*size) of view. A page below 1
// is treated as 1; a page past the end is empty.
func Paginate(view []congress.BillSummary, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	p := Page{
		Number:     page,
		Size:       size,
		Total:      len(view),
		TotalPages: (len(view) + size - 1) / size,
	}
	start := (page - 1) * size
	if start >= len(view) {
		p.Rows = []congress.BillSummary{}
		return p
	}
	end := min(start+size, len(view))
	p.Rows = view[start:end]
	return p
}

// HasNext is false on the last page and whenever the current page is not
// full.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages && len(p.Rows) == p.Size
}

// HasPrev is false on the first page.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// Label renders "page x/y".
func (p Page) Label() string {
	return fmt.Sprintf("page %d/%d", p.Number, max(p.TotalPages, 1))
}

// Inputs are the state cells a displayed page is derived from.
type Inputs struct {
	Query    string
	Terms    []string
	Sort     Sort
	Page     int
	PageSize int
}

// Derive filters, sorts and paginates raw. It is recomputed from scratch on
// every call and never modifies raw.
func Derive(raw []congress.BillSummary, in Inputs) Page {
	view := filter.Apply(raw, in.Query, in.Terms)
	return Paginate(SortBills(view, in.Sort), in.Page, in.PageSize)
}
