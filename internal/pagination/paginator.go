package pagination

import (
	"fmt"
	"math"
	"strings"
)

// Paginator holds the state of a paginator control.
// Page is 1-indexed; it is not clamped to TotalPages.
type Paginator struct {
	Total    int
	PageSize int
	Page     int
	Radius   int
}

// New returns a Paginator using DefaultRadius.
func New(total, pageSize, page int) Paginator {
	return Paginator{Total: total, PageSize: pageSize, Page: page, Radius: DefaultRadius}
}

// TotalPages returns the number of pages, 0 for degenerate input.
func (p Paginator) TotalPages() int {
	return TotalPages(p.Total, p.PageSize)
}

// HasPrev reports whether a previous page exists.
func (p Paginator) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p Paginator) HasNext() bool {
	return p.Page < p.TotalPages()
}

// Prev returns the previous page, or the current page on the first page.
func (p Paginator) Prev() int {
	if !p.HasPrev() {
		return p.Page
	}
	return p.Page - 1
}

// Next returns the next page, or the current page on the last page.
func (p Paginator) Next() int {
	if !p.HasNext() {
		return p.Page
	}
	return p.Page + 1
}

// Pages returns the dotted page tokens for the current state.
func (p Paginator) Pages() []Token {
	return Dotted(p.Total, p.PageSize, p.Page, p.Radius)
}

// Offset returns the number of items before the current page.
func (p Paginator) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// IsActive reports whether t is the current page.
func (p Paginator) IsActive(t Token) bool {
	return !t.IsEllipsis() && t.Page() == p.Page
}

// Text renders the paginator on one line with the current page bracketed,
// followed by a summary line:
//
//	1 ... 4 [5] 6 ... 10
//	page 5 of 10, 40 items
func (p Paginator) Text() string {
	pages := p.Pages()
	if len(pages) == 0 {
		return fmt.Sprintf("no pages, %d items", max(p.Total, 0))
	}

	parts := make([]string, len(pages))
	for i, t := range pages {
		if p.IsActive(t) {
			parts[i] = "[" + t.String() + "]"
		} else {
			parts[i] = t.String()
		}
	}
	return fmt.Sprintf("%s\npage %d of %d, %d items", strings.Join(parts, " "), p.Page, p.TotalPages(), p.Total)
}
