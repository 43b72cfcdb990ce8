// Package pagination builds the page links a paginator control renders.
//
// The main entry point is Dotted, which turns an item count, a page size and
// the current page into an ordered list of page numbers with runs of elided
// pages collapsed into a single ellipsis:
//
//	Dotted(200, 10, 10, 2) // [1 ... 8 9 10 11 12 ... 20]
package pagination

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultRadius is the number of pages shown on each side of the current page.
const DefaultRadius = 2

// EllipsisText is how an elided run of pages is rendered.
const EllipsisText = "..."

// Token is one entry of a paginator: a page number (>= 1) or Ellipsis.
type Token int

// Ellipsis marks one or more elided pages.
const Ellipsis Token = 0

// IsEllipsis reports whether t stands for elided pages.
func (t Token) IsEllipsis() bool { return t == Ellipsis }

// Page returns the page number, or 0 for Ellipsis.
func (t Token) Page() int { return int(t) }

func (t Token) String() string {
	if t.IsEllipsis() {
		return EllipsisText
	}
	return strconv.Itoa(int(t))
}

// MarshalJSON encodes pages as numbers and the ellipsis as "...".
func (t Token) MarshalJSON() ([]byte, error) {
	if t.IsEllipsis() {
		return []byte(`"` + EllipsisText + `"`), nil
	}
	return []byte(strconv.Itoa(int(t))), nil
}

// UnmarshalJSON accepts a positive page number or "...".
func (t *Token) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != EllipsisText {
			return fmt.Errorf("invalid page token %q", s)
		}
		*t = Ellipsis
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid page token %s: %w", data, err)
	}
	if n < 1 {
		return fmt.Errorf("invalid page number %d", n)
	}
	*t = Token(n)
	return nil
}

// MarshalYAML renders tokens the same way the CLI prints them.
func (t Token) MarshalYAML() (any, error) {
	if t.IsEllipsis() {
		return EllipsisText, nil
	}
	return int(t), nil
}

// TotalPages returns ceil(total / pageSize), or 0 when either is not positive.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

// DottedDefault is Dotted with DefaultRadius.
func DottedDefault(total, pageSize, currentPage int) []Token {
	return Dotted(total, pageSize, currentPage, DefaultRadius)
}

// Dotted returns the page tokens for a paginator.
//
// The first and last pages are always present, as is every page within
// radius of currentPage. Each gap between them becomes one Ellipsis.
// currentPage is not clamped to the page count; pages past the end are
// simply never emitted.
// Degenerate input (no items, no page size, page < 1) yields an empty slice.
func Dotted(total, pageSize, currentPage, radius int) []Token {
	pages := []Token{}
	if currentPage <= 0 {
		return pages
	}

	totalPages := TotalPages(total, pageSize)
	switch totalPages {
	case 0:
		return pages
	case 1:
		return append(pages, 1)
	}

	radius = max(radius, 0)
	// p and currentPage are >= 1 and radius >= 0, so p-currentPage and lo
	// cannot overflow where currentPage+radius can.
	lo := currentPage - radius

	for p := 1; ; {
		if d := p - currentPage; p == 1 || p == totalPages || (-radius <= d && d <= radius) {
			pages = append(pages, Token(p))
			if p == totalPages {
				break
			}
			p++
			continue
		}

		if pages[len(pages)-1] != Ellipsis {
			pages = append(pages, Ellipsis)
		}

		// Jump to the next kept page instead of walking the gap.
		if p < lo {
			p = min(lo, totalPages)
		} else {
			p = totalPages
		}
	}

	return pages
}
