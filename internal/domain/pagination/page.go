package pagination

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage  = errors.New("page number must be at least 1")
	ErrInvalidLimit = errors.New("page limit must be at least 1")
)

const DefaultLimit = 24

// Page is the request half of a listing cursor: which page the caller wants
// and how many items per page. Totals come back from the store on each fetch.
type Page struct {
	SelectedPage int
	Limit        int
}

func NewPage(selectedPage, limit int) (Page, error) {
	if selectedPage < 1 {
		return Page{}, fmt.Errorf("%w: got %d", ErrInvalidPage, selectedPage)
	}
	if limit < 1 {
		return Page{}, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	return Page{SelectedPage: selectedPage, Limit: limit}, nil
}

// Offset converts the 1-indexed page into a row offset.
func (p Page) Offset() int {
	return (p.SelectedPage - 1) * p.Limit
}

// PageCount derives the number of pages for a server-reported total
// using ceiling division. Zero totals yield zero pages.
func (p Page) PageCount(totalCount int) int {
	if totalCount <= 0 || p.Limit <= 0 {
		return 0
	}
	return (totalCount + p.Limit - 1) / p.Limit
}

// Totals is the response half of the cursor, rendered alongside the items.
type Totals struct {
	SelectedPage int
	Limit        int
	Offset       int
	PageCount    int
	TotalCount   int
}

func (p Page) TotalsFor(totalCount int) Totals {
	return Totals{
		SelectedPage: p.SelectedPage,
		Limit:        p.Limit,
		Offset:       p.Offset(),
		PageCount:    p.PageCount(totalCount),
		TotalCount:   totalCount,
	}
}

// Window returns a bounded run of page numbers centered on the current page
// for rendering page controls. width is the maximum number of buttons.
func Window(currentPage, totalPages, width int) []int {
	if totalPages < 1 || width < 1 {
		return nil
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	if width > totalPages {
		width = totalPages
	}

	start := currentPage - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > totalPages {
		start = totalPages - width + 1
	}

	pages := make([]int, 0, width)
	for i := range width {
		pages = append(pages, start+i)
	}
	return pages
}

// Slice applies the cursor to an in-memory collection and reports the total,
// the way the fetch parameterization is applied by the stores.
func Slice[T any](items []T, p Page) ([]T, int) {
	total := len(items)
	start := p.Offset()
	if start >= total {
		return nil, total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return items[start:end], total
}
