package pager

import "github.com/burnlikeash/SentimentScope/internal/catalog"

// DefaultPageSize is the number of products per page when the caller does
// not override it.
const DefaultPageSize = 12

// Pager windows a filtered product list into fixed-size pages. Apply always
// rescans the full input and resets to page one; there is no incremental
// filtering.
type Pager struct {
	pageSize int
	filtered []catalog.Product
	page     int
}

func New(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize, page: 1}
}

// Apply filters products with matches and resets to the first page.
func (p *Pager) Apply(products []catalog.Product, matches func(catalog.Product) bool) {
	p.filtered = p.filtered[:0]
	for _, prod := range products {
		if matches == nil || matches(prod) {
			p.filtered = append(p.filtered, prod)
		}
	}
	p.page = 1
}

// TotalPages reports the page count, which is at least 1 even when the
// filtered set is empty ("page 1 of 1", zero items).
func (p *Pager) TotalPages() int {
	if len(p.filtered) == 0 {
		return 1
	}
	return (len(p.filtered) + p.pageSize - 1) / p.pageSize
}

// CurrentPage reports the 1-based current page.
func (p *Pager) CurrentPage() int {
	return p.page
}

// Total reports the filtered item count across all pages.
func (p *Pager) Total() int {
	return len(p.filtered)
}

// Page returns the current page's slice of products.
func (p *Pager) Page() []catalog.Product {
	start := (p.page - 1) * p.pageSize
	if start >= len(p.filtered) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.filtered) {
		end = len(p.filtered)
	}
	return p.filtered[start:end]
}

// Next advances one page, clamped to the last page.
func (p *Pager) Next() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// Prev steps back one page, clamped to the first page.
func (p *Pager) Prev() {
	if p.page > 1 {
		p.page--
	}
}
