package pager

import (
	"testing"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

func makeProducts(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = catalog.Product{ID: i + 1}
	}
	return out
}

func all(catalog.Product) bool { return true }

func TestPaging(t *testing.T) {
	p := New(12)
	p.Apply(makeProducts(25), all)

	if p.TotalPages() != 3 {
		t.Fatalf("TotalPages = %d, want 3", p.TotalPages())
	}
	if p.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want 1", p.CurrentPage())
	}
	if len(p.Page()) != 12 {
		t.Errorf("page 1 has %d items, want 12", len(p.Page()))
	}

	p.Next()
	p.Next()
	if p.CurrentPage() != 3 {
		t.Fatalf("CurrentPage = %d after two Next, want 3", p.CurrentPage())
	}
	if len(p.Page()) != 1 {
		t.Errorf("page 3 has %d items, want 1", len(p.Page()))
	}
	if p.Page()[0].ID != 25 {
		t.Errorf("page 3 item ID = %d, want 25", p.Page()[0].ID)
	}
}

func TestNextClampsAtLastPage(t *testing.T) {
	p := New(12)
	p.Apply(makeProducts(25), all)

	for i := 0; i < 10; i++ {
		p.Next()
	}
	if p.CurrentPage() != 3 {
		t.Errorf("CurrentPage = %d, want clamped to 3", p.CurrentPage())
	}
}

func TestPrevClampsAtFirstPage(t *testing.T) {
	p := New(12)
	p.Apply(makeProducts(25), all)

	p.Prev()
	p.Prev()
	if p.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want clamped to 1", p.CurrentPage())
	}
}

func TestEmptyResultSet(t *testing.T) {
	p := New(12)
	p.Apply(makeProducts(5), func(catalog.Product) bool { return false })

	if p.TotalPages() != 1 {
		t.Errorf("TotalPages = %d on empty set, want 1", p.TotalPages())
	}
	if p.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d on empty set, want 1", p.CurrentPage())
	}
	if len(p.Page()) != 0 {
		t.Errorf("Page() on empty set has %d items, want 0", len(p.Page()))
	}
	if p.Total() != 0 {
		t.Errorf("Total = %d, want 0", p.Total())
	}
}

func TestApplyResetsPage(t *testing.T) {
	p := New(5)
	p.Apply(makeProducts(20), all)
	p.Next()
	p.Next()

	p.Apply(makeProducts(20), all)
	if p.CurrentPage() != 1 {
		t.Errorf("Apply must reset to page 1, got %d", p.CurrentPage())
	}
}

func TestApplyFilters(t *testing.T) {
	p := New(10)
	p.Apply(makeProducts(10), func(prod catalog.Product) bool { return prod.ID%2 == 0 })

	if p.Total() != 5 {
		t.Fatalf("Total = %d, want 5", p.Total())
	}
	for _, prod := range p.Page() {
		if prod.ID%2 != 0 {
			t.Errorf("unexpected product %d in filtered page", prod.ID)
		}
	}
}

func TestDefaultPageSize(t *testing.T) {
	p := New(0)
	p.Apply(makeProducts(13), all)
	if p.TotalPages() != 2 {
		t.Errorf("TotalPages = %d with default size, want 2", p.TotalPages())
	}
}

func TestExactPageBoundary(t *testing.T) {
	p := New(12)
	p.Apply(makeProducts(24), all)
	if p.TotalPages() != 2 {
		t.Errorf("TotalPages = %d for 24 items, want 2", p.TotalPages())
	}
}
