package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Galaxy S24", Brand: "Samsung", Sentiment: catalog.Positive, Rating: 4.2, ReviewCount: 120, Topics: []string{"battery life", "camera"}},
		{ID: 2, Name: "iPhone 15", Brand: "Apple", Sentiment: catalog.Neutral, Rating: 3.8, ReviewCount: 200},
		{ID: 3, Name: "Pixel 9", Brand: "Google", Sentiment: catalog.Negative, Rating: 2.5, ReviewCount: 40, Topics: []string{"software updates"}},
	}
}

func TestReplaceAndGet(t *testing.T) {
	s := testStore(t)

	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.GetProducts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 products, got %d", len(got))
	}
	// Ordered by review_count DESC.
	if got[0].ID != 2 {
		t.Errorf("expected most-reviewed first, got ID %d", got[0].ID)
	}

	// Round-trip of derived fields.
	var galaxy catalog.Product
	for _, p := range got {
		if p.ID == 1 {
			galaxy = p
		}
	}
	if galaxy.Sentiment != catalog.Positive {
		t.Errorf("sentiment = %s, want positive", galaxy.Sentiment)
	}
	if len(galaxy.Topics) != 2 || galaxy.Topics[0] != "battery life" {
		t.Errorf("topics = %v", galaxy.Topics)
	}
}

func TestReplaceIsWholesale(t *testing.T) {
	s := testStore(t)

	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := s.ReplaceProducts(sampleProducts()[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := s.GetProducts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected wholesale replacement to leave 1 product, got %d", len(got))
	}
}

func TestQueryBrand(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.GetProducts(QueryOpts{Brand: "Samsung"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Brand != "Samsung" {
		t.Errorf("brand query returned %+v", got)
	}
}

func TestQuerySearch(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.GetProducts(QueryOpts{Search: "Pixel"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("search query returned %+v", got)
	}
}

func TestQueryLimit(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.GetProducts(QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 products with limit, got %d", len(got))
	}
}

func TestNeedsRefresh(t *testing.T) {
	s := testStore(t)

	if !s.NeedsRefresh(time.Hour) {
		t.Error("fresh store should need refresh")
	}
	if err := s.SetLastRefresh(); err != nil {
		t.Fatalf("set last refresh: %v", err)
	}
	if s.NeedsRefresh(time.Hour) {
		t.Error("store refreshed just now should not need refresh")
	}
	if !s.NeedsRefresh(0) {
		t.Error("zero interval should always need refresh")
	}
}

func TestPrune(t *testing.T) {
	s := testStore(t)
	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// Nothing older than an hour.
	n, err := s.Prune(time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 0 {
		t.Errorf("pruned %d rows, want 0", n)
	}

	// Everything is older than a negative-retention cutoff in the future.
	n, err = s.Prune(-time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 3 {
		t.Errorf("pruned %d rows, want 3", n)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.ReplaceProducts(sampleProducts()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	count, size, err := s.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
