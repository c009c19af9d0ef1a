package loader

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

// fakeClient scripts the remote service for pipeline tests.
type fakeClient struct {
	mu          sync.Mutex
	brands      []api.Brand
	products    []catalog.Product
	breakdowns  map[int]catalog.Breakdown
	productsErr error
	brandsErr   error
	enrichErr   map[int]error
	fresh       bool

	block   chan struct{} // when set, ListBrands blocks until closed
	started chan struct{} // closed when ListBrands is first entered
}

func (f *fakeClient) ListBrands(ctx context.Context) ([]api.Brand, error) {
	if f.started != nil {
		f.mu.Lock()
		select {
		case <-f.started:
		default:
			close(f.started)
		}
		f.mu.Unlock()
	}
	if f.block != nil {
		<-f.block
	}
	if f.brandsErr != nil {
		return nil, f.brandsErr
	}
	return f.brands, nil
}

func (f *fakeClient) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	out := make([]catalog.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeClient) SentimentBreakdown(ctx context.Context, id int) (catalog.Breakdown, error) {
	if err := f.enrichErr[id]; err != nil {
		return catalog.Breakdown{}, err
	}
	return f.breakdowns[id], nil
}

func (f *fakeClient) ProductsFresh() bool { return f.fresh }

func newFake() *fakeClient {
	return &fakeClient{
		brands: []api.Brand{{ID: 1, Name: "Samsung"}},
		products: []catalog.Product{
			{ID: 1, Name: "Galaxy S24", Brand: "Samsung", Topics: []string{"battery life"}},
			{ID: 2, Name: "iPhone 15", Brand: "Apple", Topics: []string{"camera"}},
		},
		breakdowns: map[int]catalog.Breakdown{
			1: {TotalReviews: 10, Counts: map[catalog.Sentiment]catalog.SentimentCount{
				catalog.Positive: {Count: 8}, catalog.Negative: {Count: 2},
			}},
			2: {TotalReviews: 4, Counts: map[catalog.Sentiment]catalog.SentimentCount{
				catalog.Negative: {Count: 3}, catalog.Positive: {Count: 1},
			}},
		},
		enrichErr: map[int]error{},
	}
}

func TestLoadPublishesEnrichedSnapshot(t *testing.T) {
	l := New(newFake())

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Products) != 2 || len(snap.Brands) != 1 {
		t.Fatalf("snapshot shape: %d products, %d brands", len(snap.Products), len(snap.Brands))
	}
	if snap.Products[0].Sentiment != catalog.Positive {
		t.Errorf("product 1 sentiment = %s, want positive", snap.Products[0].Sentiment)
	}
	if snap.Products[1].Sentiment != catalog.Negative {
		t.Errorf("product 2 sentiment = %s, want negative", snap.Products[1].Sentiment)
	}

	// Aggregator rebuilt from the enriched set.
	if got := l.Aggregator().TopicSentiment("battery life"); got != catalog.Positive {
		t.Errorf("aggregated topic sentiment = %s, want positive", got)
	}
}

func TestLoadAbortsOnListFailure(t *testing.T) {
	f := newFake()
	f.productsErr = errors.New("upstream down")
	l := New(f)

	if _, err := l.Load(context.Background()); err == nil {
		t.Fatal("expected load failure")
	}
	if len(l.Snapshot().Products) != 0 {
		t.Error("failed load must not publish a partial snapshot")
	}
}

func TestEnrichmentFailureDegradesGracefully(t *testing.T) {
	f := newFake()
	f.enrichErr[2] = errors.New("flaky")
	l := New(f)

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Products) != 2 {
		t.Fatalf("product with failed enrichment must be kept, got %d products", len(snap.Products))
	}
	if snap.Products[1].Sentiment != catalog.Neutral {
		t.Errorf("unenriched product sentiment = %s, want neutral default", snap.Products[1].Sentiment)
	}
	if snap.Products[1].Breakdown.TotalReviews != 0 {
		t.Errorf("unenriched product should carry zero breakdown")
	}
}

func TestReentrancyGuardDropsConcurrentLoad(t *testing.T) {
	f := newFake()
	f.block = make(chan struct{})
	f.started = make(chan struct{})
	l := New(f)

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		done <- err
	}()

	// The fake signals once it is inside the pipeline, so the guard is held.
	<-f.started
	if _, err := l.Load(context.Background()); !errors.Is(err, ErrLoadInFlight) {
		t.Errorf("second load: %v, want ErrLoadInFlight", err)
	}

	close(f.block)
	if err := <-done; err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	// Guard released: loads work again.
	if _, err := l.Load(context.Background()); err != nil {
		t.Errorf("load after release: %v", err)
	}
}

func TestRatingDerivedFromBreakdown(t *testing.T) {
	f := newFake()
	f.enrichErr[2] = errors.New("flaky")
	l := New(f)

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Product 1 arrived unrated; 8 of 10 reviews positive is 80%, which the
	// thresholds map to five stars.
	if got := snap.Products[0].Rating; got != 5.0 {
		t.Errorf("derived rating = %v, want 5.0", got)
	}

	// Product 2 has neither a wire rating nor a breakdown: neutral default.
	if got := snap.Products[1].Rating; got != 3.0 {
		t.Errorf("unrated fallback = %v, want 3.0", got)
	}
}

func TestWireRatingNotOverridden(t *testing.T) {
	f := newFake()
	f.products[0].Rating = 4.2
	l := New(f)

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := snap.Products[0].Rating; got != 4.2 {
		t.Errorf("rating = %v, want the wire value 4.2 kept", got)
	}
}

func TestAggregatorSafeDuringLoad(t *testing.T) {
	l := New(newFake())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			l.Load(context.Background())
		}
	}()

	// Published aggregators are immutable; reading while loads churn in the
	// background must never observe a partial rebuild.
	for {
		select {
		case <-done:
			if got := l.Aggregator().TopicSentiment("battery life"); got != catalog.Positive {
				t.Errorf("final topic sentiment = %s, want positive", got)
			}
			return
		default:
			agg := l.Aggregator()
			agg.TopTopics(5)
			agg.TopicSentiment("battery life")
		}
	}
}

func TestRestorePublishesSnapshot(t *testing.T) {
	l := New(newFake())

	var notified int
	l.OnChange(func(Snapshot) { notified++ })

	l.Restore(Snapshot{Products: []catalog.Product{
		{ID: 9, Name: "Archive Phone", Sentiment: catalog.Negative, Topics: []string{"screen quality"}},
	}})

	if got := len(l.Snapshot().Products); got != 1 {
		t.Fatalf("snapshot has %d products, want 1", got)
	}
	if got := l.Aggregator().TopicSentiment("screen quality"); got != catalog.Negative {
		t.Errorf("restored topic sentiment = %s, want negative", got)
	}
	if notified != 1 {
		t.Errorf("observers notified %d times, want 1", notified)
	}
}

func TestMaybeRefreshSkipsWhileCacheFresh(t *testing.T) {
	f := newFake()
	l := New(f)

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	f.fresh = true
	f.productsErr = errors.New("must not be called")
	snap, refreshed, err := l.MaybeRefresh(context.Background())
	if err != nil {
		t.Fatalf("MaybeRefresh: %v", err)
	}
	if refreshed {
		t.Error("fresh cache must short-circuit the refresh")
	}
	if len(snap.Products) != 2 {
		t.Error("short-circuited refresh should return the current snapshot")
	}

	f.fresh = false
	f.productsErr = nil
	_, refreshed, err = l.MaybeRefresh(context.Background())
	if err != nil {
		t.Fatalf("MaybeRefresh after expiry: %v", err)
	}
	if !refreshed {
		t.Error("expired cache should trigger a reload")
	}
}

func TestOnChangeObservers(t *testing.T) {
	l := New(newFake())

	var calls []int
	l.OnChange(func(s Snapshot) { calls = append(calls, len(s.Products)) })
	l.OnChange(func(s Snapshot) { calls = append(calls, len(s.Brands)) })

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(calls) != 2 || calls[0] != 2 || calls[1] != 1 {
		t.Errorf("observer calls = %v, want [2 1] in registration order", calls)
	}
}
