// Package loader runs the load-and-aggregate pipeline: fetch the product
// list through the cached client, enrich each product with its sentiment
// breakdown, and rebuild the topic statistics. The product set is replaced
// wholesale per cycle; a failed load publishes nothing.
package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/burnlikeash/SentimentScope/internal/aggregate"
	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/catalog"
	"github.com/burnlikeash/SentimentScope/internal/rating"
)

// ErrLoadInFlight reports that a load was dropped because another one is
// already running. Triggers are dropped, not queued.
var ErrLoadInFlight = errors.New("load already in flight")

// Snapshot is one published catalog state.
type Snapshot struct {
	Products []catalog.Product
	Brands   []api.Brand
	LoadedAt time.Time
}

// Client is the slice of the api.Client surface the loader needs.
type Client interface {
	ListBrands(ctx context.Context) ([]api.Brand, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	SentimentBreakdown(ctx context.Context, productID int) (catalog.Breakdown, error)
	ProductsFresh() bool
}

type Loader struct {
	client Client

	inFlight atomic.Bool

	mu       sync.Mutex
	agg      *aggregate.Aggregator
	snapshot Snapshot
	onChange []func(Snapshot)
}

func New(client Client) *Loader {
	return &Loader{
		client: client,
		agg:    aggregate.New(),
	}
}

// Aggregator returns the current topic aggregator. Each publish swaps in a
// freshly built one, so the returned aggregator is never mutated again and
// is safe to read from any goroutine.
func (l *Loader) Aggregator() *aggregate.Aggregator {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.agg
}

// Snapshot returns the last published catalog state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

// OnChange registers an observer for published snapshots. Observers run
// synchronously, in registration order, after each publish.
func (l *Loader) OnChange(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// publish swaps in the new snapshot and aggregator under the lock, then
// notifies observers outside it.
func (l *Loader) publish(snap Snapshot, agg *aggregate.Aggregator) {
	l.mu.Lock()
	l.snapshot = snap
	l.agg = agg
	observers := make([]func(Snapshot), len(l.onChange))
	copy(observers, l.onChange)
	l.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

// Load runs one full pipeline cycle. A second trigger while one is running
// returns ErrLoadInFlight. Any fetch failure of the product or brand list
// aborts the cycle without publishing a partial set; per-product enrichment
// failures keep the product with a default breakdown.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	if !l.inFlight.CompareAndSwap(false, true) {
		return Snapshot{}, ErrLoadInFlight
	}
	defer l.inFlight.Store(false)

	brands, err := l.client.ListBrands(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	products, err := l.client.ListProducts(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	for i := range products {
		breakdown, err := l.client.SentimentBreakdown(ctx, products[i].ID)
		if err != nil {
			// Graceful degradation: keep the product, default enrichment.
			continue
		}
		products[i].Breakdown = breakdown
		products[i].Sentiment = breakdown.Dominant()
		if products[i].Rating == 0 && breakdown.TotalReviews > 0 {
			products[i].Rating = rating.FromPositivePercentage(breakdown.PositivePercentage())
		}
	}
	// Products the service never rated and enrichment couldn't rate either.
	for i := range products {
		if products[i].Rating == 0 {
			products[i].Rating = rating.NeutralDefault
		}
	}

	snap := Snapshot{Products: products, Brands: brands, LoadedAt: time.Now()}

	agg := aggregate.New()
	agg.Rebuild(products)

	l.publish(snap, agg)
	return snap, nil
}

// Restore publishes a snapshot that did not come from a load cycle, such as
// the offline store fallback. Topic statistics are rebuilt from it.
func (l *Loader) Restore(snap Snapshot) {
	agg := aggregate.New()
	agg.Rebuild(snap.Products)
	l.publish(snap, agg)
}

// MaybeRefresh reloads only when the product-list cache has expired. Fresh
// cache or an in-flight load both short-circuit to the current snapshot.
func (l *Loader) MaybeRefresh(ctx context.Context) (Snapshot, bool, error) {
	if l.client.ProductsFresh() {
		return l.Snapshot(), false, nil
	}
	snap, err := l.Load(ctx)
	if errors.Is(err, ErrLoadInFlight) {
		return l.Snapshot(), false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}
