// Package api is the client for the catalog's review database service. Read
// requests go through an in-memory TTL cache; failures never populate it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/burnlikeash/SentimentScope/internal/cache"
	"github.com/burnlikeash/SentimentScope/internal/catalog"
	"github.com/burnlikeash/SentimentScope/internal/rating"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 20 * time.Second

// ErrTimeout reports that an outbound request exceeded its deadline. The
// request is aborted and the cache is left untouched.
var ErrTimeout = errors.New("request timed out")

// UpstreamError is a non-success response from the catalog service. It is
// surfaced to the caller, not cached, and not retried automatically.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

const productsPath = "/phones"

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache[[]byte]
	timeout time.Duration
}

// NewClient builds a client for the given base URL. Non-positive timeout or
// cacheTTL fall back to the defaults.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		cache:   cache.New[[]byte](cacheTTL),
		timeout: timeout,
	}
}

// InvalidateCache drops every cached response.
func (c *Client) InvalidateCache() {
	c.cache.InvalidateAll()
}

// ProductsFresh reports whether the full product list is still cached. The
// refresh loop uses this to skip reloads while the cache is warm.
func (c *Client) ProductsFresh() bool {
	return c.cache.Fresh(productsPath)
}

// getJSON fetches path and decodes the response into v. Cacheable requests
// are served from the TTL cache when fresh; the cache is only written on a
// successful response.
func (c *Client) getJSON(ctx context.Context, path string, cacheable bool, v any) error {
	if cacheable {
		if body, ok := c.cache.Get(path); ok {
			return json.Unmarshal(body, v)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", path, ErrTimeout)
		}
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	if cacheable {
		c.cache.Put(path, body)
	}
	return nil
}

// Brand is one catalog brand.
type Brand struct {
	ID   int    `json:"brand_id"`
	Name string `json:"brand_name"`
}

// ListBrands returns all brands, cached.
func (c *Client) ListBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := c.getJSON(ctx, "/brands", true, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// wireProduct is the service's product row.
type wireProduct struct {
	PhoneID            int     `json:"phone_id"`
	PhoneName          string  `json:"phone_name"`
	BrandName          string  `json:"brand_name"`
	ReviewCount        int     `json:"review_count"`
	StarRating         float64 `json:"star_rating"`
	AvgSentimentRating float64 `json:"avg_sentiment_rating"`
	Topics             string  `json:"topics"` // comma-joined
}

func (w wireProduct) toProduct() catalog.Product {
	r := w.StarRating
	if r == 0 {
		r = w.AvgSentimentRating
	}
	if r != 0 {
		r = rating.Clamp(r)
	}
	// Zero means the service never rated it; the load pipeline derives a
	// rating from the sentiment breakdown instead.
	return catalog.Product{
		ID:          w.PhoneID,
		Name:        w.PhoneName,
		Brand:       w.BrandName,
		Sentiment:   catalog.Neutral, // refined by enrichment
		Rating:      r,
		ReviewCount: w.ReviewCount,
		Topics:      splitTopics(w.Topics),
	}
}

func splitTopics(joined string) []string {
	if joined == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(joined, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ListProducts returns the full product list, cached. This is the "full
// product list" key the refresh loop watches.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var wire []wireProduct
	if err := c.getJSON(ctx, productsPath, true, &wire); err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(wire))
	for i, w := range wire {
		products[i] = w.toProduct()
	}
	return products, nil
}

type wireSentiment struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type wireBreakdown struct {
	PhoneID      int                      `json:"phone_id"`
	TotalReviews int                      `json:"total_reviews"`
	Sentiments   map[string]wireSentiment `json:"sentiments"`
}

func (w wireBreakdown) toBreakdown() catalog.Breakdown {
	counts := make(map[catalog.Sentiment]catalog.SentimentCount, len(w.Sentiments))
	for label, s := range w.Sentiments {
		counts[catalog.ParseSentiment(label)] = catalog.SentimentCount{
			Count:      s.Count,
			Percentage: s.Percentage,
		}
	}
	return catalog.Breakdown{TotalReviews: w.TotalReviews, Counts: counts}
}

// SentimentBreakdown returns the per-label review distribution for one
// product, cached.
func (c *Client) SentimentBreakdown(ctx context.Context, productID int) (catalog.Breakdown, error) {
	var wire wireBreakdown
	path := "/sentiments?phone_id=" + strconv.Itoa(productID)
	if err := c.getJSON(ctx, path, true, &wire); err != nil {
		return catalog.Breakdown{}, err
	}
	return wire.toBreakdown(), nil
}

// Review is one product review with its classification.
type Review struct {
	ID             int     `json:"review_id"`
	Text           string  `json:"review_text"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Topic is a modeled discussion topic attached to a product.
type Topic struct {
	Label          string  `json:"topic_label"`
	ReviewMentions int     `json:"review_mentions"`
	AvgRelevance   float64 `json:"avg_relevance"`
}

// Detail is the complete record for one product.
type Detail struct {
	Product    catalog.Product
	StarRating float64
	Breakdown  catalog.Breakdown
	Reviews    []Review
	Topics     []Topic
}

type wireDetail struct {
	Phone struct {
		PhoneID    int     `json:"phone_id"`
		PhoneName  string  `json:"phone_name"`
		BrandName  string  `json:"brand_name"`
		StarRating float64 `json:"star_rating"`
	} `json:"phone"`
	StarRating float64       `json:"star_rating"`
	Sentiments wireBreakdown `json:"sentiments"`
	Reviews    []Review      `json:"reviews"`
	Topics     []Topic       `json:"topics"`
}

// ProductDetail returns the full record for one product, cached.
func (c *Client) ProductDetail(ctx context.Context, productID int) (Detail, error) {
	var wire wireDetail
	path := "/phones/" + strconv.Itoa(productID) + "/complete"
	if err := c.getJSON(ctx, path, true, &wire); err != nil {
		return Detail{}, err
	}

	breakdown := wire.Sentiments.toBreakdown()
	return Detail{
		Product: catalog.Product{
			ID:        wire.Phone.PhoneID,
			Name:      wire.Phone.PhoneName,
			Brand:     wire.Phone.BrandName,
			Sentiment: breakdown.Dominant(),
			Rating:    rating.Clamp(wire.StarRating),
			Breakdown: breakdown,
		},
		StarRating: wire.StarRating,
		Breakdown:  breakdown,
		Reviews:    wire.Reviews,
		Topics:     wire.Topics,
	}, nil
}

type wireSearch struct {
	Query        string        `json:"query"`
	TotalResults int           `json:"total_results"`
	Phones       []wireProduct `json:"phones"`
}

// Search runs the service-side search. Results depend on query state, so
// this path bypasses the cache entirely.
func (c *Client) Search(ctx context.Context, query string, sentimentFilter catalog.Sentiment, brandID int) ([]catalog.Product, error) {
	q := url.Values{}
	q.Set("query", query)
	if sentimentFilter != "" {
		q.Set("sentiment_filter", string(sentimentFilter))
	}
	if brandID > 0 {
		q.Set("brand_filter", strconv.Itoa(brandID))
	}

	var wire wireSearch
	if err := c.getJSON(ctx, "/search?"+q.Encode(), false, &wire); err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(wire.Phones))
	for i, w := range wire.Phones {
		products[i] = w.toProduct()
	}
	return products, nil
}

// Stats are the service's database counters.
type Stats struct {
	Brands              int `json:"brands"`
	Phones              int `json:"phones"`
	Reviews             int `json:"reviews"`
	ProcessedSentiments int `json:"processed_sentiments"`
	Topics              int `json:"topics"`
}

// Stats returns the remote database counters, uncached.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := c.getJSON(ctx, "/stats", false, &s); err != nil {
		return Stats{}, err
	}
	return s, nil
}
