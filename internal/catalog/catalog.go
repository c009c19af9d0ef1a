package catalog

import "strings"

// Sentiment is a review sentiment label.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Labels returns all sentiment labels in canonical order.
// Tie-breaks elsewhere depend on this order, so it must not change.
func Labels() []Sentiment {
	return []Sentiment{Positive, Neutral, Negative}
}

// ParseSentiment maps a wire label to a Sentiment, defaulting to Neutral.
func ParseSentiment(s string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return Positive
	case "negative":
		return Negative
	default:
		return Neutral
	}
}

// Product is one catalog entry. Products are built once per load cycle and
// replaced wholesale on refresh; nothing mutates them in between.
type Product struct {
	ID          int
	Name        string
	Brand       string
	Sentiment   Sentiment
	Rating      float64
	ReviewCount int
	Topics      []string
	Description string
	Breakdown   Breakdown
}

// HasTopic reports whether the product carries the given topic tag.
func (p Product) HasTopic(topic string) bool {
	for _, t := range p.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// SearchText returns the concatenated free-text fields used for
// substring search.
func (p Product) SearchText() string {
	return strings.ToLower(p.Name + " " + p.Description + " " + p.Brand)
}

// SentimentCount is one label's slice of a product's review breakdown.
type SentimentCount struct {
	Count      int
	Percentage float64
}

// Breakdown is the per-product sentiment distribution. The zero value means
// "no enrichment available" and behaves as all-neutral.
type Breakdown struct {
	TotalReviews int
	Counts       map[Sentiment]SentimentCount
}

// Dominant returns the label with the highest count, ties broken by the
// canonical label order. All-zero (or empty) breakdowns are Neutral.
func (b Breakdown) Dominant() Sentiment {
	best := Neutral
	bestCount := 0
	for _, label := range Labels() {
		if c := b.Counts[label].Count; c > bestCount {
			best = label
			bestCount = c
		}
	}
	if bestCount == 0 {
		return Neutral
	}
	return best
}

// PositivePercentage returns the positive share of reviews, computing it from
// counts when the wire percentage is absent.
func (b Breakdown) PositivePercentage() float64 {
	pc := b.Counts[Positive]
	if pc.Percentage > 0 {
		return pc.Percentage
	}
	if b.TotalReviews == 0 {
		return 0
	}
	return float64(pc.Count) / float64(b.TotalReviews) * 100
}
