package aggregate

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

// TopicStat holds the derived statistics for one topic label.
type TopicStat struct {
	Topic      string
	Count      int
	Sentiments map[catalog.Sentiment]int
	Dominant   catalog.Sentiment
	// Score is the relevance used for ranking. It is the raw product count;
	// no normalization by catalog size or recency, so topics from heavily
	// reviewed brands will dominate. Known limitation.
	Score int
}

// Aggregator derives per-topic statistics from a product set. Construct one
// per owner and pass it explicitly; stats are fully recomputed on every
// Rebuild and never partially updated.
type Aggregator struct {
	stats map[string]*TopicStat
	order []string // discovery order, used for stable tie-breaks
}

func New() *Aggregator {
	return &Aggregator{stats: make(map[string]*TopicStat)}
}

// bare stop-words rejected as topics on their own
var stopWords = map[string]bool{
	"and": true, "or": true, "the": true, "a": true, "an": true,
}

// ValidTopic reports whether a candidate topic label survives the quality
// filter: sane length, not a bare stop-word, at least one letter, and at
// most six words.
func ValidTopic(topic string) bool {
	t := strings.TrimSpace(topic)
	if n := utf8.RuneCountInString(t); n < 3 || n > 50 {
		return false
	}
	if stopWords[strings.ToLower(t)] {
		return false
	}
	hasAlpha := false
	for _, r := range t {
		if unicode.IsLetter(r) {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return false
	}
	return len(strings.Fields(t)) <= 6
}

// Rebuild recomputes every topic statistic from scratch. The quality filter
// runs once over the distinct topic vocabulary, not per product; products
// carrying a rejected topic simply don't contribute it.
func (a *Aggregator) Rebuild(products []catalog.Product) {
	a.stats = make(map[string]*TopicStat)
	a.order = a.order[:0]

	accepted := make(map[string]bool)
	seen := make(map[string]bool)
	for _, p := range products {
		for _, topic := range p.Topics {
			if seen[topic] {
				continue
			}
			seen[topic] = true
			accepted[topic] = ValidTopic(topic)
		}
	}

	for _, p := range products {
		for _, topic := range p.Topics {
			if !accepted[topic] {
				continue
			}
			st, ok := a.stats[topic]
			if !ok {
				st = &TopicStat{
					Topic:      topic,
					Sentiments: make(map[catalog.Sentiment]int),
				}
				a.stats[topic] = st
				a.order = append(a.order, topic)
			}
			st.Count++
			st.Sentiments[p.Sentiment]++
		}
	}

	for _, topic := range a.order {
		st := a.stats[topic]
		st.Score = st.Count
		st.Dominant = dominant(st.Sentiments)
	}
}

// dominant picks the highest-count label; ties go to the earliest label in
// canonical order, and all-zero counts are neutral.
func dominant(counts map[catalog.Sentiment]int) catalog.Sentiment {
	best := catalog.Neutral
	bestCount := 0
	for _, label := range catalog.Labels() {
		if c := counts[label]; c > bestCount {
			best = label
			bestCount = c
		}
	}
	if bestCount == 0 {
		return catalog.Neutral
	}
	return best
}

// TopTopics returns up to limit topics sorted by score descending, ties
// broken by discovery order. A non-positive limit returns everything.
func (a *Aggregator) TopTopics(limit int) []TopicStat {
	out := make([]TopicStat, 0, len(a.order))
	for _, topic := range a.order {
		out = append(out, *a.stats[topic])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopicSentiment returns the dominant sentiment for a topic, or neutral when
// the topic is unknown.
func (a *Aggregator) TopicSentiment(topic string) catalog.Sentiment {
	if st, ok := a.stats[topic]; ok {
		return st.Dominant
	}
	return catalog.Neutral
}

// Topics returns every surviving topic label in discovery order.
func (a *Aggregator) Topics() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the number of topics currently aggregated.
func (a *Aggregator) Len() int {
	return len(a.order)
}
