package filter

import (
	"strings"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
	"github.com/burnlikeash/SentimentScope/internal/rating"
)

// BrandAll is the sentinel brand value that imposes no constraint.
const BrandAll = "all"

// State holds the five facet selections. Zero values mean "not set".
// Callers never mutate State directly; all changes go through Engine.
type State struct {
	Sentiment catalog.Sentiment
	Topic     string
	Brand     string
	Search    string
	Bucket    int // rating bucket 1..5, 0 = none
}

// Empty reports whether no facet is active.
func (s State) Empty() bool {
	return s == State{}
}

// Engine owns the facet state, enforces the exclusivity rules, and evaluates
// products against the active facet set. Every accepted mutation notifies
// registered observers synchronously, in registration order.
type Engine struct {
	state    State
	onChange []func(State)
}

func New() *Engine {
	return &Engine{}
}

// State returns a copy of the current facet selections.
func (e *Engine) State() State {
	return e.state
}

// OnChange registers an observer called after every accepted mutation.
func (e *Engine) OnChange(fn func(State)) {
	e.onChange = append(e.onChange, fn)
}

func (e *Engine) notify() {
	for _, fn := range e.onChange {
		fn(e.state)
	}
}

// ToggleSentiment sets the sentiment facet, or clears it when label is
// already active. Other facets are untouched.
func (e *Engine) ToggleSentiment(label catalog.Sentiment) {
	if e.state.Sentiment == label {
		e.state.Sentiment = ""
	} else {
		e.state.Sentiment = label
	}
	e.notify()
}

// ToggleTopic sets the topic facet, or clears it when topic is already
// active. Selecting a new topic resets every other facet: topics are
// exclusive with the rest of the panel.
func (e *Engine) ToggleTopic(topic string) {
	if e.state.Topic == topic {
		e.state.Topic = ""
		e.notify()
		return
	}
	e.state = State{Topic: topic}
	e.notify()
}

// ToggleBucket sets the rating-bucket facet, or clears it when bucket is
// already active. At most one bucket is active at a time. Out-of-range
// buckets are rejected as a no-op, without notification.
func (e *Engine) ToggleBucket(bucket int) {
	if !rating.ValidBucket(bucket) {
		return
	}
	if e.state.Bucket == bucket {
		e.state.Bucket = 0
	} else {
		e.state.Bucket = bucket
	}
	e.notify()
}

// SetBrand assigns the brand facet directly. Empty string clears it.
func (e *Engine) SetBrand(brand string) {
	e.state.Brand = brand
	e.notify()
}

// SetSearch assigns the search facet directly. Empty string clears it.
// Any non-empty query is applied as-is, regardless of length; minimum-length
// debouncing belongs to the input layer, not the engine.
func (e *Engine) SetSearch(query string) {
	e.state.Search = query
	e.notify()
}

// ClearAll resets every facet.
func (e *Engine) ClearAll() {
	e.state = State{}
	e.notify()
}

// Matches evaluates one product against the active facet set. Facets compose
// conjunctively; an unset facet imposes no constraint.
func (e *Engine) Matches(p catalog.Product) bool {
	s := e.state

	if s.Sentiment != "" && p.Sentiment != s.Sentiment {
		return false
	}
	if s.Brand != "" && !strings.EqualFold(s.Brand, BrandAll) && p.Brand != s.Brand {
		return false
	}
	if s.Topic != "" && !p.HasTopic(s.Topic) {
		return false
	}
	if s.Search != "" && !strings.Contains(p.SearchText(), strings.ToLower(s.Search)) {
		return false
	}
	if s.Bucket != 0 && !rating.InBucket(p.Rating, s.Bucket) {
		return false
	}
	return true
}
