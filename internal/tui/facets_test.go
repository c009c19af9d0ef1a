package tui

import (
	"testing"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
	"github.com/burnlikeash/SentimentScope/internal/filter"
)

func TestFacetBarToggleSentiment(t *testing.T) {
	engine := filter.New()
	bar := newFacetBar(engine)

	bar.row = rowSentiment
	bar.cursor = 0 // positive
	bar.toggleCurrent()
	if got := engine.State().Sentiment; got != catalog.Positive {
		t.Errorf("sentiment = %q, want positive", got)
	}

	// Second toggle clears it.
	bar.toggleCurrent()
	if got := engine.State().Sentiment; got != "" {
		t.Errorf("sentiment after re-toggle = %q, want cleared", got)
	}
}

func TestFacetBarToggleBucket(t *testing.T) {
	engine := filter.New()
	bar := newFacetBar(engine)

	bar.row = rowBucket
	bar.cursor = 3 // bucket 4
	bar.toggleCurrent()
	if got := engine.State().Bucket; got != 4 {
		t.Errorf("bucket = %d, want 4", got)
	}
}

func TestFacetBarTopicClearsOtherFacets(t *testing.T) {
	engine := filter.New()
	bar := newFacetBar(engine)
	bar.setTopics([]string{"battery life", "camera quality"})

	engine.ToggleSentiment(catalog.Negative)
	engine.ToggleBucket(2)

	bar.row = rowTopic
	bar.cursor = 1
	bar.toggleCurrent()

	s := engine.State()
	if s.Topic != "camera quality" {
		t.Fatalf("topic = %q, want camera quality", s.Topic)
	}
	if s.Sentiment != "" || s.Bucket != 0 {
		t.Errorf("topic selection must clear other facets, got %+v", s)
	}
}

func TestFacetBarActiveLabel(t *testing.T) {
	engine := filter.New()
	bar := newFacetBar(engine)

	if got := bar.activeLabel(); got != "All" {
		t.Errorf("empty state label = %q, want All", got)
	}

	engine.ToggleSentiment(catalog.Positive)
	engine.ToggleBucket(5)
	if got := bar.activeLabel(); got != "positive · ★★★★★" {
		t.Errorf("label = %q", got)
	}
}

func TestFacetBarRowNavigation(t *testing.T) {
	engine := filter.New()
	bar := newFacetBar(engine)
	bar.setTopics([]string{"battery life"})

	bar.moveLeft() // at 0, stays
	if bar.cursor != 0 {
		t.Errorf("cursor = %d after moveLeft at origin", bar.cursor)
	}

	bar.moveRight()
	if bar.cursor != 1 {
		t.Errorf("cursor = %d after moveRight, want 1", bar.cursor)
	}

	bar.nextRow()
	if bar.row != rowBucket || bar.cursor != 0 {
		t.Errorf("nextRow: row=%d cursor=%d, want bucket row with reset cursor", bar.row, bar.cursor)
	}

	bar.nextRow()
	if bar.row != rowTopic {
		t.Errorf("nextRow: row=%d, want topic row", bar.row)
	}

	// Topic row with no chips gets skipped back to sentiments.
	bar.setTopics(nil)
	bar.row = rowBucket
	bar.nextRow()
	if bar.row != rowSentiment {
		t.Errorf("nextRow with no topics: row=%d, want sentiment row", bar.row)
	}
}
