package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
	"github.com/burnlikeash/SentimentScope/internal/filter"
	"github.com/burnlikeash/SentimentScope/internal/rating"
)

// facetRow identifies which row of the facet bar holds the cursor.
type facetRow int

const (
	rowSentiment facetRow = iota
	rowBucket
	rowTopic
)

// facetBar is the keyboard surface over the filter engine. It renders the
// current facet state and moves a cursor across three rows: sentiment tabs,
// rating buckets, and the diversified topic chips. Toggles go through the
// engine so the exclusivity rules hold no matter which row fired.
type facetBar struct {
	engine *filter.Engine
	topics []string // diversified panel, refreshed by the app

	active bool
	row    facetRow
	cursor int
}

func newFacetBar(engine *filter.Engine) facetBar {
	return facetBar{engine: engine}
}

func (f *facetBar) setTopics(topics []string) {
	f.topics = topics
	if f.row == rowTopic && f.cursor >= len(topics) {
		f.cursor = 0
	}
}

func (f *facetBar) rowLen() int {
	switch f.row {
	case rowSentiment:
		return len(catalog.Labels())
	case rowBucket:
		return rating.BucketCount
	default:
		return len(f.topics)
	}
}

func (f *facetBar) moveLeft() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *facetBar) moveRight() {
	if f.cursor < f.rowLen()-1 {
		f.cursor++
	}
}

func (f *facetBar) nextRow() {
	f.row = (f.row + 1) % 3
	if f.row == rowTopic && len(f.topics) == 0 {
		f.row = rowSentiment
	}
	f.cursor = 0
}

func (f *facetBar) toggleCurrent() {
	switch f.row {
	case rowSentiment:
		labels := catalog.Labels()
		if f.cursor < len(labels) {
			f.engine.ToggleSentiment(labels[f.cursor])
		}
	case rowBucket:
		f.engine.ToggleBucket(f.cursor + 1)
	case rowTopic:
		if f.cursor < len(f.topics) {
			f.engine.ToggleTopic(f.topics[f.cursor])
		}
	}
}

// activeLabel summarizes the facet state for the status bar.
func (f *facetBar) activeLabel() string {
	s := f.engine.State()
	if s.Empty() {
		return "All"
	}
	var parts []string
	if s.Sentiment != "" {
		parts = append(parts, string(s.Sentiment))
	}
	if s.Bucket != 0 {
		parts = append(parts, strings.Repeat("★", s.Bucket))
	}
	if s.Topic != "" {
		parts = append(parts, s.Topic)
	}
	if s.Brand != "" && !strings.EqualFold(s.Brand, filter.BrandAll) {
		parts = append(parts, s.Brand)
	}
	if s.Search != "" {
		parts = append(parts, "\""+s.Search+"\"")
	}
	return strings.Join(parts, " · ")
}

func (f *facetBar) renderRow(row facetRow, width int) string {
	state := f.engine.State()
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	switch row {
	case rowSentiment:
		for i, label := range catalog.Labels() {
			style := tabInactiveStyle
			if state.Sentiment == label {
				style = tabActiveStyle
			}
			text := string(label)
			if f.active && f.row == rowSentiment && i == f.cursor {
				text = "[" + text + "]"
			}
			parts = append(parts, style.Render(text))
		}
	case rowBucket:
		for b := 1; b <= rating.BucketCount; b++ {
			style := tabInactiveStyle
			if state.Bucket == b {
				style = tabActiveStyle
			}
			text := strings.Repeat("★", b)
			if f.active && f.row == rowBucket && b-1 == f.cursor {
				text = "[" + text + "]"
			}
			parts = append(parts, style.Render(text))
		}
	case rowTopic:
		for i, topic := range f.topics {
			style := tabInactiveStyle
			if state.Topic == topic {
				style = tabActiveStyle
			}
			text := topic
			if f.active && f.row == rowTopic && i == f.cursor {
				text = "[" + text + "]"
			}
			parts = append(parts, style.Render(text))
		}
	}

	// Build the row with separators, stopping when we'd exceed width
	var out string
	for i, part := range parts {
		candidate := out
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && out != "" {
			break
		}
		out = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(out)
}

func (f *facetBar) render(width int) string {
	rows := []string{
		f.renderRow(rowSentiment, width),
		f.renderRow(rowBucket, width),
	}
	if len(f.topics) > 0 {
		rows = append(rows, f.renderRow(rowTopic, width))
	}
	return strings.Join(rows, "\n")
}

// height is the number of terminal rows the bar occupies.
func (f *facetBar) height() int {
	if len(f.topics) > 0 {
		return 3
	}
	return 2
}
