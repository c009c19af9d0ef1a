package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

// renderBreakdownBar draws one sentiment row of the distribution, e.g.
// "positive ████████░░ 80% (124)".
func renderBreakdownBar(label catalog.Sentiment, c catalog.SentimentCount, width int) string {
	barWidth := width - 30
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(c.Percentage / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%-8s %s %3.0f%% (%d)",
		label,
		sentimentStyle(string(label)).Render(bar),
		c.Percentage,
		c.Count,
	)
}

func renderBreakdown(b catalog.Breakdown, width int) string {
	var lines []string
	for _, label := range catalog.Labels() {
		lines = append(lines, renderBreakdownBar(label, b.Counts[label], width))
	}
	lines = append(lines, itemMetaStyle.Render(fmt.Sprintf("%d reviews total", b.TotalReviews)))
	return strings.Join(lines, "\n")
}

// renderPreview is the right-hand pane in browse mode: a summary of the
// selected product from the already-loaded snapshot, no extra fetch.
func renderPreview(p *catalog.Product, width, height, scroll int) string {
	if p == nil {
		return lipglossCenter("Select a product", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(p.Name)
	brand := previewBrandStyle.Render(
		p.Brand + " · " + starStyle.Render(renderStars(p.Rating)) + fmt.Sprintf(" %.1f", p.Rating),
	)

	sections := []string{title, brand}

	if p.Breakdown.TotalReviews > 0 {
		sections = append(sections, "", renderBreakdown(p.Breakdown, contentWidth))
	} else {
		sections = append(sections, "",
			sentimentStyle(string(p.Sentiment)).Render(string(p.Sentiment))+
				itemMetaStyle.Render(fmt.Sprintf(" · %d reviews", p.ReviewCount)))
	}

	if len(p.Topics) > 0 {
		sections = append(sections, "", previewBodyStyle.Width(contentWidth).Render(
			"Topics: "+strings.Join(p.Topics, ", ")))
	}

	if p.Description != "" {
		sections = append(sections, "", previewBodyStyle.Width(contentWidth).Render(
			wrapText(p.Description, contentWidth)))
	}

	sections = append(sections, previewDimStyle.Render("enter for reviews"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return clipToHeight(content, height, scroll)
}

// renderDetail is the full-screen record: breakdown, modeled topics with
// mention counts, and the review texts themselves.
func renderDetail(d *api.Detail, width, height, scroll int) string {
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	title := previewTitleStyle.Width(contentWidth).Render(d.Product.Name)
	brand := previewBrandStyle.Render(
		d.Product.Brand + " · " + starStyle.Render(renderStars(d.StarRating)) + fmt.Sprintf(" %.1f", d.StarRating),
	)

	sections := []string{title, brand, "", renderBreakdown(d.Breakdown, contentWidth)}

	if len(d.Topics) > 0 {
		var topics []string
		for _, t := range d.Topics {
			topics = append(topics, fmt.Sprintf("  %s %s",
				previewBodyStyle.Render(t.Label),
				itemMetaStyle.Render(fmt.Sprintf("(%d mentions)", t.ReviewMentions))))
		}
		sections = append(sections, "", helpDimStyle.Render("Topics"), strings.Join(topics, "\n"))
	}

	if len(d.Reviews) > 0 {
		var reviews []string
		for _, r := range d.Reviews {
			head := sentimentStyle(r.SentimentLabel).Render(r.SentimentLabel) +
				itemMetaStyle.Render(fmt.Sprintf(" %.2f", r.SentimentScore))
			body := previewBodyStyle.Width(contentWidth).Render(wrapText(r.Text, contentWidth))
			reviews = append(reviews, head+"\n"+body)
		}
		sections = append(sections, "", helpDimStyle.Render("Reviews"), strings.Join(reviews, "\n\n"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return clipToHeight(content, height, scroll)
}

// clipToHeight applies the scroll offset and pads or trims to the pane height.
func clipToHeight(content string, height, scroll int) string {
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
