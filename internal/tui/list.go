package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

// renderStars turns a 1.0..5.0 rating into a five-rune bar, e.g. "★★★★☆".
// The rating is rounded to the nearest whole star.
func renderStars(r float64) string {
	full := int(math.Round(r))
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

func renderListItem(p catalog.Product, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(p.Name, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(p.Name, width-4))
	}

	meta := "  " + itemBrandStyle.Render(p.Brand) +
		" " + starStyle.Render(renderStars(p.Rating)) +
		" " + sentimentStyle(string(p.Sentiment)).Render(string(p.Sentiment)) +
		" " + itemMetaStyle.Render(fmt.Sprintf("· %d reviews", p.ReviewCount))

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(products []catalog.Product, cursor int, height int, width int) string {
	if len(products) == 0 {
		return lipglossCenter("No products match", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(products) {
		end = len(products)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(products[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
