package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(total, page, totalPages int, facetLabel string, width int, searching, refreshing, offline bool) string {
	left := fmt.Sprintf(" %d products · page %d/%d", total, page, totalPages)
	if facetLabel != "All" {
		left += " · " + facetLabel
	}
	if offline {
		left += " · " + lipgloss.NewStyle().Foreground(colorAccent).Render("offline")
	}
	if refreshing {
		left += " (refreshing...)"
	}

	right := " f facets  / search  n/p page  q quit "
	if searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
