package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`███████╗ ██████╗ ██████╗ ██████╗ ███████╗`,
	`██╔════╝██╔════╝██╔═══██╗██╔══██╗██╔════╝`,
	`███████╗██║     ██║   ██║██████╔╝█████╗  `,
	`╚════██║██║     ██║   ██║██╔═══╝ ██╔══╝  `,
	`███████║╚██████╗╚██████╔╝██║     ███████╗`,
	`╚══════╝ ╚═════╝ ╚═════╝ ╚═╝     ╚══════╝`,
}

func renderHomeScreen(width, height int, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	tagStyle := lipgloss.NewStyle().Foreground(colorDim)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string

	lines = append(lines, tagStyle.Render("sentiment"))
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, "")

	// Menu items
	lines = append(lines, "          "+keyStyle.Render("[e]")+"  "+labelStyle.Render("Explore the catalog"))
	lines = append(lines, "          "+keyStyle.Render("[r]")+"  "+labelStyle.Render("Refresh from service"))
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"  "+labelStyle.Render("Quit"))

	// Update notification
	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, "          "+logoStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	// Center horizontally
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
