package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

var barDimStyle = lipgloss.NewStyle().Foreground(theme.ColorBarDim)

// ProgressBar renders a single-line gradient bar.
type ProgressBar struct {
	Percent float64 // clamped to [0, 1]
	Width   int
}

// Filled returns the number of filled cells.
func (p ProgressBar) Filled() int {
	pct := min(max(p.Percent, 0), 1)
	return int(pct * float64(p.Width))
}

func (p ProgressBar) Render() string {
	if p.Width <= 0 {
		return ""
	}
	filled := p.Filled()
	var sb strings.Builder
	for i := 0; i < filled; i++ {
		t := float64(i) / float64(max(p.Width-1, 1))
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.UsageColor(t)).Render("█"))
	}
	sb.WriteString(barDimStyle.Render(strings.Repeat("░", p.Width-filled)))
	return sb.String()
}
