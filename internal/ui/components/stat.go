package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

var (
	statValueStyle = lipgloss.NewStyle().Foreground(theme.ColorBrightText).Bold(true)
	statLabelStyle = lipgloss.NewStyle().Foreground(theme.ColorMutedText)
)

// StatCard is one headline number on the usage view. When Whole is set the
// card also draws Part's share of it, e.g. input tokens out of all tokens.
type StatCard struct {
	Value string
	Label string
	Width int
	Style lipgloss.Style // value style; bright text when unset

	Part, Whole int64
}

// Share returns Part/Whole, or -1 when the card has no whole to compare to.
func (s StatCard) Share() float64 {
	if s.Whole <= 0 {
		return -1
	}
	return min(max(float64(s.Part)/float64(s.Whole), 0), 1)
}

// Render returns the card as lines: value, optional share gauge, label.
func (s StatCard) Render() []string {
	w := max(s.Width, 8)

	style := s.Style
	if style.GetForeground() == (lipgloss.NoColor{}) {
		style = statValueStyle
	}
	lines := []string{CenterText(style.Render(s.Value), w)}

	if share := s.Share(); share >= 0 {
		pct := fmt.Sprintf(" %3.0f%%", share*100)
		bar := ProgressBar{Percent: share, Width: max(w-2-len(pct), 1)}
		lines = append(lines, CenterText(bar.Render()+statLabelStyle.Render(pct), w))
	}
	return append(lines, CenterText(statLabelStyle.Render(s.Label), w))
}

// RenderStatRow lays cards side by side, gap columns apart, with every
// label on the bottom line.
func RenderStatRow(cards []StatCard, gap int) string {
	blocks := make([][]string, len(cards))
	height := 0
	for i, c := range cards {
		blocks[i] = c.Render()
		height = max(height, len(blocks[i]))
	}
	for i, b := range blocks {
		if missing := height - len(b); missing > 0 {
			label := b[len(b)-1]
			b = append(b[:len(b)-1], make([]string, missing)...)
			blocks[i] = append(b, label)
		}
	}
	return strings.Join(JoinHorizontal(blocks, gap), "\n")
}
