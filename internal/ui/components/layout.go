package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadRight pads s with spaces to the given cell width.
func PadRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// PadLeft pads s on the left to the given cell width.
func PadLeft(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

// CenterText centers s within the given cell width.
func CenterText(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Truncate shortens plain text to width cells, marking the cut with "…".
// Style the result afterwards; escape sequences are not understood.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// JoinHorizontal joins blocks of lines side by side with a gap.
func JoinHorizontal(blocks [][]string, gap int) []string {
	maxH := 0
	widths := make([]int, len(blocks))
	for i, b := range blocks {
		maxH = max(maxH, len(b))
		for _, line := range b {
			widths[i] = max(widths[i], lipgloss.Width(line))
		}
	}
	spacer := strings.Repeat(" ", gap)
	result := make([]string, 0, maxH)
	for row := 0; row < maxH; row++ {
		var sb strings.Builder
		for i, b := range blocks {
			if i > 0 {
				sb.WriteString(spacer)
			}
			if row < len(b) {
				sb.WriteString(PadRight(b[row], widths[i]))
			} else {
				sb.WriteString(strings.Repeat(" ", widths[i]))
			}
		}
		result = append(result, sb.String())
	}
	return result
}
