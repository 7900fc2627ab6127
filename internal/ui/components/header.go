package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/i18n"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

var (
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(theme.ColorGold).
			Background(theme.ColorElevatedBg).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(theme.ColorMutedText).
				Padding(0, 1)
)

// TabBar is the dashboard's top line: numbered views on the left, then on
// the right whether the log directories are being watched and when the
// numbers were last refreshed.
type TabBar struct {
	ViewNames   []string
	ActiveIndex int
	Width       int
	Watching    bool
	Updated     string // plain text, e.g. "Updated 14:02:11"
}

// Status returns the right-hand text, styled.
func (tb TabBar) Status() string {
	label := "not_watching"
	if tb.Watching {
		label = "watching"
	}
	live := theme.WindowStatusStyle(tb.Watching).Render(i18n.T(label))
	if tb.Updated == "" {
		return live
	}
	return live + "  " + theme.MutedStyle.Render(tb.Updated)
}

// Render returns the tab line and a separator below it.
func (tb TabBar) Render() string {
	tabs := make([]string, len(tb.ViewNames))
	for i, name := range tb.ViewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == tb.ActiveIndex {
			tabs[i] = tabActiveStyle.Render(label)
		} else {
			tabs[i] = tabInactiveStyle.Render(label)
		}
	}
	line := strings.Join(tabs, "")

	// The status is dropped rather than wrapped on narrow terminals.
	status := tb.Status()
	if gap := tb.Width - 2 - lipgloss.Width(line) - lipgloss.Width(status); gap > 0 {
		line += strings.Repeat(" ", gap) + status
	}

	tabLine := lipgloss.NewStyle().Width(tb.Width).Padding(0, 1).Render(line)
	return tabLine + "\n" + theme.MutedStyle.Render(strings.Repeat("─", tb.Width))
}
