package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

// Card frames a view: a rounded box with the title on the top-left border
// and a status badge (counts, live marker) on the top-right.
type Card struct {
	Title      string         // pre-styled
	Badge      string         // plain text
	BadgeStyle lipgloss.Style // defaults to muted
	Width      int            // total outer width
	Content    string         // pre-rendered lines
	Compact    bool           // title and separator only, no border
}

func (c Card) badge() string {
	style := c.BadgeStyle
	if style.GetForeground() == (lipgloss.NoColor{}) {
		style = theme.MutedStyle
	}
	return style.Render(" " + c.Badge + " ")
}

// InnerWidth returns the usable content width inside the card.
func (c Card) InnerWidth() int {
	if c.Compact {
		return c.Width - 2 // compact: just indentation, no border
	}
	return c.Width - 4 // 2 border chars + 2 padding spaces
}

// Render returns the styled card string.
func (c Card) Render() string {
	if c.Compact {
		return c.renderCompact()
	}
	return c.renderFull()
}

func (c Card) renderCompact() string {
	sepWidth := c.Width - 4
	if sepWidth < 1 {
		sepWidth = 1
	}
	sep := theme.MutedStyle.Render("  " + strings.Repeat("─", sepWidth))

	title := c.Title
	if c.Badge != "" {
		title += " " + c.badge()
	}
	if c.Content == "" {
		return title + "\n" + sep
	}
	return title + "\n" + sep + "\n" + c.Content
}

func (c Card) renderFull() string {
	bs := lipgloss.NewStyle().Foreground(theme.ColorBorder)
	innerWidth := c.Width - 2

	// Top border: ╭─ Title ────────╮
	titlePart := ""
	titleVisualWidth := 0
	if c.Title != "" {
		titlePart = " " + c.Title + " "
		titleVisualWidth = lipgloss.Width(titlePart)
	}
	badgePart := ""
	if c.Badge != "" {
		badgePart = c.badge()
	}
	dashes := innerWidth - 1 - titleVisualWidth - lipgloss.Width(badgePart) - 1
	if dashes < 0 {
		// Labels wider than the card: drop the badge, keep the title.
		badgePart = ""
		dashes = max(innerWidth-1-titleVisualWidth, 0)
	} else if badgePart != "" {
		badgePart += bs.Render("─")
	} else {
		dashes++
	}
	topLine := bs.Render("╭─") + titlePart + bs.Render(strings.Repeat("─", dashes)) + badgePart + bs.Render("╮")

	// Body: │ content...          │
	contentWidth := innerWidth - 2
	contentLines := strings.Split(c.Content, "\n")
	var bodyLines []string
	for _, line := range contentLines {
		w := lipgloss.Width(line)
		pad := contentWidth - w
		if pad < 0 {
			pad = 0
		}
		bodyLines = append(bodyLines,
			bs.Render("│")+" "+line+strings.Repeat(" ", pad)+" "+bs.Render("│"))
	}

	// Bottom border: ╰──────────────╯
	bottomLine := bs.Render("╰" + strings.Repeat("─", innerWidth) + "╯")

	return topLine + "\n" + strings.Join(bodyLines, "\n") + "\n" + bottomLine
}
