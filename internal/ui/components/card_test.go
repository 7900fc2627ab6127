package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

func TestCard_InnerWidth(t *testing.T) {
	c := Card{Width: 80}
	if got := c.InnerWidth(); got != 76 {
		t.Errorf("InnerWidth() = %d, want 76", got)
	}
	c.Compact = true
	if got := c.InnerWidth(); got != 78 {
		t.Errorf("Compact InnerWidth() = %d, want 78", got)
	}
}

func TestCard_RenderFull_ContainsBorders(t *testing.T) {
	c := Card{
		Title:   "Test Title",
		Width:   40,
		Content: "Hello World",
	}
	out := c.Render()
	if !strings.Contains(out, "╭") {
		t.Error("expected top-left corner")
	}
	if !strings.Contains(out, "╯") {
		t.Error("expected bottom-right corner")
	}
	if !strings.Contains(out, "Test Title") {
		t.Error("expected title in output")
	}
	if !strings.Contains(out, "Hello World") {
		t.Error("expected content in output")
	}
}

func TestCard_RenderFull_WidthConsistent(t *testing.T) {
	c := Card{
		Title:   "Title",
		Width:   50,
		Content: "Line 1\nLine 2",
	}
	out := c.Render()
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w != 50 {
			t.Errorf("line %d width = %d, want 50: %q", i, w, line)
		}
	}
}

func TestCard_RenderCompact_NoBorders(t *testing.T) {
	c := Card{
		Title:   "Test",
		Width:   40,
		Content: "Content",
		Compact: true,
	}
	out := c.Render()
	if strings.Contains(out, "╭") {
		t.Error("compact mode should not have border corners")
	}
	if !strings.Contains(out, "─") {
		t.Error("compact mode should have separator")
	}
	if !strings.Contains(out, "Content") {
		t.Error("expected content in output")
	}
}

func TestCard_EmptyContent(t *testing.T) {
	c := Card{Title: "Empty", Width: 30, Content: ""}
	out := c.Render()
	if !strings.Contains(out, "╭") {
		t.Error("should still render borders with empty content")
	}
}

func TestCard_Badge(t *testing.T) {
	c := Card{Title: "Sessions", Badge: "12", Width: 40, Content: "row"}
	lines := strings.Split(c.Render(), "\n")
	if !strings.Contains(lines[0], " 12 ─╮") {
		t.Errorf("badge not at the right of the top border: %q", lines[0])
	}
	if w := lipgloss.Width(lines[0]); w != 40 {
		t.Errorf("top line width = %d, want 40", w)
	}

	narrow := Card{Title: "A very long title", Badge: "badge", Width: 20}
	if strings.Contains(narrow.Render(), "badge") {
		t.Error("badge should be dropped when it does not fit")
	}
}

func TestCard_BadgeStyleKeepsWidth(t *testing.T) {
	live := Card{
		Title:      "Windows",
		Badge:      "● 3 windows",
		BadgeStyle: theme.WindowStatusStyle(true),
		Width:      40,
		Content:    "row",
	}
	lines := strings.Split(live.Render(), "\n")
	if !strings.Contains(lines[0], "● 3 windows") {
		t.Errorf("styled badge missing: %q", lines[0])
	}
	if w := lipgloss.Width(lines[0]); w != 40 {
		t.Errorf("top line width = %d, want 40", w)
	}
}

func TestCard_CompactShowsBadge(t *testing.T) {
	c := Card{Title: "Sessions", Badge: "4 sessions", Width: 40, Compact: true}
	first := strings.Split(c.Render(), "\n")[0]
	if !strings.Contains(first, "Sessions") || !strings.Contains(first, "4 sessions") {
		t.Errorf("compact title line = %q, want title and badge", first)
	}
}
