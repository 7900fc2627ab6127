package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

// Package-level cached styles for row/cursor rendering.
var (
	rowEvenStyle     = lipgloss.NewStyle()
	rowOddStyle      = lipgloss.NewStyle().Background(theme.ColorElevatedBg)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(theme.ColorLavender).Bold(true)
	cursorStyle      = lipgloss.NewStyle().Foreground(theme.ColorGold)
	cursorActive     = cursorStyle.Render("▶ ")
	cursorBlank      = "  "
)

// RowBackground returns a subtle background style for alternating rows.
// Even rows (0, 2, 4...) get no background, odd rows get ElevatedBg.
func RowBackground(index int) lipgloss.Style {
	if index%2 == 1 {
		return rowOddStyle
	}
	return rowEvenStyle
}

// CursorIndicator returns "▶ " in Gold if selected, "  " otherwise.
func CursorIndicator(selected bool) string {
	if selected {
		return cursorActive
	}
	return cursorBlank
}

// Column describes one table column. Numeric columns are right-aligned.
type Column struct {
	Title   string
	Width   int
	Numeric bool
}

// Table renders plain-text cells into fixed-width columns. Cells wider
// than their column are truncated.
type Table struct {
	Columns []Column
	Rows    [][]string
	Cursor  int // -1 disables the cursor column
	Offset  int // first visible row
	Height  int // visible rows, 0 = all
}

func (t Table) Render() string {
	lines := []string{t.cursorPad(false) + tableHeaderStyle.Render(t.formatRow(t.titles()))}

	end := len(t.Rows)
	if t.Height > 0 {
		end = min(end, t.Offset+t.Height)
	}
	for i := t.Offset; i < end; i++ {
		row := RowBackground(i).Render(t.formatRow(t.Rows[i]))
		lines = append(lines, t.cursorPad(i == t.Cursor)+row)
	}
	return strings.Join(lines, "\n")
}

func (t Table) titles() []string {
	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	return titles
}

func (t Table) cursorPad(selected bool) string {
	if t.Cursor < 0 {
		return ""
	}
	return CursorIndicator(selected)
}

func (t Table) formatRow(cells []string) string {
	parts := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		var cell string
		if i < len(cells) {
			cell = Truncate(cells[i], c.Width)
		}
		if c.Numeric {
			parts[i] = PadLeft(cell, c.Width)
		} else {
			parts[i] = PadRight(cell, c.Width)
		}
	}
	return strings.Join(parts, "  ")
}
