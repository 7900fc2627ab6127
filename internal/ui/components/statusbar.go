package components

import (
	"strings"

	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

// StatusBar renders the bottom bar: a separator over pre-rendered key hints.
type StatusBar struct {
	Width int
	Hints string
}

func (s StatusBar) Render() string {
	sep := theme.MutedStyle.Render(strings.Repeat("─", s.Width))
	return sep + "\n  " + s.Hints
}
