package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/i18n"
)

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.showHelp {
			if key.Matches(msg, a.keys.Help) || msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}
		return a.handleKey(msg)

	case tickMsg:
		a.notifications.Expire()
		return a, tea.Batch(a.query(), doTick(refreshInterval))

	case changedMsg:
		a.notifications.Push(i18n.T("data_changed"))
		return a, tea.Batch(a.query(), waitForChange(a.changes))

	case snapshotMsg:
		// Drop results for a range the user already moved away from.
		if msg.rng != a.rng {
			return a, nil
		}
		a.snap = &msg
		a.sessionCursor = min(a.sessionCursor, max(len(msg.sessions)-1, 0))
		return a, nil
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	case key.Matches(msg, a.keys.Usage):
		a.activeView = ViewUsage
	case key.Matches(msg, a.keys.Windows):
		a.activeView = ViewWindows
	case key.Matches(msg, a.keys.Sessions):
		a.activeView = ViewSessions
	case key.Matches(msg, a.keys.NextTab):
		a.activeView = (a.activeView + 1) % ViewCount
	case key.Matches(msg, a.keys.PrevTab):
		a.activeView = (a.activeView + ViewCount - 1) % ViewCount
	case key.Matches(msg, a.keys.Range):
		a.rng = nextRange(a.rng)
		return a, a.query()
	case key.Matches(msg, a.keys.Refresh):
		return a, a.query()
	case key.Matches(msg, a.keys.Up):
		if a.activeView == ViewSessions && a.sessionCursor > 0 {
			a.sessionCursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.activeView == ViewSessions && a.snap != nil && a.sessionCursor < len(a.snap.sessions)-1 {
			a.sessionCursor++
		}
	}
	return a, nil
}

func nextRange(tr domain.TimeRange) domain.TimeRange {
	i := slices.Index(domain.ValidTimeRanges, tr)
	return domain.ValidTimeRanges[(i+1)%len(domain.ValidTimeRanges)]
}
