package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mikec-git/claude-usage-menubar/internal/i18n"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
	"github.com/mikec-git/claude-usage-menubar/internal/ui/components"
)

func (a App) View() string {
	if !a.ready || a.snap == nil {
		return i18n.T("initializing")
	}

	if a.width < 80 || a.height < 24 {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.ColorPeach).Render(
				i18n.T("terminal_too_small")+"\n"+
					i18n.Tf("current_size", a.width, a.height),
			),
		)
	}

	if a.showHelp {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.renderHelp(),
			lipgloss.WithWhitespaceBackground(theme.ColorOverlayBg),
		)
	}

	contentHeight := a.height - 4 // 2 tab + 2 status

	var content string
	switch a.activeView {
	case ViewUsage:
		content = a.renderUsage()
	case ViewWindows:
		content = a.renderWindows()
	case ViewSessions:
		content = a.renderSessions(contentHeight)
	}
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	tabBar := components.TabBar{
		ViewNames:   []string{i18n.T("tab_usage"), i18n.T("tab_windows"), i18n.T("tab_sessions")},
		ActiveIndex: int(a.activeView),
		Width:       a.width,
		Watching:    a.changes != nil,
		Updated:     i18n.Tf("updated_at", a.snap.at.In(a.tz).Format("15:04:05")),
	}.Render()

	if banner := a.notifications.RenderBanner(a.width); banner != "" {
		return tabBar + "\n" + content + "\n" + banner
	}
	status := components.StatusBar{Width: a.width, Hints: a.help.View(a.keys)}.Render()
	return tabBar + "\n" + content + "\n" + status
}

func (a App) renderHelp() string {
	full := a.help
	full.ShowAll = true
	title := theme.HelpTitle.Render(i18n.T("help_title"))
	return components.Card{
		Title:   title,
		Width:   64,
		Content: full.View(a.keys),
	}.Render()
}
