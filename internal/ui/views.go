package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/i18n"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
	"github.com/mikec-git/claude-usage-menubar/internal/ui/components"
	"github.com/samber/lo"
)

func rangeLabel(tr domain.TimeRange) string {
	return i18n.T("range_" + string(tr))
}

func (a App) renderUsage() string {
	u := a.snap.usage
	cardW := (a.width - 8) / 5
	total := u.TotalTokens.Total()
	share := func(label string, n int64) components.StatCard {
		return components.StatCard{Value: components.FormatCompact(n), Label: i18n.T(label), Width: cardW, Part: n, Whole: total}
	}
	stats := components.RenderStatRow([]components.StatCard{
		{Value: components.FormatCost(u.TotalCostUSD), Label: i18n.T("cost"), Width: cardW, Style: theme.CostStyle},
		{Value: components.FormatCompact(total), Label: i18n.T("tokens"), Width: cardW},
		share("input", u.TotalTokens.InputTokens),
		share("output", u.TotalTokens.OutputTokens),
		share("cache_read", u.TotalTokens.CacheReadInputTokens),
	}, 2)

	title := theme.UsageTitle.Render(rangeLabel(a.snap.rng))

	var body string
	if len(u.ModelBreakdown) == 0 {
		body = theme.MutedStyle.Render(i18n.T("no_data"))
	} else {
		rows := make([][]string, 0, len(u.ModelBreakdown))
		for _, m := range u.ModelBreakdown {
			rows = append(rows, []string{
				m.Model,
				components.FormatNumber(m.InputTokens),
				components.FormatNumber(m.OutputTokens),
				components.FormatNumber(m.CacheCreationInputTokens),
				components.FormatNumber(m.CacheReadInputTokens),
				components.FormatCost(m.CostUSD),
			})
		}
		body = theme.HeaderStyle.Render(i18n.T("models_header")) + "\n\n" + components.Table{
			Columns: []components.Column{
				{Title: i18n.T("model"), Width: 28},
				{Title: i18n.T("input"), Width: 11, Numeric: true},
				{Title: i18n.T("output"), Width: 11, Numeric: true},
				{Title: i18n.T("cache_create"), Width: 12, Numeric: true},
				{Title: i18n.T("cache_read"), Width: 13, Numeric: true},
				{Title: i18n.T("cost"), Width: 10, Numeric: true},
			},
			Rows:   rows,
			Cursor: -1,
		}.Render()
	}

	return components.Card{
		Title:   title,
		Badge:   i18n.Tf("n_models", len(u.ModelBreakdown)),
		Width:   a.width,
		Content: stats + "\n\n" + body,
	}.Render()
}

func (a App) renderWindows() string {
	windows := a.snap.windows
	title := theme.WindowsTitle.Render(i18n.T("tab_windows"))
	if len(windows) == 0 {
		return components.Card{Title: title, Width: a.width, Content: theme.MutedStyle.Render(i18n.T("no_windows"))}.Render()
	}

	var sections []string
	for _, w := range windows {
		if !w.IsActive {
			continue
		}
		elapsed := domain.BlockDuration - time.Duration(w.RemainingMinutes)*time.Minute
		bar := components.ProgressBar{
			Percent: float64(elapsed) / float64(domain.BlockDuration),
			Width:   a.width - 30,
		}
		sections = append(sections, fmt.Sprintf("%s  %s  %s",
			theme.WindowStatusStyle(true).Render("●"),
			bar.Render(),
			theme.BodyStyle.Render(components.FormatDuration(time.Duration(w.RemainingMinutes)*time.Minute)+" "+i18n.T("remaining"))))
	}

	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		status := ""
		if w.IsActive {
			status = i18n.T("active")
		}
		rows = append(rows, []string{
			w.StartTime.In(a.tz).Format("15:04") + " - " + w.EndTime.In(a.tz).Format("15:04"),
			fmt.Sprint(w.MessageCount),
			components.FormatNumber(w.TotalTokens),
			components.FormatCost(w.CostUSD),
			status,
		})
	}
	sections = append(sections, components.Table{
		Columns: []components.Column{
			{Title: i18n.T("window"), Width: 14},
			{Title: i18n.T("messages"), Width: 9, Numeric: true},
			{Title: i18n.T("tokens"), Width: 14, Numeric: true},
			{Title: i18n.T("cost"), Width: 10, Numeric: true},
			{Title: "", Width: 8},
		},
		Rows:   rows,
		Cursor: -1,
	}.Render())

	return components.Card{
		Title:      title,
		Badge:      windowsBadge(windows),
		BadgeStyle: theme.WindowStatusStyle(hasActive(windows)),
		Width:      a.width,
		Content:    strings.Join(sections, "\n\n"),
	}.Render()
}

func (a App) renderSessions(height int) string {
	sessions := a.snap.sessions
	title := theme.SessionsTitle.Render(i18n.T("tab_sessions"))
	if len(sessions) == 0 {
		return components.Card{Title: title, Width: a.width, Content: theme.MutedStyle.Render(i18n.T("no_sessions"))}.Render()
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			shortProject(s.ProjectPath),
			shortID(s.SessionID),
			fmt.Sprint(s.MessageCount),
			components.FormatCost(s.TotalCostUSD),
			clockTime(s.EndTime, a.tz),
			strings.Join(s.Models, ", "),
		})
	}

	// Card border, header row and padding take 3 lines.
	visible := max(height-3, 1)
	offset := max(a.sessionCursor-visible+1, 0)
	return components.Card{
		Title:      title,
		Badge:      sessionsBadge(sessions),
		BadgeStyle: theme.CostStyle,
		Width:      a.width,
		Content: components.Table{
			Columns: []components.Column{
				{Title: i18n.T("project"), Width: 22},
				{Title: i18n.T("session"), Width: 8},
				{Title: i18n.T("messages"), Width: 9, Numeric: true},
				{Title: i18n.T("cost"), Width: 9, Numeric: true},
				{Title: "", Width: 5},
				{Title: i18n.T("models"), Width: max(a.width-76, 10)},
			},
			Rows:   rows,
			Cursor: a.sessionCursor,
			Offset: offset,
			Height: visible,
		}.Render(),
	}.Render()
}

func hasActive(windows []domain.BillingWindow) bool {
	return lo.SomeBy(windows, func(w domain.BillingWindow) bool { return w.IsActive })
}

// windowsBadge leads with a live marker while a window is still open.
func windowsBadge(windows []domain.BillingWindow) string {
	if hasActive(windows) {
		return i18n.Tf("n_windows_live", len(windows))
	}
	return i18n.Tf("n_windows", len(windows))
}

func sessionsBadge(sessions []domain.SessionSummary) string {
	cost := lo.SumBy(sessions, func(s domain.SessionSummary) float64 { return s.TotalCostUSD })
	return i18n.Tf("n_sessions_cost", len(sessions), components.FormatCost(cost))
}

// shortProject keeps the last two path elements.
func shortProject(p string) string {
	if p == domain.UnknownKey {
		return p
	}
	return filepath.Join(filepath.Base(filepath.Dir(p)), filepath.Base(p))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func clockTime(ts string, tz *time.Location) string {
	t, err := domain.ParseTimestamp(ts)
	if err != nil {
		return ""
	}
	return t.In(tz).Format("15:04")
}
