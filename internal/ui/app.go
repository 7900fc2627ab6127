package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/i18n"
	"github.com/mikec-git/claude-usage-menubar/internal/theme"
)

type ViewType int

const (
	ViewUsage ViewType = iota
	ViewWindows
	ViewSessions
	ViewCount // sentinel: number of views
)

// refreshInterval re-runs queries without a file change so that window
// remaining time and active state keep moving.
const refreshInterval = 30 * time.Second

// Querier is the query surface the dashboard renders.
type Querier interface {
	Usage(tr domain.TimeRange) domain.UsageTotals
	BillingWindows() []domain.BillingWindow
	SessionBreakdown() []domain.SessionSummary
}

// tickMsg triggers the periodic re-query.
type tickMsg time.Time

// changedMsg arrives once per "data changed" signal.
type changedMsg struct{}

// snapshotMsg carries the results of one round of queries.
type snapshotMsg struct {
	usage    domain.UsageTotals
	rng      domain.TimeRange
	windows  []domain.BillingWindow
	sessions []domain.SessionSummary
	at       time.Time
}

type App struct {
	activeView ViewType
	showHelp   bool

	svc     Querier
	changes <-chan struct{}
	tz      *time.Location

	rng  domain.TimeRange
	snap *snapshotMsg

	sessionCursor int

	keys          keyMap
	help          help.Model
	notifications *NotificationManager

	width  int
	height int
	ready  bool
}

// NewApp builds the dashboard. changes may be nil when nothing watches
// the data; the periodic refresh still runs.
func NewApp(svc Querier, changes <-chan struct{}, tz *time.Location) App {
	if tz == nil {
		tz = time.Local
	}
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(theme.ColorSkyBlue).Bold(true)
	h.Styles.FullKey = h.Styles.FullKey.Foreground(theme.ColorSkyBlue).Bold(true)
	h.Styles.ShortDesc = theme.MutedStyle
	h.Styles.FullDesc = theme.MutedStyle

	return App{
		activeView:    ViewUsage,
		svc:           svc,
		changes:       changes,
		tz:            tz,
		rng:           domain.RangeToday,
		keys:          keys,
		help:          h,
		notifications: NewNotificationManager(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(i18n.T("app_title")),
		a.query(),
		waitForChange(a.changes),
		doTick(refreshInterval),
	)
}

// query runs every query off the update loop.
func (a App) query() tea.Cmd {
	svc, rng := a.svc, a.rng
	return func() tea.Msg {
		return snapshotMsg{
			usage:    svc.Usage(rng),
			rng:      rng,
			windows:  svc.BillingWindows(),
			sessions: svc.SessionBreakdown(),
			at:       time.Now(),
		}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func doTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
