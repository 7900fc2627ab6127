package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikec-git/claude-usage-menubar/internal/domain"
)

type fakeQuerier struct {
	ranges []domain.TimeRange
}

func (f *fakeQuerier) Usage(tr domain.TimeRange) domain.UsageTotals {
	f.ranges = append(f.ranges, tr)
	return domain.UsageTotals{
		TotalCostUSD: 1.25,
		TotalTokens:  domain.TokenTotals{InputTokens: 1500, OutputTokens: 500},
		ModelBreakdown: []domain.ModelUsage{
			{Model: "claude-sonnet-4-5", TokenTotals: domain.TokenTotals{InputTokens: 1500, OutputTokens: 500}, CostUSD: 1.25},
		},
	}
}

func (f *fakeQuerier) BillingWindows() []domain.BillingWindow {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return []domain.BillingWindow{{
		StartTime:        start,
		EndTime:          start.Add(domain.BlockDuration),
		MessageCount:     3,
		TotalTokens:      2000,
		CostUSD:          1.25,
		RemainingMinutes: 90,
		IsActive:         true,
	}}
}

func (f *fakeQuerier) SessionBreakdown() []domain.SessionSummary {
	return []domain.SessionSummary{
		{SessionID: "abcdef123456", ProjectPath: "/home/me/proj", EndTime: "2026-03-10T12:00:00Z", MessageCount: 2, Models: []string{"opus"}},
		{SessionID: "s2", ProjectPath: domain.UnknownKey, EndTime: "2026-03-10T11:00:00Z", MessageCount: 1, Models: []string{"haiku"}},
	}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ready returns an app that has a window size and one snapshot.
func ready(t *testing.T, q Querier) App {
	t.Helper()
	a := NewApp(q, nil, time.UTC)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a, _ = update(t, a, a.query()())
	return a
}

func TestApp_InitializingUntilFirstSnapshot(t *testing.T) {
	a := NewApp(&fakeQuerier{}, nil, time.UTC)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(a.View(), "Loading") {
		t.Errorf("expected loading text, got %q", a.View())
	}
}

func TestApp_TerminalTooSmall(t *testing.T) {
	a := ready(t, &fakeQuerier{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(a.View(), "too small") {
		t.Error("expected too-small message")
	}
}

func TestApp_UsageView(t *testing.T) {
	a := ready(t, &fakeQuerier{})
	out := a.View()
	for _, want := range []string{"$1.25", "claude-sonnet-4-5", "1,500", "Today"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage view missing %q", want)
		}
	}
}

func TestApp_SwitchViews(t *testing.T) {
	a := ready(t, &fakeQuerier{})

	a, _ = update(t, a, keyMsg("2"))
	if a.activeView != ViewWindows {
		t.Fatalf("activeView = %d, want windows", a.activeView)
	}
	out := a.View()
	if !strings.Contains(out, "09:00 - 14:00") || !strings.Contains(out, "1h 30m") {
		t.Errorf("windows view missing window row or remaining time:\n%s", out)
	}

	a, _ = update(t, a, keyMsg("tab"))
	if a.activeView != ViewSessions {
		t.Fatalf("activeView = %d, want sessions", a.activeView)
	}
	out = a.View()
	if !strings.Contains(out, "me/proj") || !strings.Contains(out, "abcdef12") {
		t.Errorf("sessions view missing row:\n%s", out)
	}

	a, _ = update(t, a, keyMsg("tab"))
	if a.activeView != ViewUsage {
		t.Errorf("tab should wrap to usage, got %d", a.activeView)
	}
}

func TestApp_SessionCursorClamped(t *testing.T) {
	a := ready(t, &fakeQuerier{})
	a, _ = update(t, a, keyMsg("3"))
	for i := 0; i < 5; i++ {
		a, _ = update(t, a, keyMsg("down"))
	}
	if a.sessionCursor != 1 {
		t.Errorf("sessionCursor = %d, want 1", a.sessionCursor)
	}
}

func TestApp_RangeCycleRequeries(t *testing.T) {
	q := &fakeQuerier{}
	a := ready(t, q)

	a, cmd := update(t, a, keyMsg("t"))
	if a.rng != domain.RangeWeek {
		t.Fatalf("rng = %s, want week", a.rng)
	}
	if cmd == nil {
		t.Fatal("range change should re-query")
	}
	a, _ = update(t, a, cmd())
	if got := q.ranges[len(q.ranges)-1]; got != domain.RangeWeek {
		t.Errorf("queried range = %s, want week", got)
	}
	if !strings.Contains(a.View(), "Last 7 days") {
		t.Error("view should show the new range label")
	}
}

func TestApp_StaleSnapshotDropped(t *testing.T) {
	a := ready(t, &fakeQuerier{})
	stale := a.query()
	a, _ = update(t, a, keyMsg("t"))
	a, _ = update(t, a, stale())
	if a.snap.rng != domain.RangeToday {
		t.Errorf("snapshot range = %s, want the previous snapshot kept", a.snap.rng)
	}
}

func TestApp_ChangeSignal(t *testing.T) {
	ch := make(chan struct{}, 1)
	a := NewApp(&fakeQuerier{}, ch, time.UTC)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})

	ch <- struct{}{}
	msg := waitForChange(ch)()
	if _, ok := msg.(changedMsg); !ok {
		t.Fatalf("waitForChange returned %T, want changedMsg", msg)
	}

	a, cmd := update(t, a, msg)
	if cmd == nil {
		t.Error("change should trigger a re-query")
	}
	if a.notifications.Active() == nil {
		t.Error("change should show a notification")
	}
}

func TestWaitForChange_NilAndClosed(t *testing.T) {
	if waitForChange(nil) != nil {
		t.Error("nil channel should produce no command")
	}
	ch := make(chan struct{})
	close(ch)
	if msg := waitForChange(ch)(); msg != nil {
		t.Errorf("closed channel returned %T, want nil", msg)
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	a := ready(t, &fakeQuerier{})
	a, _ = update(t, a, keyMsg("?"))
	if !a.showHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(a.View(), "Keyboard shortcuts") {
		t.Error("help overlay not rendered")
	}
	a, _ = update(t, a, keyMsg("2"))
	if a.activeView != ViewUsage {
		t.Error("keys other than help/esc should be ignored while help is open")
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.showHelp {
		t.Error("esc should close help")
	}
}

func TestNotificationManager_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	nm := NewNotificationManager()
	nm.now = func() time.Time { return now }

	nm.Push("hello")
	if nm.RenderBanner(40) == "" {
		t.Fatal("expected banner")
	}
	now = now.Add(notificationTTL + time.Second)
	nm.Expire()
	if nm.Active() != nil || nm.RenderBanner(40) != "" {
		t.Error("notification should have expired")
	}
}

func TestNotificationManager_CountsRepeats(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	nm := NewNotificationManager()
	nm.now = func() time.Time { return now }

	nm.Push("Usage data changed")
	now = now.Add(2 * time.Second)
	nm.Push("Usage data changed")
	nm.Push("Usage data changed")
	if n := nm.Active(); n == nil || n.Count != 3 {
		t.Fatalf("Active() = %+v, want count 3", n)
	}
	if got := nm.Active().Text(); got != "Usage data changed (3×)" {
		t.Errorf("Text() = %q", got)
	}

	// The repeat restarted the TTL.
	now = now.Add(2 * time.Second)
	if nm.Active() == nil {
		t.Error("repeat should keep the banner visible")
	}

	nm.Push("other")
	if n := nm.Active(); n.Count != 1 || n.Text() != "other" {
		t.Errorf("new message should reset the count, got %+v", n)
	}

	now = now.Add(notificationTTL + time.Second)
	nm.Push("other")
	if n := nm.Active(); n.Count != 1 {
		t.Errorf("message after expiry should start a new count, got %d", n.Count)
	}
}

func TestApp_RepeatedChangesCoalesceBanner(t *testing.T) {
	a := ready(t, &fakeQuerier{})
	ch := make(chan struct{}, 1)
	a.changes = ch
	for i := 0; i < 2; i++ {
		a, _ = update(t, a, changedMsg{})
	}
	if !strings.Contains(a.View(), "(2×)") {
		t.Errorf("banner should count repeated changes:\n%s", a.View())
	}
}
