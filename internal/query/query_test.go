package query

import (
	"testing"
	"time"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/pricing"
)

type staticSource []domain.UsageRecord

func (s staticSource) Entries() []domain.UsageRecord { return s }

func rec(ts time.Time, session, model string, in, out int64) domain.UsageRecord {
	return domain.NewUsageRecord(ts.Format(time.RFC3339), session, "/w",
		domain.Message{Model: model, Usage: &domain.TokenUsage{InputTokens: in, OutputTokens: out}}, nil)
}

func newService(t *testing.T, now time.Time, records ...domain.UsageRecord) *Service {
	t.Helper()
	table, err := pricing.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	calc := pricing.NewCalculator(table, pricing.CostModeAuto)
	return New(staticSource(records), calc, time.UTC, WithClock(func() time.Time { return now }))
}

func TestService_Usage(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, now,
		rec(now.Add(-time.Hour), "s1", "claude-sonnet-4-5", 1000, 500),
		rec(now.AddDate(0, 0, -3), "s2", "claude-sonnet-4-5", 1000, 500),
		rec(now.AddDate(0, -2, 0), "s3", "claude-sonnet-4-5", 1000, 500),
	)

	tests := []struct {
		tr      domain.TimeRange
		wantIn  int64
		wantUSD float64
	}{
		{domain.RangeToday, 1000, 0.0105},
		{domain.RangeWeek, 2000, 0.021},
		{domain.RangeMonth, 2000, 0.021},
		{domain.RangeAll, 3000, 0.0315},
	}
	for _, tt := range tests {
		t.Run(string(tt.tr), func(t *testing.T) {
			got := svc.Usage(tt.tr)
			if got.TotalTokens.InputTokens != tt.wantIn {
				t.Errorf("InputTokens = %d, want %d", got.TotalTokens.InputTokens, tt.wantIn)
			}
			if d := got.TotalCostUSD - tt.wantUSD; d > 1e-9 || d < -1e-9 {
				t.Errorf("TotalCostUSD = %f, want %f", got.TotalCostUSD, tt.wantUSD)
			}
		})
	}
}

func TestService_BillingWindowsSortsInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	// Out of order, as records from several files would be.
	svc := newService(t, now,
		rec(day.Add(14*time.Hour+30*time.Minute), "s", "sonnet", 1, 1),
		rec(day.Add(9*time.Hour), "s", "sonnet", 1, 1),
		rec(day.Add(11*time.Hour), "s", "sonnet", 1, 1),
		rec(day.AddDate(0, 0, -1), "old", "sonnet", 1, 1),
	)

	windows := svc.BillingWindows()
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].MessageCount != 2 || windows[1].MessageCount != 1 {
		t.Errorf("message counts = %d, %d, want 2, 1", windows[0].MessageCount, windows[1].MessageCount)
	}
	if windows[0].IsActive || !windows[1].IsActive {
		t.Errorf("only the second window should be active at 16:00")
	}
	if windows[1].RemainingMinutes != 210 {
		t.Errorf("RemainingMinutes = %d, want 210", windows[1].RemainingMinutes)
	}
}

func TestService_SessionBreakdown(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	svc := newService(t, now,
		rec(now.Add(-time.Hour), "a", "opus", 1, 1),
		rec(now.Add(-3*time.Hour), "a", "haiku", 1, 1),
		rec(now.Add(-2*time.Hour), "b", "opus", 1, 1),
		rec(now.AddDate(0, 0, -2), "c", "opus", 1, 1),
	)

	sessions := svc.SessionBreakdown()
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2 (today only)", len(sessions))
	}
	if sessions[0].SessionID != "a" {
		t.Errorf("first session = %q, want a", sessions[0].SessionID)
	}
	// Sorted input makes end the true latest timestamp.
	if sessions[0].EndTime != now.Add(-time.Hour).Format(time.RFC3339) {
		t.Errorf("EndTime = %s", sessions[0].EndTime)
	}
	if sessions[0].Models[0] != "haiku" {
		t.Errorf("Models = %v, want haiku first (chronological)", sessions[0].Models)
	}
}

func TestService_Subscribe(t *testing.T) {
	svc := newService(t, time.Now())
	ch, cancel := svc.Subscribe()

	svc.NotifyChanged()
	svc.NotifyChanged() // coalesces with the pending one

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce")
	default:
	}

	cancel()
	svc.NotifyChanged()
	select {
	case <-ch:
		t.Fatal("unsubscribed channel received a signal")
	default:
	}
}
