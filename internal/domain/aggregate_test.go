package domain

import (
	"testing"
	"time"
)

func TestAggregateUsage(t *testing.T) {
	base := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	cost := 2.5
	withCache := rec(base, "s1", "claude-opus-4-6", 100, 50)
	withCache.Message.Usage.CacheReadInputTokens = i64(1000)
	precomputed := rec(base.Add(time.Minute), "s1", "claude-haiku-4-5", 10, 5)
	precomputed.CostUSD = &cost

	records := []UsageRecord{
		withCache,
		rec(base.Add(time.Hour), "s2", "claude-opus-4-6", 200, 100),
		precomputed,
		rec(base.Add(2*time.Hour), "s2", "", 1, 1),
	}

	before := time.Now()
	got := AggregateUsage(records, flatPricer)

	if got.TotalTokens.InputTokens != 311 {
		t.Errorf("InputTokens = %d, want 311", got.TotalTokens.InputTokens)
	}
	if got.TotalTokens.OutputTokens != 156 {
		t.Errorf("OutputTokens = %d, want 156", got.TotalTokens.OutputTokens)
	}
	if got.TotalTokens.CacheReadInputTokens != 1000 {
		t.Errorf("CacheReadInputTokens = %d, want 1000", got.TotalTokens.CacheReadInputTokens)
	}
	if got.TotalCostUSD != 5.5 { // 1 + 1 + 2.5 + 1
		t.Errorf("TotalCostUSD = %f, want 5.5", got.TotalCostUSD)
	}
	if got.LastUpdated.Before(before) {
		t.Errorf("LastUpdated %v should not precede aggregation start %v", got.LastUpdated, before)
	}

	if len(got.ModelBreakdown) != 3 {
		t.Fatalf("got %d models, want 3", len(got.ModelBreakdown))
	}
	wantOrder := []string{"claude-haiku-4-5", "claude-opus-4-6", UnknownKey}
	for i, m := range got.ModelBreakdown {
		if m.Model != wantOrder[i] {
			t.Errorf("breakdown[%d] = %q, want %q", i, m.Model, wantOrder[i])
		}
	}
}

func TestAggregateUsage_BreakdownSumsToTotal(t *testing.T) {
	base := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
	models := []string{"opus", "sonnet", "haiku", ""}
	var records []UsageRecord
	for i := 0; i < 40; i++ {
		r := rec(base.Add(time.Duration(i)*time.Minute), "s", models[i%len(models)], int64(i*7), int64(i*3))
		r.Message.Usage.CacheCreationInputTokens = i64(int64(i))
		records = append(records, r)
	}

	got := AggregateUsage(records, flatPricer)

	var sum TokenTotals
	var cost float64
	for _, m := range got.ModelBreakdown {
		sum.InputTokens += m.InputTokens
		sum.OutputTokens += m.OutputTokens
		sum.CacheCreationInputTokens += m.CacheCreationInputTokens
		sum.CacheReadInputTokens += m.CacheReadInputTokens
		cost += m.CostUSD
	}
	if sum != got.TotalTokens {
		t.Errorf("breakdown sum %+v != totals %+v", sum, got.TotalTokens)
	}
	if cost != got.TotalCostUSD {
		t.Errorf("breakdown cost %f != total %f", cost, got.TotalCostUSD)
	}
}

func TestAggregateUsage_Empty(t *testing.T) {
	got := AggregateUsage(nil, flatPricer)
	if got.TotalCostUSD != 0 || got.TotalTokens.Total() != 0 {
		t.Errorf("empty aggregation should be zero, got %+v", got)
	}
	if got.ModelBreakdown == nil || len(got.ModelBreakdown) != 0 {
		t.Errorf("ModelBreakdown should be an empty slice, got %v", got.ModelBreakdown)
	}
	if got.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set even for empty input")
	}
}
