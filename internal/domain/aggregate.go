package domain

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// TokenTotals sums every token field across a set of records.
type TokenTotals struct {
	InputTokens              int64 `json:"inputTokens" yaml:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens" yaml:"outputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens" yaml:"cacheCreationInputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens" yaml:"cacheReadInputTokens"`
}

// Total returns the sum of all four fields.
func (t TokenTotals) Total() int64 {
	return t.InputTokens + t.OutputTokens + t.CacheCreationInputTokens + t.CacheReadInputTokens
}

func (t *TokenTotals) add(u TokenUsage) {
	t.InputTokens += u.InputTokens
	t.OutputTokens += u.OutputTokens
	t.CacheCreationInputTokens += u.CacheCreation()
	t.CacheReadInputTokens += u.CacheRead()
}

type ModelUsage struct {
	Model       string `json:"model" yaml:"model"`
	TokenTotals `yaml:",inline"`
	CostUSD     float64 `json:"costUsd" yaml:"costUsd"`
}

// UsageTotals is the result of AggregateUsage. LastUpdated is the moment the
// aggregation finished, not a value taken from the records.
type UsageTotals struct {
	TotalCostUSD   float64      `json:"totalCostUsd" yaml:"totalCostUsd"`
	TotalTokens    TokenTotals  `json:"totalTokens" yaml:"totalTokens"`
	ModelBreakdown []ModelUsage `json:"modelBreakdown" yaml:"modelBreakdown"`
	LastUpdated    time.Time    `json:"lastUpdated" yaml:"lastUpdated"`
}

// AggregateUsage folds every record's usage block into grand totals and a
// per-model breakdown. The breakdown is sorted by model id.
func AggregateUsage(records []UsageRecord, pricer Pricer) UsageTotals {
	var totals UsageTotals
	byModel := make(map[string]*ModelUsage)

	for _, r := range records {
		if r.Message.Usage == nil {
			continue
		}
		cost := pricer.Cost(r)
		totals.TotalCostUSD += cost
		totals.TotalTokens.add(*r.Message.Usage)

		key := r.ModelKey()
		mu, ok := byModel[key]
		if !ok {
			mu = &ModelUsage{Model: key}
			byModel[key] = mu
		}
		mu.add(*r.Message.Usage)
		mu.CostUSD += cost
	}

	totals.ModelBreakdown = make([]ModelUsage, 0, len(byModel))
	for _, key := range sortedKeys(byModel) {
		totals.ModelBreakdown = append(totals.ModelBreakdown, *byModel[key])
	}
	totals.LastUpdated = time.Now()
	return totals
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
