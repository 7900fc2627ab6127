package domain

import "time"

// flatPricer charges one dollar per record unless a precomputed cost exists.
var flatPricer = PricerFunc(func(r UsageRecord) float64 {
	if r.CostUSD != nil {
		return *r.CostUSD
	}
	return 1.0
})

func rec(ts time.Time, session, model string, in, out int64) UsageRecord {
	return NewUsageRecord(ts.Format(time.RFC3339Nano), session, "/work/"+session,
		Message{Role: "assistant", Model: model, Usage: &TokenUsage{InputTokens: in, OutputTokens: out}}, nil)
}
