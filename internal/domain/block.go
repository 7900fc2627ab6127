package domain

import "time"

const BlockDuration = 5 * time.Hour

// BillingWindow is one fixed-length accounting span. ID is the start time.
type BillingWindow struct {
	ID               string    `json:"id" yaml:"id"`
	StartTime        time.Time `json:"startTime" yaml:"startTime"`
	EndTime          time.Time `json:"endTime" yaml:"endTime"`
	TotalTokens      int64     `json:"totalTokens" yaml:"totalTokens"`
	CostUSD          float64   `json:"costUsd" yaml:"costUsd"`
	MessageCount     int       `json:"messageCount" yaml:"messageCount"`
	RemainingMinutes int64     `json:"remainingMinutes" yaml:"remainingMinutes"`
	IsActive         bool      `json:"isActive" yaml:"isActive"`
}

// BuildBillingWindows partitions records into consecutive 5-hour windows in
// a single forward scan. Records must already be in ascending time order.
// A window opens at the first record's own timestamp; later records join it
// while ts <= start+5h. Records with an unparseable timestamp are skipped.
func BuildBillingWindows(records []UsageRecord, pricer Pricer, now time.Time) []BillingWindow {
	if len(records) == 0 {
		return nil
	}

	var windows []BillingWindow
	var current *BillingWindow

	for _, r := range records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		if current != nil && ts.Sub(current.StartTime) > BlockDuration {
			windows = append(windows, current.close(now))
			current = nil
		}
		if current == nil {
			current = &BillingWindow{
				StartTime: ts,
				EndTime:   ts.Add(BlockDuration),
			}
		}
		if r.Message.Usage != nil {
			current.TotalTokens += r.Message.Usage.Total()
		}
		current.CostUSD += pricer.Cost(r)
		current.MessageCount++
	}

	if current != nil {
		windows = append(windows, current.close(now))
	}
	return windows
}

func (w *BillingWindow) close(now time.Time) BillingWindow {
	out := *w
	out.ID = out.StartTime.Format(time.RFC3339)
	out.RemainingMinutes = int64(out.EndTime.Sub(now) / time.Minute)
	if out.RemainingMinutes < 0 {
		out.RemainingMinutes = 0
	}
	out.IsActive = !now.Before(out.StartTime) && now.Before(out.EndTime)
	return out
}
