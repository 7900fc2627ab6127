package domain

import (
	"fmt"
	"time"
)

// TimeRange selects records by local calendar date.
type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeAll   TimeRange = "all"
)

var ValidTimeRanges = []TimeRange{RangeToday, RangeWeek, RangeMonth, RangeAll}

func ParseTimeRange(s string) (TimeRange, error) {
	for _, r := range ValidTimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown time range %q (use today, week, month or all)", s)
}

// Since returns the first local date included in the range. The zero time
// means unbounded.
func (tr TimeRange) Since(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	y, m, d := local.Date()
	switch tr {
	case RangeToday:
		return time.Date(y, m, d, 0, 0, 0, 0, tz)
	case RangeWeek:
		wy, wm, wd := local.AddDate(0, 0, -7).Date()
		return time.Date(wy, wm, wd, 0, 0, 0, 0, tz)
	case RangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, tz)
	default:
		return time.Time{}
	}
}

// FilterByRange keeps records whose local date falls inside the range.
// "today" is an exact calendar-day match; week and month are lower bounds.
// RangeAll returns the input unchanged, including records whose timestamp
// does not parse; every other range drops such records.
func FilterByRange(records []UsageRecord, tr TimeRange, now time.Time, tz *time.Location) []UsageRecord {
	if tr == RangeAll {
		return records
	}
	since := tr.Since(now, tz)
	todayY, todayM, todayD := now.In(tz).Date()

	filtered := make([]UsageRecord, 0, len(records))
	for _, r := range records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		local := ts.In(tz)
		if tr == RangeToday {
			y, m, d := local.Date()
			if y != todayY || m != todayM || d != todayD {
				continue
			}
		} else if local.Before(since) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
