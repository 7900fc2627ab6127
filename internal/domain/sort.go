package domain

import "sort"

// SortByTime orders records by parsed timestamp, ascending. Records with an
// unparseable timestamp keep their relative order and sort last. The input
// slice is not modified.
func SortByTime(records []UsageRecord) []UsageRecord {
	out := make([]UsageRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := out[i].Time()
		tj, okJ := out[j].Time()
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}
