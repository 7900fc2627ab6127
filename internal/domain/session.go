package domain

import (
	"slices"
	"sort"
)

// SessionSummary groups the records of one session id.
type SessionSummary struct {
	SessionID    string   `json:"sessionId" yaml:"sessionId"`
	ProjectPath  string   `json:"projectPath" yaml:"projectPath"`
	StartTime    string   `json:"startTime" yaml:"startTime"`
	EndTime      string   `json:"endTime" yaml:"endTime"`
	MessageCount int      `json:"messageCount" yaml:"messageCount"`
	TotalCostUSD float64  `json:"totalCostUsd" yaml:"totalCostUsd"`
	Models       []string `json:"models" yaml:"models"`
}

// BuildSessions groups records by session id. EndTime is overwritten by each
// folded record, so it is the true latest timestamp only for time-ordered
// input. Results are sorted by EndTime descending (string comparison).
func BuildSessions(records []UsageRecord, pricer Pricer) []SessionSummary {
	groups := make(map[string]*SessionSummary)

	for _, r := range records {
		key := r.SessionKey()
		s, ok := groups[key]
		if !ok {
			project := r.CWD
			if project == "" {
				project = UnknownKey
			}
			s = &SessionSummary{
				SessionID:   key,
				ProjectPath: project,
				StartTime:   r.Timestamp,
			}
			groups[key] = s
		}
		s.EndTime = r.Timestamp
		s.MessageCount++
		if r.Message.Usage != nil {
			s.TotalCostUSD += pricer.Cost(r)
		}
		if model := r.ModelKey(); !slices.Contains(s.Models, model) {
			s.Models = append(s.Models, model)
		}
	}

	result := make([]SessionSummary, 0, len(groups))
	for _, s := range groups {
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].EndTime != result[j].EndTime {
			return result[i].EndTime > result[j].EndTime
		}
		return result[i].SessionID < result[j].SessionID
	})
	return result
}
