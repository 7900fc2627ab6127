package domain

import "time"

// UnknownKey labels records with no model or session id.
const UnknownKey = "unknown"

// TokenUsage is the usage block attached to an assistant message.
// Cache fields are optional in the log format; nil means zero.
type TokenUsage struct {
	InputTokens              int64  `json:"input_tokens"`
	OutputTokens             int64  `json:"output_tokens"`
	CacheCreationInputTokens *int64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *int64 `json:"cache_read_input_tokens,omitempty"`
}

// CacheCreation returns the cache-creation count, treating missing as zero.
func (u TokenUsage) CacheCreation() int64 {
	if u.CacheCreationInputTokens == nil {
		return 0
	}
	return *u.CacheCreationInputTokens
}

// CacheRead returns the cache-read count, treating missing as zero.
func (u TokenUsage) CacheRead() int64 {
	if u.CacheReadInputTokens == nil {
		return 0
	}
	return *u.CacheReadInputTokens
}

// Valid reports whether every token count is non-negative.
func (u TokenUsage) Valid() bool {
	return u.InputTokens >= 0 && u.OutputTokens >= 0 &&
		u.CacheCreation() >= 0 && u.CacheRead() >= 0
}

// Total returns input + output + both cache fields.
func (u TokenUsage) Total() int64 {
	return u.InputTokens + u.OutputTokens + u.CacheCreation() + u.CacheRead()
}

type Message struct {
	Role  string      `json:"role,omitempty"`
	Model string      `json:"model,omitempty"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// UsageRecord is one log line carrying token usage. Records are treated as
// immutable once the parser has produced them.
type UsageRecord struct {
	Timestamp string   `json:"timestamp"`
	SessionID string   `json:"sessionId,omitempty"`
	CWD       string   `json:"cwd,omitempty"`
	Message   Message  `json:"message"`
	CostUSD   *float64 `json:"costUSD,omitempty"`

	at time.Time // parsed Timestamp; zero when unparseable
}

// NewUsageRecord builds a record and parses its timestamp once.
func NewUsageRecord(timestamp, sessionID, cwd string, msg Message, cost *float64) UsageRecord {
	r := UsageRecord{
		Timestamp: timestamp,
		SessionID: sessionID,
		CWD:       cwd,
		Message:   msg,
		CostUSD:   cost,
	}
	r.at, _ = ParseTimestamp(timestamp)
	return r
}

// Time returns the parsed timestamp and whether it was valid.
func (r UsageRecord) Time() (time.Time, bool) {
	if r.at.IsZero() {
		t, err := ParseTimestamp(r.Timestamp)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return r.at, true
}

// ModelKey returns the model id or UnknownKey.
func (r UsageRecord) ModelKey() string {
	if r.Message.Model == "" {
		return UnknownKey
	}
	return r.Message.Model
}

// SessionKey returns the session id or UnknownKey.
func (r UsageRecord) SessionKey() string {
	if r.SessionID == "" {
		return UnknownKey
	}
	return r.SessionID
}

// ParseTimestamp accepts RFC 3339 with or without fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Pricer prices a single record. Aggregation passes depend on this rather
// than on a concrete pricing table.
type Pricer interface {
	Cost(r UsageRecord) float64
}

// PricerFunc adapts a plain function to Pricer.
type PricerFunc func(r UsageRecord) float64

func (f PricerFunc) Cost(r UsageRecord) float64 { return f(r) }
