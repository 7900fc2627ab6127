package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
)

// rawRecord maps the JSONL structure we care about. Message is required;
// a line without it is a parse error rather than a skip.
type rawRecord struct {
	Timestamp *string  `json:"timestamp"`
	SessionID string   `json:"sessionId"`
	CWD       string   `json:"cwd"`
	CostUSD   *float64 `json:"costUSD"`
	Message   *struct {
		Role  string             `json:"role"`
		Model string             `json:"model"`
		Usage *domain.TokenUsage `json:"usage"`
	} `json:"message"`
}

// ParseResult holds parsed records and error stats.
type ParseResult struct {
	Records    []domain.UsageRecord
	SkipCount  int // valid lines without a usage block
	ErrorCount int // malformed lines, missing required fields or negative token counts
}

// ParseReader reads JSONL from an io.Reader, streaming line by line. Each
// line stands alone: a bad line is counted and skipped.
func ParseReader(r io.Reader) ParseResult {
	var result ParseResult
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec rawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			result.ErrorCount++
			continue
		}
		if rec.Timestamp == nil || rec.Message == nil {
			result.ErrorCount++
			continue
		}
		if rec.Message.Usage == nil {
			result.SkipCount++
			continue
		}
		if !rec.Message.Usage.Valid() {
			// Negative counts would subtract from totals
			result.ErrorCount++
			continue
		}

		result.Records = append(result.Records, domain.NewUsageRecord(
			*rec.Timestamp,
			rec.SessionID,
			rec.CWD,
			domain.Message{
				Role:  rec.Message.Role,
				Model: rec.Message.Model,
				Usage: rec.Message.Usage,
			},
			rec.CostUSD,
		))
	}

	if err := scanner.Err(); err != nil {
		result.ErrorCount++
	}

	return result
}

// ParseFile parses one log file. The error is non-nil only when the file
// cannot be opened; callers that don't care may ignore it and use the empty
// result.
func ParseFile(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseReader(f), nil
}
