package pricing

import (
	"fmt"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
)

type CostMode string

const (
	CostModeAuto      CostMode = "auto"
	CostModeDisplay   CostMode = "display"
	CostModeCalculate CostMode = "calculate"
)

func ParseCostMode(s string) (CostMode, error) {
	switch m := CostMode(s); m {
	case CostModeAuto, CostModeDisplay, CostModeCalculate:
		return m, nil
	case "":
		return CostModeAuto, nil
	default:
		return "", fmt.Errorf("unknown cost mode %q (use auto, display or calculate)", s)
	}
}

// Calculator prices records. It satisfies domain.Pricer and holds no
// mutable state, so one value can be shared by concurrent queries.
type Calculator struct {
	table Table
	mode  CostMode
}

func NewCalculator(table Table, mode CostMode) *Calculator {
	return &Calculator{table: table, mode: mode}
}

// Cost returns the cost in USD for a single record.
func (c *Calculator) Cost(r domain.UsageRecord) float64 {
	switch c.mode {
	case CostModeDisplay:
		if r.CostUSD != nil {
			return *r.CostUSD
		}
		return 0
	case CostModeCalculate:
		return c.calculateFromTokens(r)
	default: // auto
		if r.CostUSD != nil {
			return *r.CostUSD
		}
		return c.calculateFromTokens(r)
	}
}

func (c *Calculator) calculateFromTokens(r domain.UsageRecord) float64 {
	if r.Message.Usage == nil {
		return 0
	}
	return c.table.Lookup(r.ModelKey()).Cost(*r.Message.Usage)
}
