package pricing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
)

//go:embed pricing.json
var defaultPricingJSON []byte

type ModelPricing struct {
	Input         float64 `json:"input"` // per 1M tokens
	Output        float64 `json:"output"`
	CacheCreation float64 `json:"cache_creation"`
	CacheRead     float64 `json:"cache_read"`
}

// Family is one row of the lookup table. A model belongs to the first family
// with any Match token contained in its lowercased id.
type Family struct {
	Name    string       `json:"name"`
	Match   []string     `json:"match"`
	Pricing ModelPricing `json:"pricing"`
}

// Table is an ordered family list plus the fallback rate.
type Table struct {
	Default  ModelPricing `json:"default"`
	Families []Family     `json:"families"`
}

func LoadDefault() (Table, error) {
	var table Table
	if err := json.Unmarshal(defaultPricingJSON, &table); err != nil {
		return Table{}, fmt.Errorf("decode embedded pricing: %w", err)
	}
	return table, nil
}

// Lookup returns the rates for model. Unknown models get the default rate.
func (t Table) Lookup(model string) ModelPricing {
	p, _ := t.lookup(model)
	return p
}

// Family returns the matched family name, or "" for the default rate.
func (t Table) Family(model string) string {
	_, name := t.lookup(model)
	return name
}

func (t Table) lookup(model string) (ModelPricing, string) {
	lower := strings.ToLower(model)
	for _, f := range t.Families {
		for _, token := range f.Match {
			if strings.Contains(lower, token) {
				return f.Pricing, f.Name
			}
		}
	}
	return t.Default, ""
}

// Cost prices a usage block: sum of count/1e6 * rate over the four fields.
func (p ModelPricing) Cost(u domain.TokenUsage) float64 {
	cost := float64(u.InputTokens) / 1_000_000 * p.Input
	cost += float64(u.OutputTokens) / 1_000_000 * p.Output
	cost += float64(u.CacheCreation()) / 1_000_000 * p.CacheCreation
	cost += float64(u.CacheRead()) / 1_000_000 * p.CacheRead
	return cost
}

// Prepend puts extra families ahead of the built-in ones so they win.
func (t Table) Prepend(extra ...Family) Table {
	out := Table{Default: t.Default}
	out.Families = append(append(out.Families, extra...), t.Families...)
	return out
}
