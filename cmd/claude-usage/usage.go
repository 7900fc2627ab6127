package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/pricing"
	"github.com/mikec-git/claude-usage-menubar/internal/ui/components"
)

func usageCmd(g *globalFlags) *cobra.Command {
	var rangeName, format string

	rangeNames := lo.Map(domain.ValidTimeRanges, func(tr domain.TimeRange, _ int) string {
		return string(tr)
	})

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Token and cost totals with a per-model breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := domain.ParseTimeRange(rangeName)
			if err != nil {
				return err
			}
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			e, err := setup(cmd.Context(), g, false)
			if err != nil {
				return err
			}
			defer e.Close()

			totals := e.svc.Usage(tr)
			if f != formatTable {
				return writeData(cmd.OutOrStdout(), f, totals)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderUsage(totals, e.prices))
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", string(domain.RangeToday), "time range: "+strings.Join(rangeNames, ", "))
	cmd.Flags().StringVar(&format, "format", string(formatTable), "output format: table, json or yaml")
	return cmd
}

func renderUsage(u domain.UsageTotals, prices pricing.Table) string {
	rows := make([][]string, 0, len(u.ModelBreakdown)+1)
	for _, m := range u.ModelBreakdown {
		tier := prices.Family(m.Model)
		if tier == "" {
			tier = "default"
		}
		rows = append(rows, modelRow(m.Model, tier, m.TokenTotals, m.CostUSD))
	}
	rows = append(rows, modelRow("total", "", u.TotalTokens, u.TotalCostUSD))

	return components.Table{
		Columns: []components.Column{
			{Title: "Model", Width: 28},
			{Title: "Price tier", Width: 12},
			{Title: "Input", Width: 12, Numeric: true},
			{Title: "Output", Width: 12, Numeric: true},
			{Title: "Cache write", Width: 13, Numeric: true},
			{Title: "Cache read", Width: 14, Numeric: true},
			{Title: "Cost", Width: 10, Numeric: true},
		},
		Rows:   rows,
		Cursor: -1,
	}.Render()
}

func modelRow(name, tier string, t domain.TokenTotals, cost float64) []string {
	return []string{
		name,
		tier,
		components.FormatNumber(t.InputTokens),
		components.FormatNumber(t.OutputTokens),
		components.FormatNumber(t.CacheCreationInputTokens),
		components.FormatNumber(t.CacheReadInputTokens),
		components.FormatCost(cost),
	}
}
