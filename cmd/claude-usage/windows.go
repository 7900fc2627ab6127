package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/ui/components"
)

func windowsCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Today's 5-hour billing windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			e, err := setup(cmd.Context(), g, false)
			if err != nil {
				return err
			}
			defer e.Close()

			windows := e.svc.BillingWindows()
			if f != formatTable {
				return writeData(cmd.OutOrStdout(), f, windows)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderWindows(windows, e.tz))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatTable), "output format: table, json or yaml")
	return cmd
}

func renderWindows(windows []domain.BillingWindow, tz *time.Location) string {
	if len(windows) == 0 {
		return "No billing windows today."
	}
	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		remaining := ""
		if w.IsActive {
			remaining = components.FormatDuration(time.Duration(w.RemainingMinutes) * time.Minute)
		}
		rows = append(rows, []string{
			w.StartTime.In(tz).Format("15:04") + " - " + w.EndTime.In(tz).Format("15:04"),
			fmt.Sprint(w.MessageCount),
			components.FormatNumber(w.TotalTokens),
			components.FormatCost(w.CostUSD),
			remaining,
		})
	}
	return components.Table{
		Columns: []components.Column{
			{Title: "Window", Width: 14},
			{Title: "Messages", Width: 9, Numeric: true},
			{Title: "Tokens", Width: 14, Numeric: true},
			{Title: "Cost", Width: 10, Numeric: true},
			{Title: "Remaining", Width: 9, Numeric: true},
		},
		Rows:   rows,
		Cursor: -1,
	}.Render()
}
