package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/ui/components"
)

func sessionsCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Today's sessions, most recently active first",
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

			sessions := e.svc.SessionBreakdown()
			if f != formatTable {
				return writeData(cmd.OutOrStdout(), f, sessions)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSessions(sessions))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatTable), "output format: table, json or yaml")
	return cmd
}

func renderSessions(sessions []domain.SessionSummary) string {
	if len(sessions) == 0 {
		return "No sessions today."
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ProjectPath,
			s.SessionID,
			fmt.Sprint(s.MessageCount),
			components.FormatCost(s.TotalCostUSD),
			s.EndTime,
			strings.Join(s.Models, ", "),
		})
	}
	return components.Table{
		Columns: []components.Column{
			{Title: "Project", Width: 32},
			{Title: "Session", Width: 36},
			{Title: "Messages", Width: 9, Numeric: true},
			{Title: "Cost", Width: 9, Numeric: true},
			{Title: "Last activity", Width: 24},
			{Title: "Models", Width: 30},
		},
		Rows:   rows,
		Cursor: -1,
	}.Render()
}
