package main

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mikec-git/claude-usage-menubar/internal/cache"
	"github.com/mikec-git/claude-usage-menubar/internal/ui/components"
)

type fileInfo struct {
	Path    string    `json:"path" yaml:"path"`
	ModTime time.Time `json:"modTime" yaml:"modTime"`
	Records int       `json:"records" yaml:"records"`
	Skipped int       `json:"skipped" yaml:"skipped"`
	Errors  int       `json:"errors" yaml:"errors"`
}

func filesCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the cached log files with record counts",
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

			infos := lo.Map(e.cache.Files(), func(cf cache.CachedFile, _ int) fileInfo {
				return fileInfo{
					Path:    cf.Path,
					ModTime: cf.ModTime,
					Records: len(cf.Records),
					Skipped: cf.SkipCount,
					Errors:  cf.ErrorCount,
				}
			})
			if f != formatTable {
				return writeData(cmd.OutOrStdout(), f, infos)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFiles(infos, e.tz))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatTable), "output format: table, json or yaml")
	return cmd
}

func renderFiles(infos []fileInfo, tz *time.Location) string {
	if len(infos) == 0 {
		return "No log files found."
	}
	rows := lo.Map(infos, func(fi fileInfo, _ int) []string {
		return []string{
			fi.Path,
			fi.ModTime.In(tz).Format("2006-01-02 15:04"),
			components.FormatNumber(int64(fi.Records)),
			fmt.Sprint(fi.Skipped),
			fmt.Sprint(fi.Errors),
		}
	})
	total := lo.SumBy(infos, func(fi fileInfo) int { return fi.Records })
	return components.Table{
		Columns: []components.Column{
			{Title: "Path", Width: 72},
			{Title: "Modified", Width: 16},
			{Title: "Records", Width: 9, Numeric: true},
			{Title: "Skipped", Width: 8, Numeric: true},
			{Title: "Errors", Width: 7, Numeric: true},
		},
		Rows:   rows,
		Cursor: -1,
	}.Render() + fmt.Sprintf("\n\n%d files, %s records", len(infos), components.FormatNumber(int64(total)))
}
