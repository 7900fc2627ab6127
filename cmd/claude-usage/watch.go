package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/query"
	"github.com/mikec-git/claude-usage-menubar/internal/ui"
	"github.com/mikec-git/claude-usage-menubar/internal/watcher"
)

func watchCmd(g *globalFlags) *cobra.Command {
	var noTUI bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that refreshes as log files change",
		Long: `Scans the log roots once, then watches them for changes. On a terminal it
opens a live dashboard; otherwise (or with --no-tui) it prints one JSON line
with today's totals after every change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tui := !noTUI && term.IsTerminal(int(os.Stdout.Fd()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx, g, tui)
			if err != nil {
				return err
			}
			defer e.Close()

			w := watcher.New(e.cache, watcher.Options{
				Roots:        e.cfg.ResolveRoots(),
				Extension:    e.cfg.FileExtension(),
				Debounce:     e.cfg.Debounce(),
				PollInterval: e.cfg.PollInterval(),
				Stale:        e.cache,
				OnChange:     e.svc.NotifyChanged,
				Logger:       e.log,
			})
			if err := w.Start(); err != nil && !errors.Is(err, watcher.ErrNoRoots) {
				return err
			}
			defer w.Stop()

			changes, unsubscribe := e.svc.Subscribe()
			defer unsubscribe()

			if tui {
				p := tea.NewProgram(ui.NewApp(e.svc, changes, e.tz), tea.WithAltScreen(), tea.WithContext(ctx))
				if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
					return fmt.Errorf("run dashboard: %w", err)
				}
				return nil
			}
			return streamTotals(ctx, cmd.OutOrStdout(), e.svc, changes)
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "print JSON lines instead of the dashboard")
	return cmd
}

// totalsLine is one line of --no-tui output.
type totalsLine struct {
	Time         time.Time          `json:"time"`
	Today        domain.UsageTotals `json:"today"`
	ActiveWindow *windowSummary     `json:"activeWindow,omitempty"`
}

type windowSummary struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	CostUSD          float64   `json:"costUsd"`
	RemainingMinutes int64     `json:"remainingMinutes"`
}

// streamTotals prints the current totals, then one line per change until
// ctx is done.
func streamTotals(ctx context.Context, w io.Writer, svc *query.Service, changes <-chan struct{}) error {
	enc := json.NewEncoder(w)
	emit := func() error {
		line := totalsLine{Time: time.Now(), Today: svc.Usage(domain.RangeToday)}
		for _, bw := range svc.BillingWindows() {
			if bw.IsActive {
				line.ActiveWindow = &windowSummary{
					Start:            bw.StartTime,
					End:              bw.EndTime,
					CostUSD:          bw.CostUSD,
					RemainingMinutes: bw.RemainingMinutes,
				}
			}
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("write totals: %w", err)
		}
		return nil
	}

	if err := emit(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := emit(); err != nil {
				return err
			}
		}
	}
}
