package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikec-git/claude-usage-menubar/internal/cache"
	"github.com/mikec-git/claude-usage-menubar/internal/config"
	"github.com/mikec-git/claude-usage-menubar/internal/pricing"
	"github.com/mikec-git/claude-usage-menubar/internal/query"
)

type globalFlags struct {
	configPath string
	timezone   string
	roots      []string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "claude-usage",
		Short:         "Token usage and cost from local Claude Code logs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", config.DefaultPath(), "config file path")
	pf.StringVar(&g.timezone, "timezone", "", "override timezone (e.g. Asia/Seoul)")
	pf.StringSliceVar(&g.roots, "root", nil, "log root directory (repeatable, replaces configured roots)")
	pf.StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		usageCmd(g),
		windowsCmd(g),
		sessionsCmd(g),
		filesCmd(g),
		watchCmd(g),
		versionCmd(),
	)
	return root
}

// env is everything a command needs after the initial scan.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	tz     *time.Location
	prices pricing.Table
	cache  *cache.Cache
	svc    *query.Service

	closeLog func() error
}

func (e *env) Close() error {
	return e.closeLog()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(g *globalFlags) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if g.timezone != "" {
		cfg.General.Timezone = g.timezone
	}
	if len(g.roots) > 0 {
		cfg.Data.Roots = g.roots
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup loads config, builds the logger and runs the initial scan.
// tui sends logs to a file so they do not corrupt the screen.
func setup(ctx context.Context, g *globalFlags, tui bool) (*env, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	tz, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger(cfg.Log, tui)
	if err != nil {
		return nil, err
	}

	table, err := pricing.LoadDefault()
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("load pricing: %w", err)
	}
	table = table.Prepend(cfg.PriceOverrides()...)
	mode, err := pricing.ParseCostMode(cfg.Pricing.CostMode)
	if err != nil {
		closeLog()
		return nil, err
	}

	roots := cfg.ResolveRoots()
	c := cache.New(cache.Options{
		Roots:     roots,
		Extension: cfg.FileExtension(),
		Workers:   cfg.Data.Workers,
		Logger:    logger,
	})
	if err := c.Initialize(ctx); err != nil {
		closeLog()
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	logger.Debug("config loaded", "roots", roots, "timezone", tz.String(), "cost_mode", mode)

	return &env{
		cfg:      cfg,
		log:      logger,
		tz:       tz,
		prices:   table,
		cache:    c,
		svc:      query.New(c, pricing.NewCalculator(table, mode), tz),
		closeLog: closeLog,
	}, nil
}

func newLogger(lc config.LogConfig, tui bool) (*slog.Logger, func() error, error) {
	var level slog.Level
	if lc.Level != "" {
		if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", lc.Level, err)
		}
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	path := lc.File
	if path == "" && tui {
		path = filepath.Join(config.Dir(), "claude-usage.log")
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "claude-usage", version)
		},
	}
}
