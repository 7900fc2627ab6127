package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mikec-git/claude-usage-menubar/internal/pricing"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Data    DataConfig    `toml:"data"`
	Watch   WatchConfig   `toml:"watch"`
	Pricing PricingConfig `toml:"pricing"`
	Log     LogConfig     `toml:"log"`
}

type GeneralConfig struct {
	// Timezone is an IANA name or "Local".
	Timezone string `toml:"timezone"`
}

type DataConfig struct {
	// Roots defaults to the well-known project directories when empty.
	Roots     []string `toml:"roots"`
	Extension string   `toml:"extension"`
	Workers   int      `toml:"workers"`
}

type WatchConfig struct {
	DebounceMS      int `toml:"debounce_ms"`
	PollIntervalSec int `toml:"poll_interval_sec"`
}

type PricingConfig struct {
	CostMode string `toml:"cost_mode"`
	// Models are matched before the built-in families.
	Models []ModelPrice `toml:"models"`
}

// ModelPrice is a user-defined price family. Rates are USD per 1M tokens.
type ModelPrice struct {
	Name          string   `toml:"name"`
	Match         []string `toml:"match"`
	Input         float64  `toml:"input"`
	Output        float64  `toml:"output"`
	CacheCreation float64  `toml:"cache_creation"`
	CacheRead     float64  `toml:"cache_read"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Timezone: "Local"},
		Data: DataConfig{
			Extension: ".jsonl",
			Workers:   min(runtime.NumCPU(), 8),
		},
		Watch:   WatchConfig{DebounceMS: 500},
		Pricing: PricingConfig{CostMode: string(pricing.CostModeAuto)},
		Log:     LogConfig{Level: "info"},
	}
}

func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "claude-usage")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultRoots lists the directories the CLI writes its project logs to.
func DefaultRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".claude", "projects"),
		filepath.Join(home, ".config", "claude", "projects"),
	}
}

func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := pricing.ParseCostMode(c.Pricing.CostMode); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS))
	}
	if c.Watch.PollIntervalSec < 0 {
		errs = append(errs, fmt.Errorf("watch.poll_interval_sec must not be negative, got %d", c.Watch.PollIntervalSec))
	}
	if ext := c.FileExtension(); ext == "." || strings.ContainsAny(ext[min(len(ext), 1):], `./\ `) {
		errs = append(errs, fmt.Errorf("data.extension must be a single suffix like \".jsonl\", got %q", c.Data.Extension))
	}
	if c.Data.Workers < 0 {
		errs = append(errs, fmt.Errorf("data.workers must not be negative, got %d", c.Data.Workers))
	}
	for i, m := range c.Pricing.Models {
		if len(m.Match) == 0 {
			errs = append(errs, fmt.Errorf("pricing.models[%d] (%s): match must not be empty", i, m.Name))
		}
		if m.Input < 0 || m.Output < 0 || m.CacheCreation < 0 || m.CacheRead < 0 {
			errs = append(errs, fmt.Errorf("pricing.models[%d] (%s): rates must not be negative", i, m.Name))
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

func (c Config) Location() (*time.Location, error) {
	switch c.General.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// ResolveRoots returns the configured roots, or the defaults, keeping only
// directories that exist.
func (c Config) ResolveRoots() []string {
	candidates := c.Data.Roots
	if len(candidates) == 0 {
		candidates = DefaultRoots()
	}
	var roots []string
	for _, r := range candidates {
		if info, err := os.Stat(r); err == nil && info.IsDir() {
			roots = append(roots, r)
		}
	}
	return roots
}

// PriceOverrides converts [[pricing.models]] into lookup families.
func (c Config) PriceOverrides() []pricing.Family {
	families := make([]pricing.Family, 0, len(c.Pricing.Models))
	for _, m := range c.Pricing.Models {
		match := make([]string, len(m.Match))
		for i, token := range m.Match {
			match[i] = strings.ToLower(token)
		}
		families = append(families, pricing.Family{
			Name:  m.Name,
			Match: match,
			Pricing: pricing.ModelPricing{
				Input:         m.Input,
				Output:        m.Output,
				CacheCreation: m.CacheCreation,
				CacheRead:     m.CacheRead,
			},
		})
	}
	return families
}

// FileExtension returns data.extension with a leading dot, so "jsonl" and
// ".jsonl" select the same files. Empty means the parser default.
func (c Config) FileExtension() string {
	ext := strings.TrimSpace(c.Data.Extension)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollIntervalSec) * time.Second
}
