// Package cache keeps the parsed contents of every known log file in memory
// and refreshes individual files on demand.
package cache

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
	"github.com/mikec-git/claude-usage-menubar/internal/parser"
)

// CachedFile is the last parse of one file. It is replaced wholesale on
// every refresh and never mutated after it is published.
type CachedFile struct {
	Path       string
	ModTime    time.Time
	Records    []domain.UsageRecord
	SkipCount  int
	ErrorCount int
}

type Options struct {
	Roots     []string
	Extension string // defaults to parser.DefaultExtension
	Workers   int    // parallel parses during Initialize; <= 0 picks a default
	Logger    *slog.Logger
}

// Cache maps file path to its CachedFile. Readers share an RWMutex read
// lock; Initialize and InvalidatePaths parse outside the lock and hold the
// write lock only while swapping entries in.
type Cache struct {
	roots   []string
	ext     string
	workers int
	log     *slog.Logger

	mu    sync.RWMutex
	files map[string]*CachedFile
}

func New(opts Options) *Cache {
	if opts.Extension == "" {
		opts.Extension = parser.DefaultExtension
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Cache{
		roots:   opts.Roots,
		ext:     opts.Extension,
		workers: opts.Workers,
		log:     opts.Logger,
		files:   make(map[string]*CachedFile),
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8 // cap to limit file I/O contention
	}
	return n
}

// Initialize discovers every file under the roots, parses them in parallel
// and replaces the whole mapping in one write-locked swap. Files that fail
// to stat or open are left out. Only context cancellation is reported.
func (c *Cache) Initialize(ctx context.Context) error {
	start := time.Now()
	paths := parser.FindFiles(c.roots, c.ext)

	loaded := make([]*CachedFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			loaded[i] = load(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	files := make(map[string]*CachedFile, len(loaded))
	records := 0
	for _, cf := range loaded {
		if cf == nil {
			continue
		}
		files[cf.Path] = cf
		records += len(cf.Records)
	}

	c.mu.Lock()
	c.files = files
	c.mu.Unlock()

	c.log.Info("cache initialized",
		"roots", len(c.roots), "files", len(files), "records", records,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// Entries returns every cached record across all files. File order is
// unspecified; records within one file keep file order.
func (c *Cache) Entries() []domain.UsageRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, cf := range c.files {
		n += len(cf.Records)
	}
	all := make([]domain.UsageRecord, 0, n)
	for _, cf := range c.files {
		all = append(all, cf.Records...)
	}
	return all
}

// InvalidatePaths re-stats and re-parses each path, replacing its entry, or
// evicts it if the file is gone or unreadable. Other entries are untouched.
func (c *Cache) InvalidatePaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	updates := make(map[string]*CachedFile, len(paths))
	for _, path := range paths {
		updates[path] = load(path) // nil means evict
	}

	var reparsed, evicted int
	c.mu.Lock()
	for path, cf := range updates {
		if cf == nil {
			if _, ok := c.files[path]; ok {
				evicted++
			}
			delete(c.files, path)
			continue
		}
		c.files[path] = cf
		reparsed++
	}
	c.mu.Unlock()

	c.log.Debug("cache invalidated", "paths", len(paths), "reparsed", reparsed, "evicted", evicted)
}

// Files returns a snapshot of the cached file metadata sorted by path.
// The Records slices are shared with the cache and must not be modified.
func (c *Cache) Files() []CachedFile {
	c.mu.RLock()
	out := make([]CachedFile, 0, len(c.files))
	for _, cf := range c.files {
		out = append(out, *cf)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// StalePaths compares the cache with the disk and returns every path whose
// modification time changed, that appeared, or that disappeared.
func (c *Cache) StalePaths() []string {
	onDisk := make(map[string]time.Time)
	for _, path := range parser.FindFiles(c.roots, c.ext) {
		if info, err := os.Stat(path); err == nil {
			onDisk[path] = info.ModTime()
		}
	}

	var stale []string
	c.mu.RLock()
	for path, cf := range c.files {
		mod, ok := onDisk[path]
		if !ok || !mod.Equal(cf.ModTime) {
			stale = append(stale, path)
		}
	}
	for path := range onDisk {
		if _, ok := c.files[path]; !ok {
			stale = append(stale, path)
		}
	}
	c.mu.RUnlock()

	sort.Strings(stale)
	return stale
}

// load stats then parses path. Stat comes first so a concurrent append can
// only make the records newer than ModTime, never older.
func load(path string) *CachedFile {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	result, err := parser.ParseFile(path)
	if err != nil {
		return nil
	}
	return &CachedFile{
		Path:       path,
		ModTime:    info.ModTime(),
		Records:    result.Records,
		SkipCount:  result.SkipCount,
		ErrorCount: result.ErrorCount,
	}
}
