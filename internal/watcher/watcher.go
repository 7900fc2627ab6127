// Package watcher turns filesystem notifications under the log roots into
// debounced, targeted cache invalidations.
package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mikec-git/claude-usage-menubar/internal/parser"
)

const DefaultDebounce = 500 * time.Millisecond

// ErrNoRoots is returned by Start when there is nothing to watch. The
// caller keeps serving whatever the initial scan produced.
var ErrNoRoots = errors.New("watcher: no root paths configured")

// Invalidator is the cache side of the watcher.
type Invalidator interface {
	InvalidatePaths(paths []string)
}

// StaleFinder is polled when PollInterval is set, as a safety net for
// platforms or filesystems that drop notifications.
type StaleFinder interface {
	StalePaths() []string
}

type Options struct {
	Roots        []string
	Extension    string        // defaults to parser.DefaultExtension
	Debounce     time.Duration // defaults to DefaultDebounce
	PollInterval time.Duration // 0 disables polling
	Stale        StaleFinder   // required when PollInterval > 0
	OnChange     func()        // called after each invalidation batch
	Logger       *slog.Logger
}

// Watcher owns one fsnotify subscription and a single loop goroutine that
// applies batches in arrival order, so invalidations never overlap.
type Watcher struct {
	opts   Options
	target Invalidator
	log    *slog.Logger

	fsw      *fsnotify.Watcher
	debounce *debouncer
	batches  chan []string
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(target Invalidator, opts Options) *Watcher {
	if opts.Extension == "" {
		opts.Extension = parser.DefaultExtension
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	w := &Watcher{
		opts:    opts,
		target:  target,
		log:     opts.Logger,
		batches: make(chan []string, 16),
		stop:    make(chan struct{}),
	}
	w.debounce = newDebouncer(opts.Debounce, w.enqueue)
	return w
}

// Start subscribes to every root and launches the background goroutines.
// A root that cannot be watched is logged and skipped.
func (w *Watcher) Start() error {
	if len(w.opts.Roots) == 0 {
		w.log.Info("no log roots to watch")
		return ErrNoRoots
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w.fsw = fsw

	for _, root := range w.opts.Roots {
		if n := w.addTree(root); n > 0 {
			w.log.Info("watching", "root", root, "dirs", n)
		}
	}

	w.wg.Add(2)
	go w.pump()
	go w.loop()

	if w.opts.PollInterval > 0 && w.opts.Stale != nil {
		w.wg.Add(1)
		go w.poll()
	}
	return nil
}

// Stop tears down the subscription and waits for the goroutines. A batch
// already being applied finishes first.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.debounce.Stop()
		if w.fsw != nil {
			w.fsw.Close()
		}
	})
	w.wg.Wait()
}

// addTree subscribes root and every directory below it. fsnotify is not
// recursive, so each directory is added on its own.
func (w *Watcher) addTree(root string) int {
	dirs := parser.Dirs([]string{root})
	if len(dirs) == 0 {
		w.log.Warn("cannot watch root", "root", root, "error", "not a readable directory")
		return 0
	}
	added := 0
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			w.log.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		added++
	}
	return added
}

// pump drains fsnotify and feeds matching paths to the debouncer.
func (w *Watcher) pump() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("fsnotify error", "error", err)
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		// New directories need their own subscription; files already
		// inside them are picked up as if just created.
		if dirs := parser.Dirs([]string{event.Name}); len(dirs) > 0 {
			for _, dir := range dirs {
				if err := w.fsw.Add(dir); err != nil {
					w.log.Warn("cannot watch directory", "dir", dir, "error", err)
				}
			}
			for _, f := range parser.FindFiles([]string{event.Name}, w.opts.Extension) {
				w.debounce.Add(f)
			}
			return
		}
	}
	if parser.MatchesExtension(event.Name, w.opts.Extension) {
		w.debounce.Add(event.Name)
	}
}

// enqueue runs on the debounce timer goroutine and hands the batch to loop.
func (w *Watcher) enqueue(paths []string) {
	select {
	case w.batches <- paths:
	case <-w.stop:
	}
}

// loop is the only caller of InvalidatePaths, which serializes batches.
func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case paths := <-w.batches:
			w.apply(paths)
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) apply(paths []string) {
	if len(paths) == 0 {
		return
	}
	w.target.InvalidatePaths(paths)
	w.log.Debug("applied change batch", "paths", len(paths))
	if w.opts.OnChange != nil {
		w.opts.OnChange()
	}
}

func (w *Watcher) poll() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if stale := w.opts.Stale.StalePaths(); len(stale) > 0 {
				w.enqueue(stale)
			}
		case <-w.stop:
			return
		}
	}
}
