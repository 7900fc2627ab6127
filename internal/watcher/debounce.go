package watcher

import (
	"sort"
	"sync"
	"time"
)

// debouncer batches paths into windows of delay. The window opens with the
// first pending path and is not extended by later ones, so a file that is
// written continuously still flushes once per window.
type debouncer struct {
	delay time.Duration
	flush func(paths []string)

	mu         sync.Mutex
	pending    map[string]struct{}
	generation int
	timer      *time.Timer
}

func newDebouncer(delay time.Duration, flush func([]string)) *debouncer {
	return &debouncer{
		delay:   delay,
		flush:   flush,
		pending: make(map[string]struct{}),
	}
}

// Add queues path, opening a new window if none is pending.
func (d *debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		return
	}
	gen := d.generation
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *debouncer) fire(gen int) {
	d.mu.Lock()
	if gen != d.generation {
		// Stopped since this window opened
		d.mu.Unlock()
		return
	}
	d.timer = nil
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	sort.Strings(paths)
	d.flush(paths)
}

// Stop cancels any pending flush.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	d.pending = make(map[string]struct{})
}
