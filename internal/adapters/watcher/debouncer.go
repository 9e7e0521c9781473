// Package watcher watches source artifacts so cached annotations can be
// invalidated proactively.
package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

// Debouncer coalesces rapid file system events into batched invalidations.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
	inflight sync.WaitGroup
	stopped  bool
}

// NewDebouncer creates a new debouncer with the given time window and callback.
// The callback receives the distinct paths of a batch, sorted.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add adds a path to the pending set and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[unique.Make(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs when the window expires without new events.
func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	paths := d.drainLocked()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.inflight.Go(func() { d.callback(paths) })
	}
}

// Flush immediately runs the callback with all pending paths and blocks
// until it returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.drainLocked()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Stop drops pending paths, ignores later Adds and waits for a running
// callback to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	d.mu.Unlock()

	d.inflight.Wait()
}

// Pending returns the number of paths waiting for the window to expire.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// drainLocked must be called with mu held.
func (d *Debouncer) drainLocked() []string {
	if len(d.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	slices.Sort(paths)
	return paths
}
