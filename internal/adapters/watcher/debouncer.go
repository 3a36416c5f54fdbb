package watcher

import (
	"slices"
	"time"
	"unique"
)

// Debouncer coalesces rapid file events into one batch. It is not safe for
// concurrent use: a single event loop owns it and selects on C.
type Debouncer struct {
	pending map[unique.Handle[string]]struct{}
	timer   *time.Timer
	window  time.Duration
}

// NewDebouncer creates a Debouncer that fires window after the last Add.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		pending: make(map[unique.Handle[string]]struct{}),
		window:  window,
	}
}

// Add records path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.pending[unique.Make(path)] = struct{}{}

	if d.timer == nil {
		d.timer = time.NewTimer(d.window)
		return
	}
	d.timer.Reset(d.window)
}

// C returns the channel that fires once the window expires. It is nil while
// nothing is pending, so a select on it blocks.
func (d *Debouncer) C() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C
}

// Drain returns the pending paths in sorted order and clears them.
func (d *Debouncer) Drain() []string {
	paths := make([]string, 0, len(d.pending))
	for h := range d.pending {
		paths = append(paths, h.Value())
	}
	slices.Sort(paths)

	clear(d.pending)
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return paths
}

// Stop cancels the pending window without delivering it.
func (d *Debouncer) Stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
