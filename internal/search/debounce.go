package search

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the pause after the last keystroke before a
// search runs.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer delays fn until Trigger has not been called for delay. Only
// the last query in a burst is delivered. Every delivery carries a
// generation; Current reports whether it is still the newest one, so a
// slow fn can drop its result once a later call has been made.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(query string, gen uint64)
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. A non-positive delay uses DefaultDebounceDelay.
func NewDebouncer(delay time.Duration, fn func(query string, gen uint64)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn(query), replacing any pending call.
func (d *Debouncer) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer Trigger or Stop happened after this timer fired.
		if d.stopped || seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		d.fn(query, seq)
	})
}

// Flush cancels any pending call and runs fn(query) now.
func (d *Debouncer) Flush(query string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()
	d.fn(query, seq)
}

// Current reports whether gen is the latest generation handed out. It
// turns false on the next Trigger, Flush or Stop.
func (d *Debouncer) Current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && gen == d.seq
}

// Stop cancels pending work. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
	}
}
