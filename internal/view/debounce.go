package view

import (
	"sync"
	"time"
)

// Standard debounce intervals used across the client.
const (
	// SearchDebounce delays list refetches behind a fast-changing search box.
	SearchDebounce = 300 * time.Millisecond
	// UsernameDebounce delays the username availability check while typing.
	UsernameDebounce = 500 * time.Millisecond
)

// Debouncer delays propagation of a rapidly changing value until it has
// been stable for the configured interval. Each Trigger cancels any pending
// emission and restarts the timer; Stop cancels the pending emission and
// prevents any future fire, so nothing runs after teardown.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, cancelling any previously
// scheduled function. fn runs on a timer goroutine only if no further
// Trigger or Stop intervenes.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	token := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer Trigger or a Stop makes this emission stale. The token
		// check covers the window where the timer fired before Stop could
		// stop it.
		stale := d.stopped || token != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Cancel drops any pending emission without disabling the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending emission and disables the debouncer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
