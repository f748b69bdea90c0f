// Package debounce buffers search keystrokes and commits a single value once
// typing has been idle for a fixed period.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the idle period used when none is configured.
const DefaultDelay = 2 * time.Second

// Debouncer holds the displayed text of a search box and the pending commit.
// onCommit must not call Stop.
type Debouncer struct {
	mu        sync.Mutex
	clock     Clock
	delay     time.Duration
	onCommit  func(string)
	text      string
	committed string
	timer     Timer
	gen       uint64
	stopped   bool

	// fireMu serialises commits with Stop so no commit runs after teardown.
	fireMu sync.Mutex
}

// Option customises a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the timer source.
func WithClock(c Clock) Option {
	return func(d *Debouncer) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithInitial sets the displayed and committed text without scheduling.
func WithInitial(text string) Option {
	return func(d *Debouncer) {
		d.text = text
		d.committed = text
	}
}

// New returns a Debouncer that calls onCommit after delay of inactivity.
func New(delay time.Duration, onCommit func(string), opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{clock: RealClock, delay: delay, onCommit: onCommit}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Input records a keystroke. The text is visible immediately and the commit
// timer restarts.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.text = text
	d.cancelLocked()
	g := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.commit(g) })
}

// Flush commits the pending value now. It reports whether a commit happened.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	g := d.gen
	d.mu.Unlock()
	return d.commit(g)
}

// Set replaces both the displayed and committed text without running the
// callback, dropping any pending commit. Used when the owner resets its
// filters itself.
func (d *Debouncer) Set(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.text = text
	d.committed = text
}

// Configure swaps the delay and callback; a pending commit is dropped.
func (d *Debouncer) Configure(delay time.Duration, onCommit func(string)) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.delay = delay
	d.onCommit = onCommit
}

// Stop tears the debouncer down. Once it returns no commit will run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	// wait for a commit that passed its checks before we got the lock
	d.fireMu.Lock()
	d.fireMu.Unlock()
}

// Text returns the displayed text.
func (d *Debouncer) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Committed returns the last committed value.
func (d *Debouncer) Committed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}

// Pending reports whether a commit is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the idle period.
func (d *Debouncer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) commit(g uint64) bool {
	d.fireMu.Lock()
	defer d.fireMu.Unlock()

	d.mu.Lock()
	if d.stopped || g != d.gen {
		d.mu.Unlock()
		return false
	}
	d.gen++
	d.timer = nil
	text := d.text
	d.committed = text
	fn := d.onCommit
	d.mu.Unlock()

	if fn != nil {
		fn(text)
	}
	return true
}
