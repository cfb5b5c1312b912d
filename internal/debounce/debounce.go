// Package debounce turns a stream of raw input changes into settled values:
// a value is emitted only after no new change has arrived for a fixed quiet
// interval. Every new change restarts the wait window.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

type Debouncer struct {
	clk      clock.Clock
	interval time.Duration
	out      chan string

	mu      sync.Mutex
	timer   *clock.Timer
	stopped bool
}

func New(interval time.Duration) *Debouncer {
	return NewWithClock(interval, clock.New())
}

// NewWithClock injects the clock so tests can drive the quiet interval
func NewWithClock(interval time.Duration, clk clock.Clock) *Debouncer {
	return &Debouncer{
		clk:      clk,
		interval: interval,
		out:      make(chan string, 1),
	}
}

// Set records a new raw value and restarts the wait window. Intermediate
// values superseded before the window elapses are never emitted.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clk.AfterFunc(d.interval, func() {
		d.emit(value)
	})
}

// C delivers settled values. Only the latest settled value is retained if
// the consumer lags.
func (d *Debouncer) C() <-chan string {
	return d.out
}

// Stop cancels any pending emission. No value is delivered after Stop
// returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) emit(value string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	for {
		select {
		case d.out <- value:
			return
		case <-d.out:
			// Drop the stale settled value and retry with the newer one
		}
	}
}
