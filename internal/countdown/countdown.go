// Package countdown runs the per-attempt quiz timer on the client side.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrAlreadyStarted = errors.New("countdown already started")

// Timer counts down from a quiz's time limit one second per tick. OnExpire
// fires exactly once when the count reaches zero and never after Stop.
type Timer struct {
	mu        sync.Mutex
	remaining int
	interval  time.Duration
	onTick    func(remaining int)
	onExpire  func()

	started bool
	stopped bool
	expired bool
	done    chan struct{}
}

type Option func(*Timer)

// WithInterval sets the wall-clock length of one tick. Defaults to one second.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// OnTick is called after every tick that leaves time on the clock.
func OnTick(fn func(remaining int)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// OnExpire is called once when the clock reaches zero.
func OnExpire(fn func()) Option {
	return func(t *Timer) { t.onExpire = fn }
}

// New creates a stopped timer for a limit given in minutes.
func New(limitMinutes int, opts ...Option) *Timer {
	t := &Timer{
		remaining: max(limitMinutes, 0) * 60,
		interval:  time.Second,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start runs the ticker in the background until expiry, Stop or ctx cancellation.
// A timer can only be started once.
func (t *Timer) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return ErrAlreadyStarted
	}
	t.started = true
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.done:
				return
			case <-ticker.C:
				if !t.Tick() {
					return
				}
			}
		}
	}()
	return nil
}

// Tick advances the clock by one second and reports whether the timer is
// still running afterwards.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if t.stopped || t.expired {
		t.mu.Unlock()
		return false
	}

	if t.remaining > 0 {
		t.remaining--
	}
	remaining := t.remaining
	if remaining == 0 {
		t.expired = true
		close(t.done)
	}
	onTick, onExpire := t.onTick, t.onExpire
	t.mu.Unlock()

	if remaining == 0 {
		if onExpire != nil {
			onExpire()
		}
		return false
	}
	if onTick != nil {
		onTick(remaining)
	}
	return true
}

// Stop cancels the timer. It is safe to call more than once.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.expired {
		return
	}
	t.stopped = true
	close(t.done)
}

// Remaining returns the seconds left on the clock.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Active reports whether the timer has neither expired nor been stopped.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && !t.expired
}

// Expired reports whether the clock ran out.
func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

// Done is closed once the timer expires or is stopped.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

// Format renders seconds as MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
