package roster

import (
	"sync"
	"time"
)

// Scheduler is the cancellable-timer capability behind keystroke debouncing.
// The production implementation wraps time.AfterFunc; tests substitute a
// manual one.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// NewTimerScheduler returns the real timer-backed Scheduler.
func NewTimerScheduler() Scheduler { return timerScheduler{} }

// Debouncer delays keystroke-triggered work and holds at most one pending
// timer; each new keystroke cancels the previous one. An explicit search
// bypasses the delay.
type Debouncer struct {
	sched Scheduler
	delay time.Duration

	mu     sync.Mutex
	cancel func()
}

func NewDebouncer(sched Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{sched: sched, delay: delay}
}

// Tap schedules fn after the debounce delay, replacing any pending call.
func (d *Debouncer) Tap(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = d.sched.Schedule(d.delay, func() {
		d.mu.Lock()
		d.cancel = nil
		d.mu.Unlock()
		fn()
	})
}

// Flush cancels any pending call and runs fn immediately (the search button
// / Enter-key path).
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}

// Cancel drops any pending call (the reset path).
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
