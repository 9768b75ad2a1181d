// Package debounce coalesces bursts of calls or value changes into a single
// delivery once the input has been quiet for a fixed delay.
package debounce

import (
	"sync"
	"time"
)

// Func delays calls to fn until no new call arrived for the configured
// delay. Only the latest argument is delivered.
type Func[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewFunc returns a debouncer that runs fn with the last argument once
// calls have stopped for delay.
func NewFunc[T any](delay time.Duration, fn func(T)) *Func[T] {
	return &Func[T]{delay: delay, fn: fn}
}

// Call cancels any pending invocation and schedules fn(arg).
func (d *Func[T]) Call(arg T) {
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
		// A timer that already fired cannot be stopped; seq tells us whether
		// a newer Call superseded this one.
		if d.stopped || seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(arg)
	})
}

// Pending reports whether an invocation is scheduled.
func (d *Func[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops any pending invocation. Later calls are ignored.
func (d *Func[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Value holds the settled form of a frequently changing value.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	updates chan T
	set     *Func[T]
}

// NewValue returns a Value that starts at initial and settles each change
// after delay.
func NewValue[T any](initial T, delay time.Duration) *Value[T] {
	v := &Value[T]{
		current: initial,
		updates: make(chan T, 1),
	}
	v.set = NewFunc(delay, v.settle)
	return v
}

// Set records a new input value and restarts the delay.
func (v *Value[T]) Set(value T) {
	v.set.Call(value)
}

// Get returns the last settled value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Updates delivers settled values. A slow reader only sees the latest one.
func (v *Value[T]) Updates() <-chan T {
	return v.updates
}

// Stop cancels a pending update without delivering it.
func (v *Value[T]) Stop() {
	v.set.Stop()
}

func (v *Value[T]) settle(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = value
	select {
	case <-v.updates:
	default:
	}
	select {
	case v.updates <- value:
	default:
	}
}
