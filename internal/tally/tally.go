// Package tally holds the count shared by every socket when the counter runs
// in shared mode.
package tally

import "sync/atomic"

// Tally is a concurrency safe integer.
type Tally struct {
	v atomic.Int64
}

// New creates a tally starting at start.
func New(start int) *Tally {
	t := &Tally{}
	t.v.Store(int64(start))
	return t
}

// Add delta and return the new value.
func (t *Tally) Add(delta int) int {
	return int(t.v.Add(int64(delta)))
}

// Load the current value.
func (t *Tally) Load() int {
	return int(t.v.Load())
}

// Store overwrites the value.
func (t *Tally) Store(v int) {
	t.v.Store(int64(v))
}

// Raise sets the value to v if v is larger and returns the resulting value.
// The shared count only grows, so an older broadcast never lowers it.
func (t *Tally) Raise(v int) int {
	for {
		cur := t.v.Load()
		if int64(v) <= cur {
			return int(cur)
		}
		if t.v.CompareAndSwap(cur, int64(v)) {
			return v
		}
	}
}
