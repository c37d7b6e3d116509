// Package pool implements a LIFO free-list for recycling heap-allocated
// tree nodes instead of abandoning them to the garbage collector on
// every delete.
//
// Structure is not thread safe.
//
// Adapted from the shape of a slice-backed stack (push onto the tail,
// pop from the tail): reclaimed values are appended to a free slice on
// Put and popped from its tail on Get, exactly like a LIFO stack's
// Push/Pop, generalized here to also construct a fresh value when the
// free list is empty.
package pool

import "errors"

// ErrCapacityExceeded is returned by Get when the pool has a configured
// maximum number of live values and that maximum has been reached with
// no recycled value available.
var ErrCapacityExceeded = errors.New("pool: capacity exceeded")

// Pool hands out values of type T, preferring to recycle a previously
// returned value over constructing a new one.
type Pool[T any] struct {
	free    []T
	newFn   func() T
	live    int
	maxLive int // 0 means unbounded.
}

// New creates a pool that constructs new values with newFn when no
// recycled value is available.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{newFn: newFn}
}

// WithMaxLive bounds the number of values the pool will have live
// (handed out and not yet returned) at once. A value of 0 (the default)
// means unbounded. Returns the pool for chaining.
func (p *Pool[T]) WithMaxLive(n int) *Pool[T] {
	p.maxLive = n

	return p
}

// Get returns a recycled value if one is available, otherwise
// constructs a new one. Returns ErrCapacityExceeded if the pool has a
// configured maximum and is at capacity with nothing to recycle.
func (p *Pool[T]) Get() (T, error) {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free = p.free[:n-1]
		p.live++

		return v, nil
	}

	if p.maxLive > 0 && p.live >= p.maxLive {
		var zero T

		return zero, ErrCapacityExceeded
	}

	p.live++

	return p.newFn(), nil
}

// Put returns a value to the pool for later reuse by Get.
//
// The caller must not use v again until it is handed back out by Get.
func (p *Pool[T]) Put(v T) {
	p.live--
	p.free = append(p.free, v)
}

// Live returns the number of values currently handed out and not yet
// returned via Put.
func (p *Pool[T]) Live() int {
	return p.live
}

// Free returns the number of recycled values available for reuse.
func (p *Pool[T]) Free() int {
	return len(p.free)
}
