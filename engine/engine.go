// Package engine implements the partial-sort engine: an element array
// that is progressively rearranged in place, paired with a pivot index
// tree (package pivot) that records what is known about the array's
// sortedness. Every user-visible query reduces to calls into this
// package's SortPoint, SortRange, and FindItem.
//
// Not thread-safe; a single Engine instance must not be driven
// concurrently, though distinct instances are fully independent.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/qntx/lazyseq/cmp"
	"github.com/qntx/lazyseq/internal/pool"
	"github.com/qntx/lazyseq/pivot"
)

// --------------------------------------------------------------------------------
// Constants and Errors

// Default tuning constants, per spec §4.2.4.
const (
	DefaultSortThresh   = 16
	DefaultContigThresh = 8
)

// Predefined errors surfaced by Engine operations.
var (
	// ErrComparatorFailure wraps an error raised by the caller-supplied
	// Less/Equal capability.
	ErrComparatorFailure = errors.New("engine: comparator failure")

	// ErrIndexOutOfRange is returned when a caller-supplied index falls
	// outside [-N, N).
	ErrIndexOutOfRange = errors.New("engine: index out of range")

	// ErrNotFound is returned by FindItem (and so IndexOf) when no
	// element compares equal to the target.
	ErrNotFound = errors.New("engine: element not found")

	// ErrAllocationFailure wraps a pivot allocation failure from the
	// node pool, per spec §7's AllocationFailure error kind.
	ErrAllocationFailure = errors.New("engine: pivot allocation failed")
)

// --------------------------------------------------------------------------------
// Types

// Engine couples an element array with a pivot.Tree recording what is
// known about its sortedness. It owns A exclusively for its lifetime;
// callers must copy in/out at the facade boundary (spec §9).
type Engine[T any] struct {
	a    []T
	tree *pivot.Tree
	pool *pool.Pool[*pivot.Node]
	cap  cmp.Capability[T]
	rng  *rand.Rand

	sortThresh   int
	contigThresh int
}

// --------------------------------------------------------------------------------
// Constructors

// New creates an engine over elements using the built-in ordering for
// cmp.Ordered types. elements is taken by reference; the engine mutates
// it in place.
func New[T cmp.Ordered](elements []T, opts ...Option[T]) (*Engine[T], error) {
	return NewWith(elements, cmp.FromOrdered[T](), opts...)
}

// NewWith creates an engine over elements using a caller-supplied
// comparator capability, for element types with no natural ordering.
func NewWith[T any](elements []T, capability cmp.Capability[T], opts ...Option[T]) (*Engine[T], error) {
	e := &Engine[T]{
		a:            elements,
		cap:          capability,
		sortThresh:   DefaultSortThresh,
		contigThresh: DefaultContigThresh,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.pool == nil {
		e.pool = pool.New(func() *pivot.Node { return new(pivot.Node) })
	}

	tree, err := pivot.New(len(elements), e.rng.Uint64, e.pool)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}

	e.tree = tree

	return e, nil
}

// --------------------------------------------------------------------------------
// Accessors

// Len returns N, the fixed number of elements the engine was built
// with.
func (e *Engine[T]) Len() int {
	return len(e.a)
}

// Tree exposes the underlying pivot tree for diagnostics (spec §6's
// `_pivots()`).
func (e *Engine[T]) Tree() *pivot.Tree {
	return e.tree
}

// Array exposes the current state of the underlying element array. The
// caller must not retain or mutate the returned slice's backing array
// beyond read-only inspection, since the engine continues to own it.
func (e *Engine[T]) Array() []T {
	return e.a
}

// ContigThresh returns the maximum |step| for which the facade should
// still treat a strided slice request as contiguous.
func (e *Engine[T]) ContigThresh() int {
	return e.contigThresh
}

// Equal invokes the engine's equality capability directly. Most facade
// operations reduce entirely to SortPoint/SortRange/FindItem, but
// CountOf also needs to test elements pairwise as it expands past the
// match FindItem locates.
func (e *Engine[T]) Equal(x, y T) (bool, error) {
	return e.eq(x, y)
}

// NormalizeIndex converts a user-facing index (negatives counting from
// the end, per spec §6) into an in-range array index, or
// ErrIndexOutOfRange.
func (e *Engine[T]) NormalizeIndex(k int) (int, error) {
	n := len(e.a)
	if k < -n || k >= n {
		return 0, fmt.Errorf("%w: index %d for length %d", ErrIndexOutOfRange, k, n)
	}

	if k < 0 {
		k += n
	}

	return k, nil
}

// --------------------------------------------------------------------------------
// Options

// Option configures an Engine at construction.
type Option[T any] func(*Engine[T])

// WithSortThresh overrides DefaultSortThresh: below this many elements,
// a region is finished with insertion sort instead of further
// partitioning.
func WithSortThresh[T any](n int) Option[T] {
	return func(e *Engine[T]) { e.sortThresh = n }
}

// WithContigThresh overrides DefaultContigThresh: the maximum |step|
// for which a strided slice request is still treated as contiguous.
func WithContigThresh[T any](n int) Option[T] {
	return func(e *Engine[T]) { e.contigThresh = n }
}

// WithSeed makes the engine's pivot priorities and pivot-selection
// draws deterministic, for reproducible tests (spec §9's per-instance
// PRNG design note).
func WithSeed[T any](seed1, seed2 uint64) Option[T] {
	return func(e *Engine[T]) { e.rng = rand.New(rand.NewPCG(seed1, seed2)) }
}

// WithMaxPoolCapacity bounds the number of pivot nodes the engine may
// have live at once, surfacing ErrAllocationFailure once the bound is
// reached instead of growing without limit.
func WithMaxPoolCapacity[T any](n int) Option[T] {
	return func(e *Engine[T]) {
		e.pool = pool.New(func() *pivot.Node { return new(pivot.Node) }).WithMaxLive(n)
	}
}
