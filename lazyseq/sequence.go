// Package lazyseq provides Sequence, a mutable indexable container that
// behaves as if its elements were fully sorted but performs only the
// sorting work needed to answer the queries actually made.
//
// Sequence is a thin facade over package engine's partial-sort engine:
// every query below reduces to calls into SortPoint, SortRange, or
// FindItem (one or two for most; one SortPoint per visited position for
// CountOf and for a strided GetSlice).
package lazyseq

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qntx/lazyseq/cmp"
	"github.com/qntx/lazyseq/container"
	"github.com/qntx/lazyseq/engine"
	"github.com/qntx/lazyseq/pivot"
)

// --------------------------------------------------------------------------------
// Constants and Errors

// Predefined errors for Sequence operations. Construction failures and
// comparator failures pass through from package engine unwrapped, so
// callers can errors.Is against engine.ErrIndexOutOfRange,
// engine.ErrComparatorFailure, engine.ErrAllocationFailure, and
// engine.ErrNotFound as well as the ones declared here.
var (
	// ErrInvalidStep is returned by GetSlice when step is zero.
	ErrInvalidStep = errors.New("lazyseq: slice step must not be zero")
)

// --------------------------------------------------------------------------------
// Interface Assertions

var (
	_ container.Container[int] = (*Sequence[int])(nil)
)

// --------------------------------------------------------------------------------
// Types

// Sequence is a lazily sorted, indexable sequence of N elements.
//
// Not thread-safe; a single Sequence must not be driven concurrently,
// though distinct instances are fully independent.
type Sequence[T any] struct {
	eng  *engine.Engine[T]
	cap  cmp.Capability[T]
	opts []engine.Option[T]
}

// --------------------------------------------------------------------------------
// Constructors

// New creates a Sequence over elements using the built-in ordering for
// cmp.Ordered types. elements is taken by reference; the Sequence
// mutates it in place as queries are answered.
func New[T cmp.Ordered](elements []T, opts ...engine.Option[T]) (*Sequence[T], error) {
	return NewWith(elements, cmp.FromOrdered[T](), opts...)
}

// NewWith creates a Sequence using a caller-supplied comparator
// capability, for element types with no natural ordering.
func NewWith[T any](elements []T, capability cmp.Capability[T], opts ...engine.Option[T]) (*Sequence[T], error) {
	eng, err := engine.NewWith(elements, capability, opts...)
	if err != nil {
		return nil, err
	}

	return &Sequence[T]{eng: eng, cap: capability, opts: opts}, nil
}

// --------------------------------------------------------------------------------
// Public Methods

// Get returns the element at position k in sorted order. Negative k
// count from the end, per Python-style indexing.
func (s *Sequence[T]) Get(k int) (T, error) {
	var zero T

	idx, err := s.eng.NormalizeIndex(k)
	if err != nil {
		return zero, err
	}

	if err := s.eng.SortPoint(idx); err != nil {
		return zero, err
	}

	return s.eng.Array()[idx], nil
}

// GetSlice materializes A[a:b:step] with Python-style slice semantics:
// a, b may be negative or out of range and are clamped; step may be
// negative. If |step| is within the engine's contiguous-step threshold,
// the whole covered span is sorted in one SortRange call; otherwise each
// visited position is sorted individually with SortPoint.
func (s *Sequence[T]) GetSlice(a, b, step int) ([]T, error) {
	if step == 0 {
		return nil, ErrInvalidStep
	}

	n := s.eng.Len()
	start, stop := normalizeSliceBound(n, a, step), normalizeSliceBound(n, b, step)

	idxs := sliceIndices(start, stop, step)
	if len(idxs) == 0 {
		return []T{}, nil
	}

	contig := s.eng.ContigThresh()

	if step >= -contig && step <= contig {
		lo, hi := idxs[0], idxs[len(idxs)-1]
		if lo > hi {
			lo, hi = hi, lo
		}

		if err := s.eng.SortRange(lo, hi+1); err != nil {
			return nil, err
		}
	} else {
		for _, idx := range idxs {
			if err := s.eng.SortPoint(idx); err != nil {
				return nil, err
			}
		}
	}

	arr := s.eng.Array()
	out := make([]T, len(idxs))

	for i, idx := range idxs {
		out[i] = arr[idx]
	}

	return out, nil
}

// Between returns the elements currently occupying [a,b) in undefined
// order: only the boundary positions a and b are sorted into place, not
// the interior. a and b are clamped to [0, Len()].
func (s *Sequence[T]) Between(a, b int) ([]T, error) {
	n := s.eng.Len()
	a = clampInt(a, 0, n)
	b = clampInt(b, 0, n)

	if a > b {
		a, b = b, a
	}

	if err := s.eng.SortPoint(a); err != nil {
		return nil, err
	}

	if err := s.eng.SortPoint(b); err != nil {
		return nil, err
	}

	arr := s.eng.Array()
	out := make([]T, b-a)
	copy(out, arr[a:b])

	return out, nil
}

// IndexOf returns the smallest index k with A[k] == x, or
// engine.ErrNotFound.
func (s *Sequence[T]) IndexOf(x T) (int, error) {
	return s.eng.FindItem(x)
}

// CountOf returns the number of elements equal to x. Unlike IndexOf, a
// missing element is reported as zero rather than an error, per spec
// §7.
func (s *Sequence[T]) CountOf(x T) (int, error) {
	idx, err := s.eng.FindItem(x)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			return 0, nil
		}

		return 0, err
	}

	n := s.eng.Len()
	count := 1

	for i := idx + 1; i < n; i++ {
		if err := s.eng.SortPoint(i); err != nil {
			return 0, err
		}

		eq, err := s.eng.Equal(x, s.eng.Array()[i])
		if err != nil {
			return 0, err
		}

		if !eq {
			break
		}

		count++
	}

	return count, nil
}

// Contains reports whether any element equals x.
func (s *Sequence[T]) Contains(x T) (bool, error) {
	_, err := s.eng.FindItem(x)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Len returns N, the fixed number of elements in the sequence.
func (s *Sequence[T]) Len() int {
	return s.eng.Len()
}

// Pivots returns every recorded pivot in ascending idx order: a
// diagnostic-only view of the tree's current state.
func (s *Sequence[T]) Pivots() []pivot.Descriptor {
	return s.eng.Tree().Pivots()
}

// --------------------------------------------------------------------------------
// container.Container[T] conformance

// Empty reports whether the sequence has no elements.
func (s *Sequence[T]) Empty() bool {
	return s.eng.Len() == 0
}

// Size returns the number of elements in the sequence, identical to
// Len.
func (s *Sequence[T]) Size() int {
	return s.eng.Len()
}

// Clear discards the sequence's elements, leaving it empty.
//
// The underlying engine (and its pivot pool) is rebuilt from scratch
// with the same comparator and options the sequence was constructed
// with; since that combination already succeeded once, to build a
// sequence with fewer elements than before cannot fail.
func (s *Sequence[T]) Clear() {
	eng, err := engine.NewWith([]T{}, s.cap, s.opts...)
	if err != nil {
		panic(fmt.Sprintf("lazyseq: Clear could not rebuild an engine that originally constructed successfully: %v", err))
	}

	s.eng = eng
}

// Values returns the elements currently occupying the sequence's
// backing array, in whatever order they currently happen to be in.
// Per the Container interface, element order is implementation
// dependent; Values deliberately does not force a sort, consistent with
// the rest of the package doing only the work a query actually
// requires.
func (s *Sequence[T]) Values() []T {
	arr := s.eng.Array()
	out := make([]T, len(arr))
	copy(out, arr)

	return out
}

// String renders the sequence's current backing array for debugging.
// As with Values, this does not force a sort.
func (s *Sequence[T]) String() string {
	arr := s.eng.Array()
	values := make([]string, len(arr))

	for i, v := range arr {
		values[i] = fmt.Sprintf("%v", v)
	}

	return "Sequence\n" + strings.Join(values, ", ")
}

// --------------------------------------------------------------------------------
// Slice normalization helpers (Python slice.indices semantics)

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}

// normalizeSliceBound clamps a single slice endpoint the way Python's
// slice.indices(n) does: negative values count from the end, and the
// valid clamp range depends on step's sign.
func normalizeSliceBound(n, x, step int) int {
	if x < 0 {
		x += n

		if x < 0 {
			if step < 0 {
				return -1
			}

			return 0
		}

		return x
	}

	if x >= n {
		if step < 0 {
			return n - 1
		}

		return n
	}

	return x
}

// sliceIndices enumerates the positions visited by range(start, stop,
// step), Python-style.
func sliceIndices(start, stop, step int) []int {
	var out []int

	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}

	return out
}
