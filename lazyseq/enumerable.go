package lazyseq

import "github.com/qntx/lazyseq/container"

var _ container.EnumerableWithIndex[int] = (*Sequence[int])(nil)

// Each invokes fn once for each element in sorted order, lazily sorting
// the sequence as it goes via Iterator.
//
// container.EnumerableWithIndex has no error return, so a comparator or
// allocation failure partway through is reported by panicking with a
// string that carries the underlying error's message, the same
// discipline Iterator.Value uses for an invalid position.
func (s *Sequence[T]) Each(fn func(index int, value T)) {
	it := s.Iterator()
	for it.Next() {
		fn(it.Index(), it.Value())
	}

	if err := it.Err(); err != nil {
		panic("lazyseq: Each: " + err.Error())
	}
}

// Any reports whether fn returns true for at least one element,
// visited in sorted order, stopping at the first match.
func (s *Sequence[T]) Any(fn func(index int, value T) bool) bool {
	it := s.Iterator()
	for it.Next() {
		if fn(it.Index(), it.Value()) {
			return true
		}
	}

	if err := it.Err(); err != nil {
		panic("lazyseq: Any: " + err.Error())
	}

	return false
}

// All reports whether fn returns true for every element, visited in
// sorted order, stopping at the first failure.
func (s *Sequence[T]) All(fn func(index int, value T) bool) bool {
	it := s.Iterator()
	for it.Next() {
		if !fn(it.Index(), it.Value()) {
			return false
		}
	}

	if err := it.Err(); err != nil {
		panic("lazyseq: All: " + err.Error())
	}

	return true
}

// Find returns the first index and value, in sorted order, for which fn
// returns true, or (-1, zero value) if none does.
func (s *Sequence[T]) Find(fn func(index int, value T) bool) (int, T) {
	it := s.Iterator()
	for it.Next() {
		if fn(it.Index(), it.Value()) {
			return it.Index(), it.Value()
		}
	}

	if err := it.Err(); err != nil {
		panic("lazyseq: Find: " + err.Error())
	}

	var zero T

	return -1, zero
}
