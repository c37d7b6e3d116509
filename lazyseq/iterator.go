// Package lazyseq provides a stateful iterator over Sequence, in the
// style of rbtree.Iterator: a cursor with begin/between/end states,
// advanced with Next.
//
// Unlike rbtree's, this iterator does not walk a tree of stored
// elements — it walks array positions, lazily sorting each one into
// place with SortPoint as it is visited. Iterating a Sequence start to
// finish costs exactly what fully sorting it would; iterating a prefix
// costs only that prefix.
package lazyseq

import (
	"errors"

	"github.com/qntx/lazyseq/container"
)

// position mirrors rbtree's iterator state machine.
type position byte

const (
	begin position = iota
	between
	end
)

// ErrInvalidIteratorPosition is raised by Index/Value when the iterator
// is not positioned at a valid element.
var ErrInvalidIteratorPosition = errors.New("iterator accessed at invalid position")

var _ container.IteratorWithIndex[int] = (*Iterator[int])(nil)

// Iterator provides forward traversal over a Sequence's elements in
// sorted order.
type Iterator[T any] struct {
	seq      *Sequence[T]
	index    int
	position position
	err      error
}

// Iterator creates a new iterator over s, starting before the first
// element.
func (s *Sequence[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{seq: s, position: begin}
}

// Next advances the iterator to the next position, sorting it into
// place, and returns true if a next element exists.
func (it *Iterator[T]) Next() bool {
	n := it.seq.Len()

	switch it.position {
	case end:
		return false
	case begin:
		if n == 0 {
			it.position = end

			return false
		}

		it.index = 0
	case between:
		if it.index+1 >= n {
			it.position = end

			return false
		}

		it.index++
	}

	if err := it.seq.eng.SortPoint(it.index); err != nil {
		it.err = err
		it.position = end

		return false
	}

	it.position = between

	return true
}

// Err returns the error that stopped the most recent Next call short of
// the sequence's end, or nil if Next returned false only because
// traversal reached the end.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Value returns the current element. Panics if the iterator is not
// positioned at a valid element.
func (it *Iterator[T]) Value() T {
	if it.position != between {
		panic("lazyseq: " + ErrInvalidIteratorPosition.Error())
	}

	return it.seq.eng.Array()[it.index]
}

// Index returns the current position. Panics if the iterator is not
// positioned at a valid element.
func (it *Iterator[T]) Index() int {
	if it.position != between {
		panic("lazyseq: " + ErrInvalidIteratorPosition.Error())
	}

	return it.index
}

// Begin resets the iterator to before the first element.
func (it *Iterator[T]) Begin() {
	it.index = 0
	it.position = begin
	it.err = nil
}

// First moves the iterator to the first element.
func (it *Iterator[T]) First() bool {
	it.Begin()

	return it.Next()
}

// NextTo advances to the next element satisfying fn, or to the end if
// none does.
func (it *Iterator[T]) NextTo(fn func(index int, value T) bool) bool {
	for it.Next() {
		if fn(it.Index(), it.Value()) {
			return true
		}
	}

	return false
}
