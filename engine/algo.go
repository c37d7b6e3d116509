package engine

import (
	"fmt"

	"github.com/qntx/lazyseq/pivot"
	"github.com/qntx/lazyseq/util"
)

// --------------------------------------------------------------------------------
// Comparator capability wrappers

// lt invokes the comparator's Less predicate, converting a panic or a
// returned error alike into an ErrComparatorFailure-wrapped error.
func (e *Engine[T]) lt(x, y T) (bool, error) {
	ok, err := util.SafeCall(func() (bool, error) { return e.cap.Less(x, y) })
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrComparatorFailure, err)
	}

	return ok, nil
}

// eq invokes the comparator's Equal predicate, with the same failure
// handling as lt.
func (e *Engine[T]) eq(x, y T) (bool, error) {
	ok, err := util.SafeCall(func() (bool, error) { return e.cap.Equal(x, y) })
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrComparatorFailure, err)
	}

	return ok, nil
}

// --------------------------------------------------------------------------------
// Partitioning and selection (spec §4.2.4)

// pickPivot returns a uniformly random index in [lo, hi).
func (e *Engine[T]) pickPivot(lo, hi int) int {
	return lo + e.rng.IntN(hi-lo)
}

// partition runs a Lomuto-style partition of e.a[lo:hi) around a
// randomly chosen pivot element, returning the pivot's final index piv:
// elements in [lo, piv) are < A[piv]; elements in (piv, hi) are ≥
// A[piv].
//
// If the comparator fails partway through, e.a[lo:hi) is restored to
// its pre-call contents before the error is returned — per spec §7, a
// ComparatorFailure must never leave a torn partition.
func (e *Engine[T]) partition(lo, hi int) (int, error) {
	pivIdx := e.pickPivot(lo, hi)

	backup := make([]T, hi-lo)
	copy(backup, e.a[lo:hi])

	pivotVal := e.a[pivIdx]
	e.a[pivIdx], e.a[hi-1] = e.a[hi-1], e.a[pivIdx]

	store := lo

	for i := lo; i < hi-1; i++ {
		less, err := e.lt(e.a[i], pivotVal)
		if err != nil {
			copy(e.a[lo:hi], backup)

			return 0, err
		}

		if less {
			e.a[i], e.a[store] = e.a[store], e.a[i]
			store++
		}
	}

	e.a[store], e.a[hi-1] = e.a[hi-1], e.a[store]

	return store, nil
}

// insertionSort sorts e.a[lo:hi) in place by nondecreasing order.
func (e *Engine[T]) insertionSort(lo, hi int) error {
	for i := lo + 1; i < hi; i++ {
		for j := i; j > lo; j-- {
			less, err := e.lt(e.a[j], e.a[j-1])
			if err != nil {
				return err
			}

			if !less {
				break
			}

			e.a[j], e.a[j-1] = e.a[j-1], e.a[j]
		}
	}

	return nil
}

// quicksort sorts e.a[lo:hi) in place with ordinary recursive
// quicksort; unlike sortPoint's quickselect, it does not track pivots.
func (e *Engine[T]) quicksort(lo, hi int) error {
	if hi-lo <= e.sortThresh {
		return e.insertionSort(lo, hi)
	}

	piv, err := e.partition(lo, hi)
	if err != nil {
		return err
	}

	if err := e.quicksort(lo, piv); err != nil {
		return err
	}

	return e.quicksort(piv+1, hi)
}

// --------------------------------------------------------------------------------
// uniq_pivots (spec §4.1)

// uniqPivots compares A[left.idx] with A[mid.idx], and A[mid.idx] with
// A[right.idx], by equality. On a match, the matched neighbor's flags
// propagate onto mid and the neighbor is deleted. Sentinel indices skip
// their respective comparison. The two returned booleans report which
// neighbor (if either) was deleted, so the caller can tell when a
// boundary it still intends to use has gone stale.
func (e *Engine[T]) uniqPivots(left, mid, right *pivot.Node) (leftDeleted, rightDeleted bool, err error) {
	if left.Idx != pivot.NegInf {
		eq, cerr := e.eq(e.a[left.Idx], e.a[mid.Idx])
		if cerr != nil {
			return false, false, cerr
		}

		if eq {
			mid.Flags |= left.Flags

			if derr := e.tree.Delete(left); derr != nil {
				return false, false, fmt.Errorf("%w: %w", ErrAllocationFailure, derr)
			}

			leftDeleted = true
		}
	}

	if right.Idx != e.Len() {
		eq, cerr := e.eq(e.a[mid.Idx], e.a[right.Idx])
		if cerr != nil {
			return leftDeleted, false, cerr
		}

		if eq {
			mid.Flags |= right.Flags

			if derr := e.tree.Delete(right); derr != nil {
				return leftDeleted, false, fmt.Errorf("%w: %w", ErrAllocationFailure, derr)
			}

			rightDeleted = true
		}
	}

	return leftDeleted, rightDeleted, nil
}

// --------------------------------------------------------------------------------
// sort_point (spec §4.2.1)

// SortPoint ensures A[k] is the k-th order statistic of A, running only
// the partitioning work needed to place it.
func (e *Engine[T]) SortPoint(k int) error {
	left, right := e.tree.Bound(k)

	if left.Idx == k {
		return nil
	}

	if right.Flags.Has(pivot.SortedRight) {
		return nil
	}

	for right.Idx-left.Idx-1 > e.sortThresh {
		piv, err := e.partition(left.Idx+1, right.Idx)
		if err != nil {
			return err
		}

		newNode, err := e.tree.Insert(piv, pivot.Flag(0), left)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAllocationFailure, err)
		}

		leftDel, rightDel, err := e.uniqPivots(left, newNode, right)
		if err != nil {
			return err
		}

		switch {
		case piv < k:
			left = newNode

			if rightDel {
				left, right = e.tree.Bound(k)
			}
		case piv > k:
			right = newNode

			if leftDel {
				left, right = e.tree.Bound(k)
			}
		default:
			return nil
		}
	}

	if err := e.insertionSort(left.Idx+1, right.Idx); err != nil {
		return err
	}

	left.Flags |= pivot.SortedLeft
	right.Flags |= pivot.SortedRight

	return e.tree.Depivot(left, right)
}

// --------------------------------------------------------------------------------
// sort_range (spec §4.2.2)

// SortRange ensures A[a:b) is sorted.
func (e *Engine[T]) SortRange(a, b int) error {
	if err := e.SortPoint(a); err != nil {
		return err
	}

	if err := e.SortPoint(b); err != nil {
		return err
	}

	cur, _ := e.tree.Bound(a)

	for cur.Idx < b {
		nxt := e.tree.Succ(cur)
		if nxt == nil {
			break
		}

		if !cur.Flags.Has(pivot.SortedLeft) {
			if err := e.quicksort(cur.Idx+1, nxt.Idx); err != nil {
				return err
			}

			cur.Flags |= pivot.SortedLeft
			nxt.Flags |= pivot.SortedRight
		}

		toDelete := cur
		cur = nxt

		if toDelete.Flags.Has(pivot.SortedLeft|pivot.SortedRight) && !e.tree.IsSentinel(toDelete) {
			if err := e.tree.Delete(toDelete); err != nil {
				return err
			}
		}
	}

	if cur.Flags.Has(pivot.SortedLeft|pivot.SortedRight) && !e.tree.IsSentinel(cur) {
		if err := e.tree.Delete(cur); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------------
// find_item (spec §4.2.3)

// findItemBound descends the tree keyed by lt(A[node.idx], x) rather
// than by array index, returning the pivots immediately surrounding
// where x would sit. The -1 sentinel always compares less than x; the N
// sentinel always compares greater.
func (e *Engine[T]) findItemBound(x T) (left, right *pivot.Node, err error) {
	node := e.tree.Root()

	for node != nil {
		var less bool

		switch node.Idx {
		case pivot.NegInf:
			less = true
		case e.Len():
			less = false
		default:
			less, err = e.lt(e.a[node.Idx], x)
			if err != nil {
				return nil, nil, err
			}
		}

		if less {
			left = node
			node = node.Right
		} else {
			right = node
			node = node.Left
		}
	}

	return left, right, nil
}

// candidateAt folds node into a running "smallest index seen equal to
// x" candidate. It is how FindItem avoids losing track of an x match
// that lands exactly on a pivot boundary — such an index sits outside
// the open interval the final linear scan covers.
func (e *Engine[T]) candidateAt(candidate int, node *pivot.Node, x T) (int, error) {
	if node.Idx == pivot.NegInf || node.Idx == e.Len() {
		return candidate, nil
	}

	eq, err := e.eq(e.a[node.Idx], x)
	if err != nil {
		return 0, err
	}

	if eq && (candidate == -1 || node.Idx < candidate) {
		candidate = node.Idx
	}

	return candidate, nil
}

// FindItem returns the smallest index k with eq(x, A[k]), or
// ErrNotFound if no element compares equal to x.
func (e *Engine[T]) FindItem(x T) (int, error) {
	left, right, err := e.findItemBound(x)
	if err != nil {
		return 0, err
	}

	candidate := -1

	candidate, err = e.candidateAt(candidate, right, x)
	if err != nil {
		return 0, err
	}

	lo, hi := left.Idx, right.Idx

	if !left.Flags.Has(pivot.SortedLeft) {
		for right.Idx-left.Idx-1 > e.sortThresh {
			piv, perr := e.partition(left.Idx+1, right.Idx)
			if perr != nil {
				return 0, perr
			}

			newNode, ierr := e.tree.Insert(piv, pivot.Flag(0), left)
			if ierr != nil {
				return 0, fmt.Errorf("%w: %w", ErrAllocationFailure, ierr)
			}

			leftDel, rightDel, uerr := e.uniqPivots(left, newNode, right)
			if uerr != nil {
				return 0, uerr
			}

			less, lerr := e.lt(e.a[piv], x)
			if lerr != nil {
				return 0, lerr
			}

			if less {
				left = newNode

				if rightDel {
					if left, right, err = e.findItemBound(x); err != nil {
						return 0, err
					}
				}
			} else {
				right = newNode

				if leftDel {
					if left, right, err = e.findItemBound(x); err != nil {
						return 0, err
					}
				}
			}

			if candidate, err = e.candidateAt(candidate, right, x); err != nil {
				return 0, err
			}
		}

		if err := e.insertionSort(left.Idx+1, right.Idx); err != nil {
			return 0, err
		}

		left.Flags |= pivot.SortedLeft
		right.Flags |= pivot.SortedRight

		// Depivot may delete left or right, which resets its Idx, so the
		// scan bounds are taken before it runs.
		lo, hi = left.Idx, right.Idx

		if err := e.tree.Depivot(left, right); err != nil {
			return 0, err
		}
	}

	for i := lo + 1; i < hi; i++ {
		eq, err := e.eq(x, e.a[i])
		if err != nil {
			return 0, err
		}

		if eq {
			return i, nil
		}
	}

	if candidate != -1 {
		return candidate, nil
	}

	return 0, ErrNotFound
}
