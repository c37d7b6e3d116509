package pivot

import (
	"errors"
	"fmt"

	"github.com/qntx/lazyseq/internal/pool"
)

// Errors returned by Tree operations.
var (
	// ErrDuplicateIdx is returned by Insert when idx is already present.
	ErrDuplicateIdx = errors.New("pivot: idx already present in tree")
	// ErrSentinelIdx is returned when a caller attempts to delete one
	// of the two permanent boundary pivots.
	ErrSentinelIdx = errors.New("pivot: sentinel pivots cannot be deleted")
	// ErrInvariant is raised by CheckInvariants when the treap's
	// BST/heap shape has been corrupted.
	ErrInvariant = errors.New("pivot: invariant violation")
)

// Tree is a treap whose keys are array positions ("pivots"). It never
// stores element values; those live in the caller's array.
//
// Node shape and the parent-back-reference discipline are adapted from
// rbtree.Tree/rbtree.Node: a BST ordered on a single integer key,
// rebalanced after each structural change, with every touched node's
// Parent kept in sync.
type Tree struct {
	root *Node
	neg  *Node // the permanent -1 sentinel.
	pos  *Node // the permanent N sentinel.
	size int

	priorityFn func() uint64
	pool       *pool.Pool[*Node]
}

// New builds a tree of size elements (valid indices [0, size)) with
// just the two sentinel pivots -1 and size installed, neither carrying
// any flags: nothing is known to be sorted yet, so neither sentinel may
// start claiming a flanking region is.
//
// priorityFn supplies a fresh random priority for each inserted node;
// the engine package wires this to a per-instance PRNG (spec §9's
// design note (a)). p recycles deleted nodes; pass pool.New(func()
// *Node { return new(Node) }) for an unbounded pool.
func New(size int, priorityFn func() uint64, p *pool.Pool[*Node]) (*Tree, error) {
	t := &Tree{priorityFn: priorityFn, pool: p}

	neg, err := t.newNode(NegInf, 0)
	if err != nil {
		return nil, fmt.Errorf("pivot: allocating -1 sentinel: %w", err)
	}

	pos, err := t.newNode(size, 0)
	if err != nil {
		return nil, fmt.Errorf("pivot: allocating %d sentinel: %w", size, err)
	}

	t.neg, t.pos = neg, pos
	t.root = neg
	t.attachRight(neg, pos)
	t.bubbleUp(pos)
	t.size = 2

	return t, nil
}

// Size returns the number of pivots currently recorded, sentinels
// included.
func (t *Tree) Size() int {
	return t.size
}

// Root returns the tree's root node, for diagnostics.
func (t *Tree) Root() *Node {
	return t.root
}

// Neg and Pos return the tree's two permanent sentinel pivots.
func (t *Tree) Neg() *Node { return t.neg }
func (t *Tree) Pos() *Node { return t.pos }

// IsSentinel reports whether n is one of this tree's two permanent
// boundary pivots.
func (t *Tree) IsSentinel(n *Node) bool {
	return n == t.neg || n == t.pos
}

// newNode draws a node from the pool and initializes its fields,
// leaving Parent/Left/Right nil for the caller to link in.
func (t *Tree) newNode(idx int, flags Flag) (*Node, error) {
	n, err := t.pool.Get()
	if err != nil {
		return nil, err
	}

	n.reset()
	n.Idx = idx
	n.Flags = flags
	n.Priority = t.priorityFn()

	return n, nil
}

// --------------------------------------------------------------------------------
// Insert

// Insert links a new pivot at idx with the given flags into the tree,
// starting its BST descent from hint (or the root, if hint is nil).
//
// hint is an optimization only: per spec §4.1, walking from the root
// must give the same result as walking from hint. This holds whenever
// hint is one of the two in-order neighbors immediately bounding idx —
// the case the engine package always supplies — because for any two
// in-order-adjacent existing pivots, ordinary BST descent started at
// either one terminates at the correct empty child slot for a key
// strictly between them.
func (t *Tree) Insert(idx int, flags Flag, hint *Node) (*Node, error) {
	if t.find(idx) != nil {
		return nil, ErrDuplicateIdx
	}

	n, err := t.newNode(idx, flags)
	if err != nil {
		return nil, err
	}

	cur := hint
	if cur == nil {
		cur = t.root
	}

	for {
		if idx < cur.Idx {
			if cur.Left == nil {
				t.attachLeft(cur, n)

				break
			}

			cur = cur.Left
		} else {
			if cur.Right == nil {
				t.attachRight(cur, n)

				break
			}

			cur = cur.Right
		}
	}

	t.bubbleUp(n)
	t.size++

	return n, nil
}

// find performs a plain BST lookup by idx, used only to guard against
// duplicate inserts (invariant §3.2).
func (t *Tree) find(idx int) *Node {
	cur := t.root
	for cur != nil {
		switch {
		case idx == cur.Idx:
			return cur
		case idx < cur.Idx:
			cur = cur.Left
		default:
			cur = cur.Right
		}
	}

	return nil
}

func (t *Tree) attachLeft(parent, child *Node) {
	parent.Left = child
	child.Parent = parent
}

func (t *Tree) attachRight(parent, child *Node) {
	parent.Right = child
	child.Parent = parent
}

// bubbleUp restores heap order after n is inserted as a leaf, rotating
// n above its parent while n's priority exceeds it.
func (t *Tree) bubbleUp(n *Node) {
	for n.Parent != nil && n.Priority > n.Parent.Priority {
		if n == n.Parent.Left {
			t.rotateRight(n.Parent)
		} else {
			t.rotateLeft(n.Parent)
		}
	}
}

// --------------------------------------------------------------------------------
// Rotations — adapted from rbtree.rotateLeft/rotateRight/replaceNode.

func (t *Tree) rotateLeft(n *Node) {
	r := n.Right
	t.replaceNode(n, r)

	n.Right = r.Left
	if r.Left != nil {
		r.Left.Parent = n
	}

	r.Left = n
	n.Parent = r
}

func (t *Tree) rotateRight(n *Node) {
	l := n.Left
	t.replaceNode(n, l)

	n.Left = l.Right
	if l.Right != nil {
		l.Right.Parent = n
	}

	l.Right = n
	n.Parent = l
}

func (t *Tree) replaceNode(oldNode, newNode *Node) {
	if oldNode.Parent == nil {
		t.root = newNode
	} else if oldNode == oldNode.Parent.Left {
		oldNode.Parent.Left = newNode
	} else {
		oldNode.Parent.Right = newNode
	}

	if newNode != nil {
		newNode.Parent = oldNode.Parent
	}
}

// --------------------------------------------------------------------------------
// Delete

// Delete removes n from the tree, merging its children with
// mergeTrees, and returns n to the pool. Sentinels may never be passed.
func (t *Tree) Delete(n *Node) error {
	if t.IsSentinel(n) {
		return ErrSentinelIdx
	}

	merged := t.mergeTrees(n.Left, n.Right)
	t.replaceNode(n, merged)

	n.reset()
	t.pool.Put(n)
	t.size--

	return nil
}

// mergeTrees merges two treaps L and R, where every idx in L is less
// than every idx in R, into one treap respecting both BST and heap
// order. The higher-priority root survives, recursing into the side
// that must absorb the other tree.
func (t *Tree) mergeTrees(l, r *Node) *Node {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.Priority > r.Priority:
		l.Right = t.mergeTrees(l.Right, r)
		if l.Right != nil {
			l.Right.Parent = l
		}

		return l
	default:
		r.Left = t.mergeTrees(l, r.Left)
		if r.Left != nil {
			r.Left.Parent = r
		}

		return r
	}
}

// --------------------------------------------------------------------------------
// Queries

// Bound returns the pivots immediately surrounding array index k: the
// greatest recorded idx ≤ k, and the smallest recorded idx > k. If a
// pivot's idx equals k exactly, left is that pivot and right is its
// in-order successor (spec §4.1: "right is unconstrained by the caller
// ... but will be the in-order successor in practice").
func (t *Tree) Bound(k int) (left, right *Node) {
	node := t.root
	for node != nil {
		switch {
		case k == node.Idx:
			return node, t.Succ(node)
		case k < node.Idx:
			right = node
			node = node.Left
		default:
			left = node
			node = node.Right
		}
	}

	return left, right
}

// Succ returns the in-order successor of n within the tree, or nil if
// n is the rightmost pivot.
func (t *Tree) Succ(n *Node) *Node {
	if n.Right != nil {
		m := n.Right
		for m.Left != nil {
			m = m.Left
		}

		return m
	}

	cur := n
	for cur.Parent != nil {
		if cur == cur.Parent.Left {
			return cur.Parent
		}

		cur = cur.Parent
	}

	return nil
}

// Depivot coalesces adjacent sorted regions by deleting whichever of
// left/right has become redundant: left is removed if it also closes a
// sorted region on its own left (SortedRight), and right is removed if
// it also closes one on its own right (SortedLeft). Sentinels are never
// deleted even if their flags would otherwise qualify.
func (t *Tree) Depivot(left, right *Node) error {
	if left != nil && !t.IsSentinel(left) && left.Flags.Has(SortedRight) {
		if err := t.Delete(left); err != nil {
			return fmt.Errorf("pivot: depivot left: %w", err)
		}
	}

	if right != nil && !t.IsSentinel(right) && right.Flags.Has(SortedLeft) {
		if err := t.Delete(right); err != nil {
			return fmt.Errorf("pivot: depivot right: %w", err)
		}
	}

	return nil
}

// --------------------------------------------------------------------------------
// Traversal and diagnostics

// InOrder visits every pivot in ascending idx order, stopping early if
// visit returns false. Traversal is iterative (see nodeStack) so that
// depth is never bounded by Go's call stack.
func (t *Tree) InOrder(visit func(*Node) bool) {
	var stack nodeStack

	cur := t.root

	for cur != nil || !stack.empty() {
		for cur != nil {
			stack.push(cur)
			cur = cur.Left
		}

		cur, _ = stack.pop()

		if !visit(cur) {
			return
		}

		cur = cur.Right
	}
}

// Pivots returns every recorded pivot in ascending idx order, for the
// `_pivots()` diagnostic operation in spec §6.
func (t *Tree) Pivots() []Descriptor {
	out := make([]Descriptor, 0, t.size)
	t.InOrder(func(n *Node) bool {
		out = append(out, Descriptor{Idx: n.Idx, Flags: n.Flags})

		return true
	})

	return out
}

// CheckInvariants verifies the treap's structural invariants — BST
// order on Idx, heap order on Priority, parent-pointer consistency, and
// sentinel presence — independent of the element array the engine
// package layers on top. It is the pivot-only half of spec §7's
// InternalInvariantViolation checks (assert_tree); the ordering of the
// element array is not checked here or anywhere else in the module.
func (t *Tree) CheckInvariants() error {
	if t.neg == nil || t.pos == nil {
		return fmt.Errorf("%w: missing sentinel", ErrInvariant)
	}

	// Heap order and parent-pointer consistency are local properties,
	// checked node-by-node during one iterative pre-order walk.
	var stack nodeStack

	stack.push(t.root)

	count := 0

	for !stack.empty() {
		n, _ := stack.pop()
		count++

		if n.Left != nil {
			if n.Left.Parent != n {
				return fmt.Errorf("%w: node %d's left child has wrong parent pointer", ErrInvariant, n.Idx)
			}

			if n.Left.Priority > n.Priority {
				return fmt.Errorf("%w: node %d violates heap order against left child", ErrInvariant, n.Idx)
			}

			stack.push(n.Left)
		}

		if n.Right != nil {
			if n.Right.Parent != n {
				return fmt.Errorf("%w: node %d's right child has wrong parent pointer", ErrInvariant, n.Idx)
			}

			if n.Right.Priority > n.Priority {
				return fmt.Errorf("%w: node %d violates heap order against right child", ErrInvariant, n.Idx)
			}

			stack.push(n.Right)
		}
	}

	if t.root.Parent != nil {
		return fmt.Errorf("%w: root has a non-nil parent", ErrInvariant)
	}

	if count != t.size {
		return fmt.Errorf("%w: size %d does not match node count %d", ErrInvariant, t.size, count)
	}

	// BST order is a global property: an in-order walk must produce a
	// strictly increasing sequence of idx values.
	prev := -1 - 1 // one below the lowest possible idx (NegInf).
	havePrev := false
	sawNeg := false
	sawPos := false

	var err error

	t.InOrder(func(n *Node) bool {
		if n.Idx == NegInf {
			sawNeg = true
		}

		if n == t.pos {
			sawPos = true
		}

		if havePrev && n.Idx <= prev {
			err = fmt.Errorf("%w: idx %d is not strictly greater than preceding idx %d", ErrInvariant, n.Idx, prev)

			return false
		}

		prev, havePrev = n.Idx, true

		return true
	})

	if err != nil {
		return err
	}

	if !sawNeg {
		return fmt.Errorf("%w: -1 sentinel missing from tree", ErrInvariant)
	}

	if !sawPos {
		return fmt.Errorf("%w: %d sentinel missing from tree", ErrInvariant, t.pos.Idx)
	}

	return nil
}

// String renders the tree's in-order pivot sequence for debugging.
func (t *Tree) String() string {
	s := "Tree["
	first := true

	t.InOrder(func(n *Node) bool {
		if !first {
			s += " "
		}

		first = false
		s += fmt.Sprintf("%d:%s", n.Idx, n.Flags)

		return true
	})

	return s + "]"
}
