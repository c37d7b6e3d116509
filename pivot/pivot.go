// Package pivot implements the pivot index tree: a treap keyed on array
// positions that records what is known about an array's sortedness.
//
// A Tree never stores elements itself — only positions ("pivots") into
// an array owned by a caller, plus flags describing which side of each
// pivot is known to be sorted. The engine package drives a Tree and an
// element array together; pivot only maintains the tree's BST/heap
// shape and its two permanent sentinels.
package pivot

// Flag describes what is known about the regions flanking a pivot.
type Flag uint8

const (
	// SortedLeft means the region strictly to the right of this pivot,
	// up to (but not including) the next pivot, is in nondecreasing
	// order.
	SortedLeft Flag = 1 << iota

	// SortedRight means the region strictly to the left of this pivot,
	// down to (but not including) the previous pivot, is in
	// nondecreasing order.
	SortedRight
)

// Has reports whether f contains all bits of x.
func (f Flag) Has(x Flag) bool {
	return f&x == x
}

// String renders a flag set for diagnostics.
func (f Flag) String() string {
	switch {
	case f.Has(SortedLeft | SortedRight):
		return "SORTED_BOTH"
	case f.Has(SortedLeft):
		return "SORTED_LEFT"
	case f.Has(SortedRight):
		return "SORTED_RIGHT"
	default:
		return "UNSORTED"
	}
}

// NegInf is the idx of the low sentinel, preceding every real array
// index; the high sentinel's idx is the tree's size (len(A)), following
// every real array index, and has no named constant. Both sentinels are
// modeled as ordinary Nodes rather than nil checks, per the "sentinels
// as real pivots" design (see New in tree.go).
const NegInf = -1

// Node is a single pivot: a recorded array position, what is known
// about its flanking regions, and this treap's BST/heap links.
//
// Parent is a back-reference for O(1) upward navigation; it is not an
// ownership edge (the tree's owning references are Left/Right/root),
// and Go's garbage collector — not manual frees — reclaims discarded
// nodes (or internal/pool recycles them), so the cyclic Parent pointer
// never needs to be unwound by hand.
type Node struct {
	Idx      int
	Flags    Flag
	Priority uint64

	Parent *Node
	Left   *Node
	Right  *Node
}

// reset clears a node's links and state so it can be handed out again
// by internal/pool without leaking a reference to its old position in
// the tree.
func (n *Node) reset() {
	n.Idx = 0
	n.Flags = 0
	n.Priority = 0
	n.Parent = nil
	n.Left = nil
	n.Right = nil
}

// IsSentinel reports whether n is one of the tree's two permanent
// boundary pivots.
func (n *Node) IsSentinel(size int) bool {
	return n.Idx == NegInf || n.Idx == size
}

// Descriptor is the diagnostic, read-only view of a pivot returned by
// Tree.Pivots — an (idx, flag-name) pair in in-order traversal order,
// matching spec §6's `_pivots()` operation.
type Descriptor struct {
	Idx   int
	Flags Flag
}
