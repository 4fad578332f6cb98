// Package pivottree implements the randomized treap of pivot nodes that
// backs a lazily sorted list's partial-order state. Every non-sentinel
// node records an array position already known to be at its final sorted
// rank; the tree is simultaneously a binary search tree on that position
// and a max-heap on a random priority, giving O(log n) expected depth
// without explicit rebalancing.
//
// The tree always carries two sentinel nodes, at positions -1 and n,
// bounding the array; callers must never delete them.
package pivottree

import (
	"errors"
	"math"
	"math/rand"

	"github.com/golang-collections/collections/stack"
)

// Flags records which side(s) of a pivot are known to be fully sorted.
type Flags uint8

const (
	// SortedLeft means the open interval (idx, successor.idx) is sorted.
	SortedLeft Flags = 1 << iota
	// SortedRight means the open interval (predecessor.idx, idx) is sorted.
	SortedRight
)

// HasLeft reports whether SortedLeft is set.
func (f Flags) HasLeft() bool { return f&SortedLeft != 0 }

// HasRight reports whether SortedRight is set.
func (f Flags) HasRight() bool { return f&SortedRight != 0 }

// Both reports whether both flags are set, i.e. the node is eligible for
// depivoting: its two sides have merged into one sorted region.
func (f Flags) Both() bool { return f&(SortedLeft|SortedRight) == SortedLeft|SortedRight }

// Node is one pivot: a position in the backing array, plus the flags,
// random priority, and BST/heap links the treap needs.
type Node struct {
	Idx      int
	Flags    Flags
	Priority uint64
	Left     *Node
	Right    *Node
	Parent   *Node
}

// ErrDuplicateIdx is returned by Insert when the position is already
// occupied by a pivot. A correctly driven sort_point/sort_range never
// triggers it; seeing it escape to a caller indicates a broken invariant.
var ErrDuplicateIdx = errors.New("pivottree: position already pivoted")

// Tree is the pivot treap for an array of length n.
type Tree struct {
	root *Node
	rng  *rand.Rand
}

// New builds a tree for an array of length n, with sentinel pivots at -1
// and n.
func New(n int, rng *rand.Rand) *Tree {
	t := &Tree{rng: rng}
	neg := t.newNode(-1, 0)
	t.root = neg
	if _, err := t.Insert(n, 0, neg); err != nil {
		// Only reachable if n == -1, which would mean a negative backing
		// array length; callers are required to pass n >= 0.
		panic("pivottree: invalid array length")
	}
	return t
}

func (t *Tree) newNode(idx int, flags Flags) *Node {
	return &Node{Idx: idx, Flags: flags, Priority: t.rng.Uint64()}
}

// Root returns the tree's current root, for diagnostics and tests.
func (t *Tree) Root() *Node { return t.root }

// Insert places a new pivot at idx, starting the BST descent at start (an
// optimization: callers pass the nearer of the two pivots already known to
// bracket idx). It is an error for idx to already be present.
func (t *Tree) Insert(idx int, flags Flags, start *Node) (*Node, error) {
	if start == nil {
		start = t.root
	}
	if start == nil {
		node := t.newNode(idx, flags)
		t.root = node
		return node, nil
	}

	cur := start
	for {
		switch {
		case idx < cur.Idx:
			if cur.Left == nil {
				node := t.newNode(idx, flags)
				cur.Left = node
				node.Parent = cur
				return t.bubbleUp(node), nil
			}
			cur = cur.Left
		case idx > cur.Idx:
			if cur.Right == nil {
				node := t.newNode(idx, flags)
				cur.Right = node
				node.Parent = cur
				return t.bubbleUp(node), nil
			}
			cur = cur.Right
		default:
			return nil, ErrDuplicateIdx
		}
	}
}

// bubbleUp restores the heap property after a leaf insertion by rotating
// node upward while its priority exceeds its parent's.
func (t *Tree) bubbleUp(node *Node) *Node {
	for node.Parent != nil && node.Priority > node.Parent.Priority {
		parent := node.Parent
		if parent.Left == node {
			t.rotateRight(parent)
		} else {
			t.rotateLeft(parent)
		}
	}
	return node
}

// rotateRight rotates p down and its left child up, preserving in-order
// traversal order.
func (t *Tree) rotateRight(p *Node) *Node {
	q := p.Left
	p.Left = q.Right
	if q.Right != nil {
		q.Right.Parent = p
	}
	t.reparent(p, q)
	q.Right = p
	p.Parent = q
	return q
}

// rotateLeft rotates p down and its right child up, preserving in-order
// traversal order.
func (t *Tree) rotateLeft(p *Node) *Node {
	q := p.Right
	p.Right = q.Left
	if q.Left != nil {
		q.Left.Parent = p
	}
	t.reparent(p, q)
	q.Left = p
	p.Parent = q
	return q
}

// reparent re-attaches q in place of p under p's former parent (or as the
// tree root), without touching p's or q's children.
func (t *Tree) reparent(p, q *Node) {
	q.Parent = p.Parent
	if p.Parent == nil {
		t.root = q
		return
	}
	if p.Parent.Left == p {
		p.Parent.Left = q
	} else {
		p.Parent.Right = q
	}
}

// replace substitutes repl for old under old's parent (or as the tree
// root). repl may be nil.
func (t *Tree) replace(old, repl *Node) {
	if repl != nil {
		repl.Parent = old.Parent
	}
	if old.Parent == nil {
		t.root = repl
		return
	}
	if old.Parent.Left == old {
		old.Parent.Left = repl
	} else {
		old.Parent.Right = repl
	}
}

// Delete removes node from the tree. If it has at most one child, that
// child (possibly nil) replaces it. If it has two children, they are
// merged and the merge result replaces it.
func (t *Tree) Delete(node *Node) {
	switch {
	case node.Left == nil:
		t.replace(node, node.Right)
	case node.Right == nil:
		t.replace(node, node.Left)
	default:
		t.replace(node, merge(node.Left, node.Right))
	}
	node.Left, node.Right, node.Parent = nil, nil, nil
}

// merge joins two subtrees known to be range-disjoint (every idx in left
// is less than every idx in right) into one, preferring whichever root has
// the higher priority and recursing into its inner child. Used only by
// Delete.
func merge(left, right *Node) *Node {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	if left.Priority > right.Priority {
		left.Right = merge(left.Right, right)
		left.Right.Parent = left
		return left
	}
	right.Left = merge(left, right.Left)
	right.Left.Parent = right
	return right
}

// Bound returns the greatest pivot with idx <= k (lo) and the least pivot
// with idx > k (hi). hi is always strictly greater than k, never equal.
func (t *Tree) Bound(k int) (lo, hi *Node) {
	cur := t.root
	for cur != nil {
		switch {
		case k < cur.Idx:
			hi = cur
			cur = cur.Left
		case k > cur.Idx:
			lo = cur
			cur = cur.Right
		default:
			lo = cur
			hi = Successor(cur)
			return lo, hi
		}
	}
	return lo, hi
}

// Successor returns the in-order next pivot after node, or nil if node is
// the last pivot (the sentinel at n).
func Successor(node *Node) *Node {
	if node.Right != nil {
		cur := node.Right
		for cur.Left != nil {
			cur = cur.Left
		}
		return cur
	}
	cur := node
	for cur.Parent != nil && cur.Parent.Right == cur {
		cur = cur.Parent
	}
	return cur.Parent
}

// FreeAll deallocates every node via an explicit post-order walk, dropping
// all links so that no node keeps the rest of the tree reachable. After
// FreeAll the tree is empty; it must not be reused.
func (t *Tree) FreeAll() {
	if t.root == nil {
		return
	}

	toVisit := &stack.Stack{}
	postOrder := &stack.Stack{}
	toVisit.Push(t.root)
	for toVisit.Len() > 0 {
		n := toVisit.Pop().(*Node)
		postOrder.Push(n)
		if n.Left != nil {
			toVisit.Push(n.Left)
		}
		if n.Right != nil {
			toVisit.Push(n.Right)
		}
	}

	for postOrder.Len() > 0 {
		n := postOrder.Pop().(*Node)
		n.Left, n.Right, n.Parent = nil, nil, nil
	}
	t.root = nil
}

// AssertNode is a debug-only predicate verifying that root is a valid
// BST-on-idx, max-heap-on-priority, parent-link-consistent subtree. It is
// meant to be called after every public mutation in debug builds, not in
// hot paths.
func AssertNode(root *Node) bool {
	return assertNode(root, math.MinInt, math.MaxInt, math.MaxUint64, nil)
}

func assertNode(node *Node, lo, hi int, maxPriority uint64, parent *Node) bool {
	if node == nil {
		return true
	}
	if node.Parent != parent {
		return false
	}
	if node.Idx <= lo || node.Idx >= hi {
		return false
	}
	if node.Priority > maxPriority {
		return false
	}
	return assertNode(node.Left, lo, node.Idx, node.Priority, node) &&
		assertNode(node.Right, node.Idx, hi, node.Priority, node)
}

// AssertTreeFlags is a debug-only predicate verifying invariant 6: every
// pivot with SortedLeft set has an in-order successor with SortedRight
// set, and symmetrically.
func AssertTreeFlags(root *Node) bool {
	if root == nil {
		return true
	}
	cur := root
	for cur.Left != nil {
		cur = cur.Left
	}
	for cur != nil {
		succ := Successor(cur)
		if cur.Flags.HasLeft() {
			if succ == nil || !succ.Flags.HasRight() {
				return false
			}
		}
		if cur.Flags.HasRight() {
			pred := Predecessor(cur)
			if pred == nil || !pred.Flags.HasLeft() {
				return false
			}
		}
		cur = succ
	}
	return true
}

// Predecessor returns the in-order previous pivot before node, or nil if
// node is the first pivot (the sentinel at -1).
func Predecessor(node *Node) *Node {
	if node.Left != nil {
		cur := node.Left
		for cur.Right != nil {
			cur = cur.Right
		}
		return cur
	}
	cur := node
	for cur.Parent != nil && cur.Parent.Left == cur {
		cur = cur.Parent
	}
	return cur.Parent
}
