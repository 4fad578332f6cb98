// Package sortdriver implements the state machine that ties the pivot
// treap and the partition engine together: sort_point, sort_range, and
// find_item from the specification. Every operation here both answers a
// query and incrementally refines the shared partial-order state (the
// backing array and the pivot treap) that future queries reuse.
package sortdriver

import (
	"math/rand"

	"github.com/mbrt/lazysorted/internal/comparator"
	"github.com/mbrt/lazysorted/internal/partition"
	"github.com/mbrt/lazysorted/internal/pivottree"
)

// Driver drives sort_point/sort_range/find_item over a caller-owned
// backing slice, a pivot treap sized for it, and a three-valued
// comparator. Beyond those three it holds only the random source used for
// pivot selection: every invariant lives in the treap and the slice.
type Driver[T any] struct {
	xs   []T
	tree *pivottree.Tree
	cmp  *comparator.Comparator[T]
	rng  *rand.Rand
}

// New builds a driver over xs, allocating a fresh pivot treap with
// sentinels at -1 and len(xs).
func New[T any](xs []T, cmp *comparator.Comparator[T], rng *rand.Rand) *Driver[T] {
	return &Driver[T]{
		xs:   xs,
		tree: pivottree.New(len(xs), rng),
		cmp:  cmp,
		rng:  rng,
	}
}

// Tree returns the underlying pivot treap, for diagnostics and for the
// container's Count walk.
func (d *Driver[T]) Tree() *pivottree.Tree { return d.tree }

// Close releases every pivot node. The driver must not be used afterward.
func (d *Driver[T]) Close() { d.tree.FreeAll() }

// SortPoint ensures xs[k] holds its final sorted value, doing no more
// partitioning than the bracket around k requires. It is idempotent: a
// second call with the same k returns immediately.
func (d *Driver[T]) SortPoint(k int) error {
	for {
		lo, hi := d.tree.Bound(k)

		if lo.Idx == k {
			return nil
		}
		if hi.Flags.HasRight() {
			return nil
		}

		if lo.Idx+1+partition.SortThresh <= hi.Idx {
			p, err := partition.Partition(d.xs, lo.Idx+1, hi.Idx, d.cmp, d.rng)
			if err != nil {
				return err
			}

			start := lo
			if lo.Right != nil {
				start = hi
			}
			mid, err := d.tree.Insert(p, 0, start)
			if err != nil {
				return err
			}

			if err := d.uniqPivots(lo, mid, hi); err != nil {
				return err
			}
			d.depivot(mid)
			continue
		}

		if err := partition.InsertionSort(d.xs, lo.Idx+1, hi.Idx, d.cmp); err != nil {
			return err
		}
		lo.Flags |= pivottree.SortedLeft
		hi.Flags |= pivottree.SortedRight
		d.depivot(lo)
		d.depivot(hi)
		return nil
	}
}

// SortRange sorts xs[start:stop] in place, touching no position outside
// that half-open range's bracketing pivots.
func (d *Driver[T]) SortRange(start, stop int) error {
	if start >= stop {
		return nil
	}
	if err := d.SortPoint(start); err != nil {
		return err
	}
	if err := d.SortPoint(stop); err != nil {
		return err
	}

	cur, _ := d.tree.Bound(start)
	for cur.Idx < stop {
		next := pivottree.Successor(cur)
		if !cur.Flags.HasLeft() {
			if err := partition.QuickSort(d.xs, cur.Idx+1, next.Idx, d.cmp, d.rng); err != nil {
				return err
			}
			cur.Flags |= pivottree.SortedLeft
			next.Flags |= pivottree.SortedRight
		}
		d.depivot(cur)
		cur = next
	}
	return nil
}

// FindItem locates the first index whose element compares equal to v,
// partitioning only as much of the array as necessary. found is false, err
// nil, if no element equals v.
func (d *Driver[T]) FindItem(v T) (idx int, found bool, err error) {
	lo, hi, hit, hitIdx, err := d.descendByValue(v)
	if err != nil {
		return 0, false, err
	}
	if hit {
		// The pivot's predecessor is strictly less than v, but elements
		// equal to v may still sit between the two: sort that gap and
		// return the lowest equal position in it, else the pivot itself.
		pred, _ := d.tree.Bound(hitIdx - 1)
		if err := d.SortRange(pred.Idx+1, hitIdx); err != nil {
			return 0, false, err
		}
		for i := pred.Idx + 1; i < hitIdx; i++ {
			eq, err := d.cmp.Eq(d.xs[i], v)
			if err != nil {
				return 0, false, err
			}
			if eq {
				return i, true, nil
			}
		}
		return hitIdx, true, nil
	}

	for !(lo.Flags.HasLeft() || hi.Flags.HasRight()) && hi.Idx-lo.Idx-1 > partition.SortThresh {
		p, err := partition.Partition(d.xs, lo.Idx+1, hi.Idx, d.cmp, d.rng)
		if err != nil {
			return 0, false, err
		}

		start := lo
		if lo.Right != nil {
			start = hi
		}
		mid, err := d.tree.Insert(p, 0, start)
		if err != nil {
			return 0, false, err
		}
		if err := d.uniqPivots(lo, mid, hi); err != nil {
			return 0, false, err
		}
		d.depivot(mid)

		ltVM, err := d.cmp.Lt(v, d.xs[mid.Idx])
		if err != nil {
			return 0, false, err
		}
		if ltVM == comparator.Less {
			hi = mid
			continue
		}
		ltMV, err := d.cmp.Lt(d.xs[mid.Idx], v)
		if err != nil {
			return 0, false, err
		}
		if ltMV == comparator.Less {
			lo = mid
			continue
		}
		return mid.Idx, true, nil
	}

	if !(lo.Flags.HasLeft() || hi.Flags.HasRight()) {
		if err := partition.InsertionSort(d.xs, lo.Idx+1, hi.Idx, d.cmp); err != nil {
			return 0, false, err
		}
		lo.Flags |= pivottree.SortedLeft
		hi.Flags |= pivottree.SortedRight
		d.depivot(lo)
		d.depivot(hi)
	}

	for i := lo.Idx + 1; i < hi.Idx; i++ {
		eq, err := d.cmp.Eq(d.xs[i], v)
		if err != nil {
			return 0, false, err
		}
		if eq {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// descendByValue walks the pivot treap from the root, deciding direction
// by comparing v against each pivot's element (sentinels act as implicit
// -infinity/+infinity without needing a comparison), landing on the
// tightest bracketing pair (lo, hi) known to the treap so far. If it
// passes directly through a pivot equal to v, it reports that hit.
func (d *Driver[T]) descendByValue(v T) (lo, hi *pivottree.Node, hit bool, hitIdx int, err error) {
	cur := d.tree.Root()
	n := len(d.xs)

	for cur != nil {
		switch {
		case cur.Idx == -1:
			lo = cur
			cur = cur.Right
		case cur.Idx == n:
			hi = cur
			cur = cur.Left
		default:
			ltVX, err := d.cmp.Lt(v, d.xs[cur.Idx])
			if err != nil {
				return nil, nil, false, 0, err
			}
			if ltVX == comparator.Less {
				hi = cur
				cur = cur.Left
				continue
			}
			ltXV, err := d.cmp.Lt(d.xs[cur.Idx], v)
			if err != nil {
				return nil, nil, false, 0, err
			}
			if ltXV == comparator.Less {
				lo = cur
				cur = cur.Right
				continue
			}
			return nil, nil, true, cur.Idx, nil
		}
	}
	return lo, hi, false, 0, nil
}

// uniqPivots enforces that adjacent pivots never hold equal elements: a
// newly inserted pivot mid absorbs an equal-valued bracketing endpoint,
// adopting its flags and deleting it. Required for correctness (P3's
// strict-inequality property for adjacent pivots), not an optimization.
func (d *Driver[T]) uniqPivots(lo, mid, hi *pivottree.Node) error {
	n := len(d.xs)

	if lo.Idx != -1 {
		eq, err := d.cmp.Eq(d.xs[lo.Idx], d.xs[mid.Idx])
		if err != nil {
			return err
		}
		if eq {
			mid.Flags |= lo.Flags
			d.tree.Delete(lo)
		}
	}
	if hi.Idx != n {
		eq, err := d.cmp.Eq(d.xs[mid.Idx], d.xs[hi.Idx])
		if err != nil {
			return err
		}
		if eq {
			mid.Flags |= hi.Flags
			d.tree.Delete(hi)
		}
	}
	return nil
}

// depivot removes node if it now carries both sorted flags, collapsing
// its two already-sorted sides into one. Sentinels are never depivoted:
// structurally they can only ever carry one of the two flags, since
// neither has a predecessor (at -1) or a successor (at n).
func (d *Driver[T]) depivot(node *pivottree.Node) {
	if node.Idx == -1 || node.Idx == len(d.xs) {
		return
	}
	if node.Flags.Both() {
		d.tree.Delete(node)
	}
}
