package lazysorted

import (
	"fmt"

	"github.com/mbrt/lazysorted/internal/pivottree"
)

// Index returns the position of an element comparing equal to v once the
// list is fully sorted. If several elements are equal to v, the lowest of
// their positions is returned. It errors with Value kind if no element
// equals v.
func (l *List[T]) Index(v T) (int, error) {
	if err := l.checkClosed("Index"); err != nil {
		return 0, err
	}
	idx, found, err := l.driver.FindItem(v)
	if err != nil {
		return 0, wrapComparatorErr("Index", err)
	}
	if !found {
		return 0, newError("Index", Value, fmt.Errorf("%v is not in the list", v))
	}
	return idx, nil
}

// Contains reports whether any element compares equal to v.
func (l *List[T]) Contains(v T) (bool, error) {
	if err := l.checkClosed("Contains"); err != nil {
		return false, err
	}
	_, found, err := l.driver.FindItem(v)
	if err != nil {
		return false, wrapComparatorErr("Contains", err)
	}
	return found, nil
}

// Count returns the number of elements comparing equal to v.
//
// It locates one occurrence via find_item, then walks outward from it
// across pivot-bounded regions, linear-scanning each one it crosses,
// continuing to the next only while the pivot bounding it also compares
// equal to v (dedup guarantees two adjacent pivots are never themselves
// equal, so the walk can stop the instant it meets one that isn't).
// A pathological list with many duplicates spread across large unsorted
// regions can make this linear in the size of those regions; Count does
// not force extra partitioning to avoid that cost.
func (l *List[T]) Count(v T) (int, error) {
	if err := l.checkClosed("Count"); err != nil {
		return 0, err
	}

	idx, found, err := l.driver.FindItem(v)
	if err != nil {
		return 0, wrapComparatorErr("Count", err)
	}
	if !found {
		return 0, nil
	}

	tree := l.driver.Tree()
	lo, hi := tree.Bound(idx)

	count, err := l.countInterior(lo.Idx, hi.Idx, v)
	if err != nil {
		return 0, wrapComparatorErr("Count", err)
	}

	cur := lo
	for cur.Idx >= 0 {
		eq, err := l.eq(l.xs[cur.Idx], v)
		if err != nil {
			return 0, wrapComparatorErr("Count", err)
		}
		if !eq {
			break
		}
		count++
		pred := pivottree.Predecessor(cur)
		if pred == nil {
			break
		}
		c, err := l.countInterior(pred.Idx, cur.Idx, v)
		if err != nil {
			return 0, wrapComparatorErr("Count", err)
		}
		count += c
		cur = pred
	}

	cur = hi
	for cur.Idx < l.n {
		eq, err := l.eq(l.xs[cur.Idx], v)
		if err != nil {
			return 0, wrapComparatorErr("Count", err)
		}
		if !eq {
			break
		}
		count++
		succ := pivottree.Successor(cur)
		if succ == nil {
			break
		}
		c, err := l.countInterior(cur.Idx, succ.Idx, v)
		if err != nil {
			return 0, wrapComparatorErr("Count", err)
		}
		count += c
		cur = succ
	}

	return count, nil
}

// countInterior counts elements equal to v strictly between array
// positions loIdx and hiIdx (exclusive of both).
func (l *List[T]) countInterior(loIdx, hiIdx int, v T) (int, error) {
	count := 0
	for i := loIdx + 1; i < hiIdx; i++ {
		eq, err := l.eq(l.xs[i], v)
		if err != nil {
			return 0, err
		}
		if eq {
			count++
		}
	}
	return count, nil
}
