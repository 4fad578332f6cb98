// Package partition implements the randomized partitioning primitives a
// lazily sorted list's sort driver builds on: median-of-three pivot
// selection, a single-pass Lomuto partition, insertion sort for small
// ranges, and a plain quicksort for regions whose sorted-flag bookkeeping
// is handled entirely by the caller.
//
// Every function operates in place on a half-open range [lo, hi) of a
// caller-owned slice, driven by a three-valued comparator since the
// underlying less-than relation may be user-supplied and fallible.
//
// The partition shape is a direct, generalized port of the reference
// quickselect/partition routine this module's container is built around:
// swap the chosen pivot to the front, scan once tracking the last
// confirmed-less position, swap strictly-less elements forward, then swap
// the pivot back into its now-final slot.
package partition

import (
	"math/rand"

	"github.com/mbrt/lazysorted/internal/comparator"
)

// SortThresh is the range length at or below which insertion sort is used
// instead of further partitioning.
const SortThresh = 8

// PickPivot draws three independent uniform positions in [lo, hi) and
// returns the index holding the middle-ranked value of the three, per
// median-of-three selection.
func PickPivot[T any](xs []T, lo, hi int, cmp *comparator.Comparator[T], rng *rand.Rand) (int, error) {
	span := hi - lo
	a := lo + rng.Intn(span)
	b := lo + rng.Intn(span)
	c := lo + rng.Intn(span)

	mid, err := medianOfThree(xs, a, b, c, cmp)
	if err != nil {
		return 0, err
	}
	return mid, nil
}

func medianOfThree[T any](xs []T, a, b, c int, cmp *comparator.Comparator[T]) (int, error) {
	ab, err := cmp.Lt(xs[a], xs[b])
	if err != nil {
		return 0, err
	}
	bc, err := cmp.Lt(xs[b], xs[c])
	if err != nil {
		return 0, err
	}
	ac, err := cmp.Lt(xs[a], xs[c])
	if err != nil {
		return 0, err
	}

	switch {
	case ab == comparator.Less:
		switch {
		case bc == comparator.Less:
			return b, nil // a < b < c
		case ac == comparator.Less:
			return c, nil // a < c <= b
		default:
			return a, nil // c <= a < b
		}
	default:
		switch {
		case ac == comparator.Less:
			return a, nil // b <= a < c
		case bc == comparator.Less:
			return c, nil // b < c <= a
		default:
			return b, nil // c <= b <= a
		}
	}
}

// Partition partitions xs[lo:hi] around a median-of-three pivot and
// returns the pivot's final sorted index p: every position in [lo, p)
// holds a value less than xs[p], every position in (p, hi) holds a value
// not less than xs[p].
func Partition[T any](xs []T, lo, hi int, cmp *comparator.Comparator[T], rng *rand.Rand) (int, error) {
	pivotIdx, err := PickPivot(xs, lo, hi, cmp, rng)
	if err != nil {
		return 0, err
	}

	xs[lo], xs[pivotIdx] = xs[pivotIdx], xs[lo]
	pivot := xs[lo]

	lastLess := lo
	for i := lo + 1; i < hi; i++ {
		r, err := cmp.Lt(xs[i], pivot)
		if err != nil {
			return 0, err
		}
		if r == comparator.Less {
			lastLess++
			xs[lastLess], xs[i] = xs[i], xs[lastLess]
		}
	}

	xs[lo], xs[lastLess] = xs[lastLess], xs[lo]
	return lastLess, nil
}

// InsertionSort stably sorts xs[lo:hi] in place. Used directly when a
// range is at or below SortThresh.
func InsertionSort[T any](xs []T, lo, hi int, cmp *comparator.Comparator[T]) error {
	for i := lo + 1; i < hi; i++ {
		item := xs[i]
		j := i
		for j > lo {
			r, err := cmp.Lt(item, xs[j-1])
			if err != nil {
				return err
			}
			if r != comparator.Less {
				break
			}
			xs[j] = xs[j-1]
			j--
		}
		xs[j] = item
	}
	return nil
}

// QuickSort sorts xs[lo:hi] in place without publishing any pivot
// positions; it is used only when the caller will mark the whole range
// sorted atomically via its bracketing pivots.
func QuickSort[T any](xs []T, lo, hi int, cmp *comparator.Comparator[T], rng *rand.Rand) error {
	if hi-lo <= SortThresh {
		return InsertionSort(xs, lo, hi, cmp)
	}

	p, err := Partition(xs, lo, hi, cmp, rng)
	if err != nil {
		return err
	}
	if err := QuickSort(xs, lo, p, cmp, rng); err != nil {
		return err
	}
	return QuickSort(xs, p+1, hi, cmp, rng)
}
