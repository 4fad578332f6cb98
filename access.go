package lazysorted

import "fmt"

func clampIndex(k, n int) int {
	if k < 0 {
		k = 0
	}
	if k > n {
		k = n
	}
	return k
}

// Get returns the element that belongs at position k once the list is
// fully sorted (negative k counts from the end, Python-style), sorting
// only the single point needed to answer it.
func (l *List[T]) Get(k int) (T, error) {
	var zero T
	if err := l.checkClosed("Get"); err != nil {
		return zero, err
	}

	idx := k
	if idx < 0 {
		idx += l.n
	}
	if idx < 0 || idx >= l.n {
		return zero, newError("Get", Bounds, fmt.Errorf("index %d out of range for length %d", k, l.n))
	}

	if err := l.driver.SortPoint(idx); err != nil {
		return zero, wrapComparatorErr("Get", err)
	}
	return l.xs[idx], nil
}

// sliceIndices normalizes a Python-style [start:stop:step] into concrete,
// in-bounds (begin, end, step) such that walking begin, begin+step,
// begin+2*step, ... (stopping before end is reached or passed) visits
// exactly the requested positions.
func sliceIndices(n, start, stop, step int) (begin, end, outStep int, err error) {
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("slice step cannot be zero")
	}

	if step > 0 {
		if start < 0 {
			start += n
			if start < 0 {
				start = 0
			}
		} else if start > n {
			start = n
		}
		if stop < 0 {
			stop += n
			if stop < 0 {
				stop = 0
			}
		} else if stop > n {
			stop = n
		}
	} else {
		if start < 0 {
			start += n
			if start < -1 {
				start = -1
			}
		} else if start >= n {
			start = n - 1
		}
		if stop < 0 {
			stop += n
			if stop < -1 {
				stop = -1
			}
		} else if stop >= n {
			stop = n - 1
		}
	}

	return start, stop, step, nil
}

// Slice returns the elements at [start:stop:step] once the list is fully
// sorted, Python-slice style (negative indices count from the end; a
// negative step walks backward). If the touched span is narrow enough
// (|step| <= ContigThresh), the whole contiguous span is sorted via one
// sort_range and then gathered, sharing partitioning work across the
// requested positions; otherwise each position is sorted individually.
func (l *List[T]) Slice(start, stop, step int) ([]T, error) {
	if err := l.checkClosed("Slice"); err != nil {
		return nil, err
	}

	begin, end, step, err := sliceIndices(l.n, start, stop, step)
	if err != nil {
		return nil, newError("Slice", Value, err)
	}

	var indices []int
	if step > 0 {
		for i := begin; i < end; i += step {
			indices = append(indices, i)
		}
	} else {
		for i := begin; i > end; i += step {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return []T{}, nil
	}

	absStep := step
	if absStep < 0 {
		absStep = -absStep
	}

	result := make([]T, len(indices))

	if absStep <= ContigThresh {
		lo, hi := indices[0], indices[len(indices)-1]
		if lo > hi {
			lo, hi = hi, lo
		}
		if err := l.driver.SortRange(lo, hi+1); err != nil {
			return nil, wrapComparatorErr("Slice", err)
		}
		for i, idx := range indices {
			result[i] = l.xs[idx]
		}
		return result, nil
	}

	for i, idx := range indices {
		if err := l.driver.SortPoint(idx); err != nil {
			return nil, wrapComparatorErr("Slice", err)
		}
		result[i] = l.xs[idx]
	}
	return result, nil
}

// Between returns, in unspecified order, the elements that belong to the
// half-open range [lo, hi) once the list is fully sorted. It establishes
// the two boundaries via sort_point where needed (skipping a boundary
// that coincides with the array's own edge, which needs no pivot to be
// correctly bounded) and otherwise does no further sorting: the returned
// slice is a correct multiset but its internal order is whatever the
// backing array currently holds.
func (l *List[T]) Between(lo, hi int) ([]T, error) {
	if err := l.checkClosed("Between"); err != nil {
		return nil, err
	}

	lo = clampIndex(lo, l.n)
	hi = clampIndex(hi, l.n)
	if lo >= hi {
		return []T{}, nil
	}

	if lo > 0 {
		if err := l.driver.SortPoint(lo); err != nil {
			return nil, wrapComparatorErr("Between", err)
		}
	}
	if hi < l.n {
		if err := l.driver.SortPoint(hi); err != nil {
			return nil, wrapComparatorErr("Between", err)
		}
	}

	result := make([]T, hi-lo)
	copy(result, l.xs[lo:hi])
	return result, nil
}
