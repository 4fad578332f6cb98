package lazysorted

// Iterator walks a List in final sorted order, one sort_point call per
// step. It is single-pass and not restartable; get a fresh one from
// List.Iterator to walk again.
type Iterator[T any] struct {
	list   *List[T]
	cursor int
}

// Iterator returns an Iterator starting at position 0.
func (l *List[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{list: l}
}

// Next returns the next element in sorted order. ok is false once the
// iterator is exhausted, with a zero value and nil error.
func (it *Iterator[T]) Next() (v T, ok bool, err error) {
	if it.cursor >= it.list.n {
		return v, false, nil
	}
	val, err := it.list.Get(it.cursor)
	if err != nil {
		return v, false, err
	}
	it.cursor++
	return val, true, nil
}

// Remaining returns the number of elements not yet yielded by Next.
func (it *Iterator[T]) Remaining() int {
	return it.list.n - it.cursor
}
