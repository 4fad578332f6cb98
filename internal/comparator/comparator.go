// Package comparator evaluates ordering between two elements of a lazily
// sorted list, under an optional key projection and an optional reverse
// flag. Every comparison is three-valued: it either resolves to Less or
// NotLess, or it fails and the failure must propagate to the caller
// unchanged, since both the projection and the underlying less-than
// relation are user-supplied and may error.
package comparator

import "cmp"

// Result is the outcome of a successful comparison.
type Result int

const (
	// Less means a < b under the configured ordering.
	Less Result = iota
	// NotLess means a >= b under the configured ordering.
	NotLess
)

// LessFunc reports whether a < b, or returns an error if the comparison
// itself could not be carried out.
type LessFunc[T any] func(a, b T) (bool, error)

// KeyFunc projects an element onto the value that should actually be
// compared, e.g. `key=lambda x: -x`. The projection returns the same type
// as its input so that LessFunc can be reused unmodified on the projected
// values.
type KeyFunc[T any] func(v T) (T, error)

// Comparator wraps a LessFunc, an optional KeyFunc, and a reverse flag into
// a single three-valued ordering relation.
type Comparator[T any] struct {
	less    LessFunc[T]
	key     KeyFunc[T]
	reverse bool
}

// New builds a Comparator from an explicit less-than relation. less must be
// non-nil; key may be nil to compare elements directly.
func New[T any](less LessFunc[T], key KeyFunc[T], reverse bool) (*Comparator[T], error) {
	if less == nil {
		return nil, errNilLess
	}
	return &Comparator[T]{less: less, key: key, reverse: reverse}, nil
}

// NewOrdered builds a Comparator over a type with a natural ordering,
// optionally reversed. No key projection is installed.
func NewOrdered[T cmp.Ordered](reverse bool) *Comparator[T] {
	c, _ := New[T](func(a, b T) (bool, error) { return a < b, nil }, nil, reverse)
	return c
}

// errNilLess is returned by New when no less-than relation is supplied.
// It is deliberately unexported: only the root package translates it into
// a Kind-tagged *Error, since this package has no notion of error kinds.
var errNilLess = nilLessError{}

type nilLessError struct{}

func (nilLessError) Error() string { return "comparator: less function must not be nil" }

// IsNilLess reports whether err is the sentinel returned by New when no
// less-than relation is supplied.
func IsNilLess(err error) bool {
	_, ok := err.(nilLessError)
	return ok
}

// Lt evaluates a < b under the configured key projection and reverse
// sense. If a key projection is configured, it is evaluated once on each
// side; if either evaluation fails, the error is surfaced without
// attempting the underlying comparison.
func (c *Comparator[T]) Lt(a, b T) (Result, error) {
	if c.key != nil {
		ka, err := c.key(a)
		if err != nil {
			return NotLess, err
		}
		kb, err := c.key(b)
		if err != nil {
			return NotLess, err
		}
		a, b = ka, kb
	}

	if c.reverse {
		a, b = b, a
	}

	lt, err := c.less(a, b)
	if err != nil {
		return NotLess, err
	}
	if lt {
		return Less, nil
	}
	return NotLess, nil
}

// Eq reports whether neither a < b nor b < a holds, i.e. the two elements
// are equal under the configured ordering.
func (c *Comparator[T]) Eq(a, b T) (bool, error) {
	r, err := c.Lt(a, b)
	if err != nil {
		return false, err
	}
	if r == Less {
		return false, nil
	}
	r, err = c.Lt(b, a)
	if err != nil {
		return false, err
	}
	return r == NotLess, nil
}
