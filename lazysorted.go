// Package lazysorted implements a list that sorts itself incrementally,
// on demand, doing only as much partitioning as each query requires.
//
// A freshly built List holds its elements in whatever order they were
// given. Get, Slice, Between, Index, Count, Contains, and Iterator each
// trigger just enough partitioning to answer themselves correctly, and
// remember the partition boundaries (pivots) they establish so that later
// queries reuse that work instead of repeating it. A list that is fully
// iterated, or whose every position is queried, ends up fully sorted,
// having done asymptotically no more work than sort.Slice would have.
package lazysorted

import (
	"cmp"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/mbrt/lazysorted/internal/comparator"
	"github.com/mbrt/lazysorted/internal/sortdriver"
)

// ContigThresh is the largest |step| for which Slice sorts the whole
// contiguous span it touches rather than each requested position
// individually. Below this threshold a strided read shares almost all of
// its partitioning work across positions; above it, per-position queries
// do less redundant work.
const ContigThresh = 32

// List is a lazily sorted sequence of T. The zero value is not usable;
// build one with New or NewOrdered.
type List[T any] struct {
	xs     []T
	driver *sortdriver.Driver[T]
	cmp    *comparator.Comparator[T]
	n      int
	closed bool
}

// New builds a List over a copy of seq. A less-than relation is required,
// via WithLess or WithLessErr; use NewOrdered to default to cmp.Ordered's
// natural order instead.
func New[T any](seq []T, opts ...Option[T]) (*List[T], error) {
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	if c.less == nil {
		return nil, newError("New", Type, fmt.Errorf("no less-than relation configured; use WithLess/WithLessErr or NewOrdered"))
	}
	return build(seq, c)
}

// NewOrdered builds a List over a copy of seq, ordered by T's natural
// order unless WithLess/WithLessErr overrides it.
func NewOrdered[T cmp.Ordered](seq []T, opts ...Option[T]) (*List[T], error) {
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	if c.less == nil {
		c.less = func(a, b T) (bool, error) { return a < b, nil }
	}
	return build(seq, c)
}

func build[T any](seq []T, c config[T]) (*List[T], error) {
	cp, err := comparator.New(c.less, c.key, c.reverse)
	if err != nil {
		return nil, newError("New", Type, err)
	}

	xs := make([]T, len(seq))
	copy(xs, seq)
	rng := newRNG(c.seed)

	return &List[T]{
		xs:     xs,
		driver: sortdriver.New(xs, cp, rng),
		cmp:    cp,
		n:      len(xs),
	}, nil
}

func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand.Read failing indicates a broken system entropy
		// source; fall back to a fixed seed rather than panicking over
		// pivot randomness.
		return rand.New(rand.NewSource(int64(len(buf))))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(buf[:]))))
}

// Len returns the number of elements in the list. It never triggers any
// partitioning.
func (l *List[T]) Len() int { return l.n }

// Close releases the list's internal pivot treap. The list must not be
// used afterward.
func (l *List[T]) Close() {
	if l.closed {
		return
	}
	l.driver.Close()
	l.closed = true
}

func (l *List[T]) checkClosed(op string) error {
	if l.closed {
		return newError(op, Resource, fmt.Errorf("list is closed"))
	}
	return nil
}

func wrapComparatorErr(op string, err error) *Error {
	return newError(op, Comparator, err)
}

func (l *List[T]) eq(a, b T) (bool, error) {
	return l.cmp.Eq(a, b)
}
