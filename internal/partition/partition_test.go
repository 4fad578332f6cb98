package partition

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbrt/lazysorted/internal/comparator"
)

func ordered() *comparator.Comparator[int] {
	return comparator.NewOrdered[int](false)
}

func shuffled(n int, seed int64) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	rand.New(rand.NewSource(seed)).Shuffle(n, func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	return xs
}

func TestMedianOfThree(t *testing.T) {
	cmp := ordered()

	// Exhaustively check all 6 permutations of 3 distinct values: the
	// returned index must always hold the middle value.
	vals := []int{10, 20, 30}
	perm := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, p := range perm {
		xs := []int{vals[p[0]], vals[p[1]], vals[p[2]]}
		idx, err := medianOfThree(xs, 0, 1, 2, cmp)
		assert.NoError(t, err)
		assert.Equal(t, 20, xs[idx])
	}
}

func TestPickPivotWithinRange(t *testing.T) {
	cmp := ordered()
	rng := rand.New(rand.NewSource(1))
	xs := shuffled(50, 2)

	idx, err := PickPivot(xs, 10, 40, cmp, rng)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 10)
	assert.Less(t, idx, 40)
}

func TestPartitionInvariant(t *testing.T) {
	cmp := ordered()
	rng := rand.New(rand.NewSource(3))

	for seed := int64(0); seed < 20; seed++ {
		xs := shuffled(100, seed)
		p, err := Partition(xs, 10, 90, cmp, rng)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, p, 10)
		assert.Less(t, p, 90)

		for i := 10; i < p; i++ {
			assert.Less(t, xs[i], xs[p])
		}
		for i := p + 1; i < 90; i++ {
			assert.GreaterOrEqual(t, xs[i], xs[p])
		}
	}
}

func TestPartitionWholeSlice(t *testing.T) {
	cmp := ordered()
	rng := rand.New(rand.NewSource(4))
	xs := shuffled(37, 5)

	p, err := Partition(xs, 0, len(xs), cmp, rng)
	assert.NoError(t, err)
	for i := 0; i < p; i++ {
		assert.Less(t, xs[i], xs[p])
	}
	for i := p + 1; i < len(xs); i++ {
		assert.GreaterOrEqual(t, xs[i], xs[p])
	}
}

func TestInsertionSortSorts(t *testing.T) {
	cmp := ordered()
	xs := shuffled(7, 6)
	err := InsertionSort(xs, 0, len(xs), cmp)
	assert.NoError(t, err)
	assert.True(t, sort.IntsAreSorted(xs))
}

func TestInsertionSortSubrange(t *testing.T) {
	cmp := ordered()
	xs := []int{9, 5, 3, 1, 8, 100, -1}
	err := InsertionSort(xs, 1, 5, cmp)
	assert.NoError(t, err)
	assert.True(t, sort.IntsAreSorted(xs[1:5]))
	assert.Equal(t, 9, xs[0])
	assert.Equal(t, 100, xs[5])
}

func TestQuickSortSorts(t *testing.T) {
	cmp := ordered()
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{0, 1, 2, 7, 8, 9, 50, 500} {
		xs := shuffled(n, int64(n))
		err := QuickSort(xs, 0, len(xs), cmp, rng)
		assert.NoError(t, err)
		assert.True(t, sort.IntsAreSorted(xs))
	}
}

func TestQuickSortSubrangeLeavesEdgesAlone(t *testing.T) {
	cmp := ordered()
	rng := rand.New(rand.NewSource(8))
	xs := []int{-5, 3, 9, 4, 1, 2, -100}

	err := QuickSort(xs, 1, 6, cmp, rng)
	assert.NoError(t, err)
	assert.True(t, sort.IntsAreSorted(xs[1:6]))
	assert.Equal(t, -5, xs[0])
	assert.Equal(t, -100, xs[6])
}

func TestPartitionPropagatesComparatorError(t *testing.T) {
	boom := errors.New("boom")
	cmp, err := comparator.New[int](func(a, b int) (bool, error) {
		if a == 42 || b == 42 {
			return false, boom
		}
		return a < b, nil
	}, nil, false)
	assert.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	xs := []int{1, 42, 3, 4, 5, 6, 7, 8, 9, 10}
	_, err = Partition(xs, 0, len(xs), cmp, rng)
	assert.ErrorIs(t, err, boom)
}
