package pivottree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTree(n int, seed int64) *Tree {
	return New(n, rand.New(rand.NewSource(seed)))
}

func TestNewHasSentinels(t *testing.T) {
	tree := newTestTree(10, 1)
	lo, hi := tree.Bound(5)
	assert.Equal(t, -1, lo.Idx)
	assert.Equal(t, 10, hi.Idx)
	assert.True(t, AssertNode(tree.Root()))
}

func TestInsertAndBound(t *testing.T) {
	tree := newTestTree(100, 2)

	_, err := tree.Insert(50, 0, tree.Root())
	assert.NoError(t, err)
	assert.True(t, AssertNode(tree.Root()))

	lo, hi := tree.Bound(50)
	assert.Equal(t, 50, lo.Idx)

	lo, hi = tree.Bound(49)
	assert.Equal(t, -1, lo.Idx)
	assert.Equal(t, 50, hi.Idx)

	lo, hi = tree.Bound(51)
	assert.Equal(t, 50, lo.Idx)
	assert.Equal(t, 100, hi.Idx)
}

func TestInsertDuplicateFails(t *testing.T) {
	tree := newTestTree(100, 3)
	_, err := tree.Insert(50, 0, tree.Root())
	assert.NoError(t, err)
	_, err = tree.Insert(50, 0, tree.Root())
	assert.ErrorIs(t, err, ErrDuplicateIdx)
}

func TestRandomInsertionsPreserveInvariants(t *testing.T) {
	const n = 2000
	tree := newTestTree(n, 4)
	rng := rand.New(rand.NewSource(5))

	inserted := map[int]bool{}
	for len(inserted) < n-1 {
		idx := rng.Intn(n - 1)
		if inserted[idx] {
			continue
		}
		lo, _ := tree.Bound(idx)
		_, err := tree.Insert(idx, 0, lo)
		assert.NoError(t, err)
		inserted[idx] = true
	}

	assert.True(t, AssertNode(tree.Root()))

	// In-order traversal must yield strictly increasing idx starting at -1
	// and ending at n.
	cur := tree.Root()
	for cur.Left != nil {
		cur = cur.Left
	}
	assert.Equal(t, -1, cur.Idx)
	prev := cur.Idx
	count := 1
	for {
		next := Successor(cur)
		if next == nil {
			break
		}
		assert.Greater(t, next.Idx, prev)
		prev = next.Idx
		cur = next
		count++
	}
	assert.Equal(t, n+1, count)
	assert.Equal(t, n, prev)
}

func TestDeleteLeaf(t *testing.T) {
	tree := newTestTree(100, 6)
	node, err := tree.Insert(50, 0, tree.Root())
	assert.NoError(t, err)
	tree.Delete(node)
	assert.True(t, AssertNode(tree.Root()))
	lo, hi := tree.Bound(50)
	assert.Equal(t, -1, lo.Idx)
	assert.Equal(t, 100, hi.Idx)
}

func TestDeleteInternalNodeMerges(t *testing.T) {
	tree := newTestTree(100, 7)
	var nodes []*Node
	for _, idx := range []int{10, 20, 30, 40, 50, 60, 70} {
		lo, _ := tree.Bound(idx)
		node, err := tree.Insert(idx, 0, lo)
		assert.NoError(t, err)
		nodes = append(nodes, node)
	}
	assert.True(t, AssertNode(tree.Root()))

	for _, node := range nodes {
		tree.Delete(node)
		assert.True(t, AssertNode(tree.Root()))
	}

	lo, hi := tree.Bound(5)
	assert.Equal(t, -1, lo.Idx)
	assert.Equal(t, 100, hi.Idx)
}

func TestSuccessorWalksSentinels(t *testing.T) {
	tree := newTestTree(3, 8)
	cur := tree.Root()
	for cur.Left != nil {
		cur = cur.Left
	}
	assert.Equal(t, -1, cur.Idx)
	cur = Successor(cur)
	assert.Equal(t, 3, cur.Idx)
	assert.Nil(t, Successor(cur))
}

func TestFlagsPairingAssertion(t *testing.T) {
	tree := newTestTree(10, 9)
	node, err := tree.Insert(5, 0, tree.Root())
	assert.NoError(t, err)

	lo, hi := tree.Bound(4)
	_ = lo
	_ = hi

	// Only SortedLeft set, with no matching successor flag: invalid.
	node.Flags |= SortedLeft
	assert.False(t, AssertTreeFlags(tree.Root()))

	// Pair it up: the successor (the sentinel at n) gets SortedRight.
	succ := Successor(node)
	succ.Flags |= SortedRight
	assert.True(t, AssertTreeFlags(tree.Root()))
}

func TestFreeAllEmptiesTree(t *testing.T) {
	tree := newTestTree(50, 10)
	for _, idx := range []int{10, 20, 30} {
		lo, _ := tree.Bound(idx)
		_, err := tree.Insert(idx, 0, lo)
		assert.NoError(t, err)
	}
	tree.FreeAll()
	assert.Nil(t, tree.Root())
}

func TestFlagsHelpers(t *testing.T) {
	var f Flags
	assert.False(t, f.HasLeft())
	assert.False(t, f.HasRight())
	assert.False(t, f.Both())

	f |= SortedLeft
	assert.True(t, f.HasLeft())
	assert.False(t, f.Both())

	f |= SortedRight
	assert.True(t, f.HasRight())
	assert.True(t, f.Both())
}
