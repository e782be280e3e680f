package treap

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbehopkins/bimap/arena"
)

// TestTreeInsertInOrderIsSorted verifies that in-order traversal yields sorted
// keys after inserting keys in random order, and that every insert keeps the
// tree well formed.
func TestTreeInsertInOrderIsSorted(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(12345)
	rng := rand.New(rand.NewPCG(1, 2))

	keys := rng.Perm(200)
	for _, k := range keys {
		tt.add(k, src.Next())
		require.NoError(t, tt.Verify())
	}

	sorted := append([]int(nil), keys...)
	sort.Ints(sorted)
	assert.Equal(t, sorted, tt.keys())
	assert.Equal(t, 200, tt.Count())
}

// TestTreeFindAndBounds verifies Find, LowerBound and UpperBound against
// present keys, gaps and both ends of the key range.
func TestTreeFindAndBounds(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(7)
	for k := 10; k <= 100; k += 10 {
		tt.add(k, src.Next())
	}
	end := tt.Header()

	assert.Equal(t, 30, tt.key(tt.Find(30)))
	assert.Equal(t, end, tt.Find(35))
	assert.Equal(t, end, tt.Find(5))

	assert.Equal(t, 40, tt.key(tt.LowerBound(35)))
	assert.Equal(t, 40, tt.key(tt.LowerBound(40)))
	assert.Equal(t, 10, tt.key(tt.LowerBound(-5)))
	assert.Equal(t, end, tt.LowerBound(101))

	assert.Equal(t, 50, tt.key(tt.UpperBound(40)))
	assert.Equal(t, 50, tt.key(tt.UpperBound(45)))
	assert.Equal(t, end, tt.UpperBound(100))

	assert.Equal(t, 10, tt.key(tt.First()))
	assert.Equal(t, 100, tt.key(tt.Last()))
}

// TestTreeNextPrev verifies successor and predecessor stepping, including
// the header at both ends.
func TestTreeNextPrev(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(99)
	for _, k := range []int{50, 30, 70, 20, 40, 60, 80} {
		tt.add(k, src.Next())
	}

	var forward []int
	r := tt.First()
	for r != tt.Header() {
		forward = append(forward, tt.key(r))
		r = tt.Next(r)
	}
	assert.Equal(t, []int{20, 30, 40, 50, 60, 70, 80}, forward)
	assert.Equal(t, arena.Nil, tt.Next(tt.Header()))

	var backward []int
	r = tt.Prev(tt.Header())
	for r != arena.Nil {
		backward = append(backward, tt.key(r))
		r = tt.Prev(r)
	}
	assert.Equal(t, []int{80, 70, 60, 50, 40, 30, 20}, backward)
}

// TestTreeEmpty verifies the degenerate positions of an empty tree.
func TestTreeEmpty(t *testing.T) {
	tt := newTestTree()

	assert.True(t, tt.Empty())
	assert.Equal(t, tt.Header(), tt.First())
	assert.Equal(t, tt.Header(), tt.Last())
	assert.Equal(t, tt.Header(), tt.Find(1))
	assert.Equal(t, tt.Header(), tt.LowerBound(1))
	assert.Equal(t, arena.Nil, tt.Prev(tt.Header()))
	assert.False(t, tt.Erase(1))
	assert.Equal(t, 0, tt.Height())
	assert.NoError(t, tt.Verify())
}

// TestTreeShapeFollowsPriorities verifies that the node with the highest
// priority becomes the root whatever the insertion order, and that ascending
// keys with ascending priorities degenerate into a left-leaning chain.
func TestTreeShapeFollowsPriorities(t *testing.T) {
	chain := newTestTree()
	for k := 1; k <= 5; k++ {
		chain.add(k, Priority(k))
	}
	require.NoError(t, chain.Verify())
	assert.Equal(t, 5, chain.key(chain.Root()))
	assert.Equal(t, 5, chain.Height())

	prios := map[int]Priority{1: 40, 2: 10, 3: 90, 4: 20, 5: 70, 6: 30}
	for _, order := range [][]int{{1, 2, 3, 4, 5, 6}, {6, 5, 4, 3, 2, 1}, {4, 1, 6, 2, 5, 3}} {
		tt := newTestTree()
		for _, k := range order {
			tt.add(k, prios[k])
		}
		require.NoError(t, tt.Verify())
		assert.Equal(t, 3, tt.key(tt.Root()), "order %v", order)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, tt.keys())
	}
}

// TestTreeSameShapeForSamePriorities verifies that the shape of a treap is a
// function of its keys and priorities only.
func TestTreeSameShapeForSamePriorities(t *testing.T) {
	prio := func(k int) Priority { return Priority(k*2654435761) ^ 0x5bd1e995 }
	shape := func(tt testTree) map[int][2]int {
		out := map[int][2]int{}
		_ = tt.Walk(func(r arena.Ref) error {
			l := tt.links(r)
			child := func(c arena.Ref) int {
				if c == arena.Nil {
					return -1
				}
				return tt.key(c)
			}
			out[tt.key(r)] = [2]int{child(l.Lo), child(l.Hi)}
			return nil
		})
		return out
	}

	rng := rand.New(rand.NewPCG(3, 4))
	a, b := newTestTree(), newTestTree()
	for _, k := range rng.Perm(64) {
		a.add(k, prio(k))
	}
	for _, k := range rng.Perm(64) {
		b.add(k, prio(k))
	}
	assert.Equal(t, shape(a), shape(b))
}

// TestTreeUnlinkAndErase verifies removal by key and by node, with the tree
// checked after every step.
func TestTreeUnlinkAndErase(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(2024)
	refs := map[int]arena.Ref{}
	for k := 0; k < 100; k++ {
		refs[k] = tt.add(k, src.Next())
	}

	for k := 0; k < 100; k += 2 {
		require.True(t, tt.Erase(k), "erase %d", k)
		require.NoError(t, tt.Verify())
	}
	assert.False(t, tt.Erase(0))

	for k := 1; k < 50; k += 2 {
		r := refs[k]
		tt.Unlink(r)
		assert.Equal(t, Unlinked, *tt.links(r))
		require.NoError(t, tt.Verify())
	}

	var want []int
	for k := 51; k < 100; k += 2 {
		want = append(want, k)
	}
	assert.Equal(t, want, tt.keys())
}

// TestTreeUnlinkKeepsOtherNodes verifies that removing a node leaves every
// other node at the same Ref, so positions held elsewhere stay usable.
func TestTreeUnlinkKeepsOtherNodes(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(5)
	refs := map[int]arena.Ref{}
	for k := 0; k < 32; k++ {
		refs[k] = tt.add(k, src.Next())
	}
	tt.Unlink(refs[16])
	for k, r := range refs {
		if k == 16 {
			continue
		}
		assert.Equal(t, r, tt.Find(k))
	}
	assert.Equal(t, refs[17], tt.Next(refs[15]))
}

// TestTreeWalkReverse verifies descending traversal and early termination.
func TestTreeWalkReverse(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(11)
	for k := 1; k <= 10; k++ {
		tt.add(k, src.Next())
	}

	var seen []int
	errStop := errors.New("stop")
	err := tt.WalkReverse(func(r arena.Ref) error {
		seen = append(seen, tt.key(r))
		if len(seen) == 4 {
			return errStop
		}
		return nil
	})
	assert.Equal(t, errStop, err)
	assert.Equal(t, []int{10, 9, 8, 7}, seen)
}

// TestTreeHeightLogarithmic verifies that random priorities keep a tree fed
// with sorted keys shallow.
func TestTreeHeightLogarithmic(t *testing.T) {
	tt := newTestTree()
	src := NewRandSource(42)
	const n = 4096
	for k := 0; k < n; k++ {
		tt.add(k, src.Next())
	}
	require.NoError(t, tt.Verify())
	assert.Less(t, tt.Height(), 60)
}

// TestTreeTwoOrdersOverSharedNodes verifies that two trees can order the
// same nodes independently through different link slots.
func TestTreeTwoOrdersOverSharedNodes(t *testing.T) {
	a := arena.New[testNode](0)
	h := a.Alloc(testNode{links: [2]Links{Unlinked, Unlinked}})
	byFirst := NewTree[int](testNodes{a: a, slot: 0}, intLess, h)
	bySecond := NewTree[int](testNodes{a: a, slot: 1}, intGreater, h)

	src := NewRandSource(8)
	refs := map[int]arena.Ref{}
	for k := 0; k < 20; k++ {
		r := a.Alloc(testNode{keys: [2]int{k, k * 7 % 20}, priority: src.Next(), links: [2]Links{Unlinked, Unlinked}})
		byFirst.Insert(r)
		bySecond.Insert(r)
		refs[k] = r
	}
	require.NoError(t, byFirst.Verify())
	require.NoError(t, bySecond.Verify())

	// Same node, found from either side.
	for k, r := range refs {
		assert.Equal(t, r, byFirst.Find(k))
		assert.Equal(t, r, bySecond.Find(k*7%20))
	}

	prev := 20
	_ = bySecond.Walk(func(r arena.Ref) error {
		assert.Less(t, a.Get(r).keys[1], prev)
		prev = a.Get(r).keys[1]
		return nil
	})

	byFirst.Unlink(refs[3])
	bySecond.Unlink(refs[3])
	require.NoError(t, byFirst.Verify())
	require.NoError(t, bySecond.Verify())
	assert.Equal(t, 19, byFirst.Count())
	assert.Equal(t, 19, bySecond.Count())
}

// TestTreeVerifyDetectsCorruption verifies that Verify reports broken heap,
// ordering and parent invariants.
func TestTreeVerifyDetectsCorruption(t *testing.T) {
	build := func() (testTree, map[int]arena.Ref) {
		tt := newTestTree()
		refs := map[int]arena.Ref{}
		prios := []Priority{50, 80, 30, 90, 10, 60, 20}
		for i, k := range []int{1, 2, 3, 4, 5, 6, 7} {
			refs[k] = tt.add(k, prios[i])
		}
		require.NoError(t, tt.Verify())
		return tt, refs
	}

	tt, _ := build()
	root := tt.Root()
	tt.a.Get(tt.links(root).Lo).priority = 1000
	assert.True(t, errors.Is(tt.Verify(), ErrCorrupt))

	tt, _ = build()
	root = tt.Root()
	tt.a.Get(tt.links(root).Lo).keys[0] = 100
	assert.True(t, errors.Is(tt.Verify(), ErrCorrupt))

	tt, refs := build()
	tt.links(refs[1]).Parent = refs[7]
	assert.True(t, errors.Is(tt.Verify(), ErrCorrupt))
}
