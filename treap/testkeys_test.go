package treap

import (
	"github.com/cbehopkins/bimap/arena"
)

// testNode carries two keys and two sets of links so the same node can be
// ordered by two trees at once.
type testNode struct {
	keys     [2]int
	priority Priority
	links    [2]Links
}

type testNodes struct {
	a    *arena.Arena[testNode]
	slot int
}

func (n testNodes) Key(r arena.Ref) int           { return n.a.Get(r).keys[n.slot] }
func (n testNodes) Priority(r arena.Ref) Priority { return n.a.Get(r).priority }
func (n testNodes) Links(r arena.Ref) *Links      { return &n.a.Get(r).links[n.slot] }

func intLess(a, b int) bool { return a < b }

func intGreater(a, b int) bool { return a > b }

type testTree struct {
	*Tree[int]
	a *arena.Arena[testNode]
}

func newTestTree() testTree {
	a := arena.New[testNode](0)
	h := a.Alloc(testNode{links: [2]Links{Unlinked, Unlinked}})
	return testTree{Tree: NewTree[int](testNodes{a: a}, intLess, h), a: a}
}

func (tt testTree) add(key int, prio Priority) arena.Ref {
	r := tt.a.Alloc(testNode{
		keys:     [2]int{key, key},
		priority: prio,
		links:    [2]Links{Unlinked, Unlinked},
	})
	tt.Insert(r)
	return r
}

func (tt testTree) key(r arena.Ref) int {
	return tt.a.Get(r).keys[0]
}

func (tt testTree) keys() []int {
	var out []int
	_ = tt.Walk(func(r arena.Ref) error {
		out = append(out, tt.key(r))
		return nil
	})
	return out
}
