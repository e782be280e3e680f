package testutil

import (
	"github.com/tidwall/btree"
)

// Pair is one (left, right) association of a Model.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Model is a reference bimap built from two B-trees, one keyed by each side
// of a pair. It is deliberately simple and is used to check the treap based
// implementation against.
type Model[L, R any] struct {
	lessL func(a, b L) bool
	lessR func(a, b R) bool
	left  *btree.BTreeG[Pair[L, R]]
	right *btree.BTreeG[Pair[L, R]]
}

// NewModel returns an empty model ordered by lessL and lessR.
func NewModel[L, R any](lessL func(a, b L) bool, lessR func(a, b R) bool) *Model[L, R] {
	return &Model[L, R]{
		lessL: lessL,
		lessR: lessR,
		left: btree.NewBTreeG(func(a, b Pair[L, R]) bool {
			return lessL(a.Left, b.Left)
		}),
		right: btree.NewBTreeG(func(a, b Pair[L, R]) bool {
			return lessR(a.Right, b.Right)
		}),
	}
}

// Len returns the number of pairs.
func (m *Model[L, R]) Len() int {
	return m.left.Len()
}

// Insert adds (l, r) unless l or r is already in use, reporting whether the
// pair was added.
func (m *Model[L, R]) Insert(l L, r R) bool {
	p := Pair[L, R]{Left: l, Right: r}
	if _, ok := m.left.Get(p); ok {
		return false
	}
	if _, ok := m.right.Get(p); ok {
		return false
	}
	m.left.Set(p)
	m.right.Set(p)
	return true
}

// RightOf returns the right key paired with l.
func (m *Model[L, R]) RightOf(l L) (R, bool) {
	p, ok := m.left.Get(Pair[L, R]{Left: l})
	return p.Right, ok
}

// LeftOf returns the left key paired with r.
func (m *Model[L, R]) LeftOf(r R) (L, bool) {
	p, ok := m.right.Get(Pair[L, R]{Right: r})
	return p.Left, ok
}

// EraseLeft removes the pair with left key l.
func (m *Model[L, R]) EraseLeft(l L) bool {
	p, ok := m.left.Delete(Pair[L, R]{Left: l})
	if ok {
		m.right.Delete(p)
	}
	return ok
}

// EraseRight removes the pair with right key r.
func (m *Model[L, R]) EraseRight(r R) bool {
	p, ok := m.right.Delete(Pair[L, R]{Right: r})
	if ok {
		m.left.Delete(p)
	}
	return ok
}

// LowerBoundLeft returns the pair with the smallest left key not ordered
// before l.
func (m *Model[L, R]) LowerBoundLeft(l L) (Pair[L, R], bool) {
	return first(m.left, Pair[L, R]{Left: l})
}

// LowerBoundRight returns the pair with the smallest right key not ordered
// before r.
func (m *Model[L, R]) LowerBoundRight(r R) (Pair[L, R], bool) {
	return first(m.right, Pair[L, R]{Right: r})
}

func first[T any](t *btree.BTreeG[T], pivot T) (T, bool) {
	var (
		out   T
		found bool
	)
	t.Ascend(pivot, func(item T) bool {
		out, found = item, true
		return false
	})
	return out, found
}

// LeftPairs returns every pair in ascending left key order.
func (m *Model[L, R]) LeftPairs() []Pair[L, R] {
	return collect(m.left)
}

// RightPairs returns every pair in ascending right key order.
func (m *Model[L, R]) RightPairs() []Pair[L, R] {
	return collect(m.right)
}

func collect[T any](t *btree.BTreeG[T]) []T {
	out := make([]T, 0, t.Len())
	t.Scan(func(item T) bool {
		out = append(out, item)
		return true
	})
	return out
}
