package bimap

import (
	"golang.org/x/exp/constraints"

	"github.com/cbehopkins/bimap/arena"
	"github.com/cbehopkins/bimap/treap"
)

// side selects which of a pair node's link sets a tree uses.
type side int

const (
	sideLeft side = iota
	sideRight
)

// pairNode is one stored (left, right) pair. The same node sits in the
// left-keyed and the right-keyed tree; each tree uses its own links entry.
type pairNode[L, R any] struct {
	left     L
	right    R
	priority treap.Priority
	links    [2]treap.Links
}

// leftNodes presents pair nodes to the left-keyed tree.
type leftNodes[L, R any] struct {
	a *arena.Arena[pairNode[L, R]]
}

func (v leftNodes[L, R]) Key(r arena.Ref) L                 { return v.a.Get(r).left }
func (v leftNodes[L, R]) Priority(r arena.Ref) treap.Priority { return v.a.Get(r).priority }
func (v leftNodes[L, R]) Links(r arena.Ref) *treap.Links      { return &v.a.Get(r).links[sideLeft] }

// rightNodes presents pair nodes to the right-keyed tree.
type rightNodes[L, R any] struct {
	a *arena.Arena[pairNode[L, R]]
}

func (v rightNodes[L, R]) Key(r arena.Ref) R                 { return v.a.Get(r).right }
func (v rightNodes[L, R]) Priority(r arena.Ref) treap.Priority { return v.a.Get(r).priority }
func (v rightNodes[L, R]) Links(r arena.Ref) *treap.Links      { return &v.a.Get(r).links[sideRight] }

// Less is the natural ordering of T.
func Less[T constraints.Ordered](a, b T) bool {
	return a < b
}
