// Package treap implements the ordering engine of the bimap: a treap (tree +
// heap) whose nodes live outside the tree.
//
// A Tree never owns its nodes. It addresses them by arena.Ref and reaches
// their keys, priorities and linkage through a Nodes accessor, so the same
// node can sit in several trees at once as long as each tree is handed a
// different set of Links. Every Tree has a header node: the header's Lo link
// is the root, the root's parent is the header, and the header doubles as the
// past-the-end position.
//
// Insert and erase use split and merge rather than rotations, and both are
// written iteratively with hooks into the Links fields, so tree depth never
// becomes call-stack depth.
package treap

import (
	"fmt"

	"github.com/cbehopkins/bimap/arena"
)

// Tree orders a set of nodes by key with a max-heap on priority.
type Tree[K any] struct {
	nodes  Nodes[K]
	less   func(a, b K) bool
	header arena.Ref
}

// NewTree creates a tree over nodes ordered by less. header must be an
// allocated node whose Links are Unlinked; it is never asked for its key.
func NewTree[K any](nodes Nodes[K], less func(a, b K) bool, header arena.Ref) *Tree[K] {
	return &Tree[K]{
		nodes:  nodes,
		less:   less,
		header: header,
	}
}

// Header returns the header node, which is the past-the-end position.
func (t *Tree[K]) Header() arena.Ref {
	return t.header
}

// Root returns the root node, or arena.Nil for an empty tree.
func (t *Tree[K]) Root() arena.Ref {
	return t.nodes.Links(t.header).Lo
}

// Empty reports whether the tree holds no nodes.
func (t *Tree[K]) Empty() bool {
	return t.Root() == arena.Nil
}

// Less reports whether a orders before b.
func (t *Tree[K]) Less(a, b K) bool {
	return t.less(a, b)
}

// Equivalent reports whether neither key orders before the other.
func (t *Tree[K]) Equivalent(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
}

func (t *Tree[K]) links(r arena.Ref) *Links {
	return t.nodes.Links(r)
}

func (t *Tree[K]) setParent(r, parent arena.Ref) {
	if r != arena.Nil {
		t.links(r).Parent = parent
	}
}

// Insert links node r into the tree. No node with an equivalent key may be
// present already.
func (t *Tree[K]) Insert(r arena.Ref) {
	key := t.nodes.Key(r)
	prio := t.nodes.Priority(r)

	parent := t.header
	hook := &t.links(t.header).Lo
	for cur := *hook; cur != arena.Nil; cur = *hook {
		if prio > t.nodes.Priority(cur) {
			break
		}
		parent = cur
		if t.less(key, t.nodes.Key(cur)) {
			hook = &t.links(cur).Lo
		} else {
			hook = &t.links(cur).Hi
		}
	}

	n := t.links(r)
	n.Lo, n.Hi = t.split(*hook, key)
	t.setParent(n.Lo, r)
	t.setParent(n.Hi, r)
	n.Parent = parent
	*hook = r
}

// split partitions the subtree at cur into the nodes ordered before key and
// the nodes ordered after it. The roots of both parts come back with a Nil
// parent.
func (t *Tree[K]) split(cur arena.Ref, key K) (lo, hi arena.Ref) {
	lo, hi = arena.Nil, arena.Nil
	loHook, hiHook := &lo, &hi
	loParent, hiParent := arena.Nil, arena.Nil
	for cur != arena.Nil {
		l := t.links(cur)
		if t.less(key, t.nodes.Key(cur)) {
			*hiHook = cur
			l.Parent = hiParent
			hiParent = cur
			hiHook = &l.Lo
			cur = l.Lo
		} else {
			*loHook = cur
			l.Parent = loParent
			loParent = cur
			loHook = &l.Hi
			cur = l.Hi
		}
	}
	*loHook = arena.Nil
	*hiHook = arena.Nil
	return lo, hi
}

// merge joins two subtrees where every key of a orders before every key of
// b. The root of the result comes back with a Nil parent.
func (t *Tree[K]) merge(a, b arena.Ref) arena.Ref {
	root := arena.Nil
	hook := &root
	parent := arena.Nil
	for a != arena.Nil && b != arena.Nil {
		if t.nodes.Priority(b) < t.nodes.Priority(a) {
			l := t.links(a)
			*hook = a
			l.Parent = parent
			parent = a
			hook = &l.Hi
			a = l.Hi
		} else {
			l := t.links(b)
			*hook = b
			l.Parent = parent
			parent = b
			hook = &l.Lo
			b = l.Lo
		}
	}
	rest := a
	if rest == arena.Nil {
		rest = b
	}
	*hook = rest
	t.setParent(rest, parent)
	return root
}

// childHook returns the field of parent that points at child.
func (t *Tree[K]) childHook(parent, child arena.Ref) *arena.Ref {
	p := t.links(parent)
	switch child {
	case p.Lo:
		return &p.Lo
	case p.Hi:
		return &p.Hi
	}
	panic(fmt.Sprintf("corrupt treap: node %d is not a child of its parent %d", child, parent))
}

// Unlink removes node r from the tree. Its Links are reset to Unlinked.
func (t *Tree[K]) Unlink(r arena.Ref) {
	n := t.links(r)
	hook := t.childHook(n.Parent, r)
	m := t.merge(n.Lo, n.Hi)
	*hook = m
	t.setParent(m, n.Parent)
	*n = Unlinked
}

// Erase removes the node whose key is equivalent to key. It reports whether
// such a node was present.
func (t *Tree[K]) Erase(key K) bool {
	r := t.Find(key)
	if r == t.header {
		return false
	}
	t.Unlink(r)
	return true
}

// Find returns the node with a key equivalent to key, or the header.
func (t *Tree[K]) Find(key K) arena.Ref {
	r := t.LowerBound(key)
	if r != t.header && !t.less(key, t.nodes.Key(r)) {
		return r
	}
	return t.header
}

// LowerBound returns the first node whose key does not order before key, or
// the header.
func (t *Tree[K]) LowerBound(key K) arena.Ref {
	res := t.header
	for cur := t.Root(); cur != arena.Nil; {
		if !t.less(t.nodes.Key(cur), key) {
			res = cur
			cur = t.links(cur).Lo
		} else {
			cur = t.links(cur).Hi
		}
	}
	return res
}

// UpperBound returns the first node whose key orders after key, or the
// header.
func (t *Tree[K]) UpperBound(key K) arena.Ref {
	res := t.header
	for cur := t.Root(); cur != arena.Nil; {
		if t.less(key, t.nodes.Key(cur)) {
			res = cur
			cur = t.links(cur).Lo
		} else {
			cur = t.links(cur).Hi
		}
	}
	return res
}

func (t *Tree[K]) leftmost(r arena.Ref) arena.Ref {
	for l := t.links(r).Lo; l != arena.Nil; l = t.links(r).Lo {
		r = l
	}
	return r
}

func (t *Tree[K]) rightmost(r arena.Ref) arena.Ref {
	for h := t.links(r).Hi; h != arena.Nil; h = t.links(r).Hi {
		r = h
	}
	return r
}

// First returns the node with the smallest key, or the header when the tree
// is empty.
func (t *Tree[K]) First() arena.Ref {
	root := t.Root()
	if root == arena.Nil {
		return t.header
	}
	return t.leftmost(root)
}

// Last returns the node with the largest key, or the header when the tree
// is empty.
func (t *Tree[K]) Last() arena.Ref {
	root := t.Root()
	if root == arena.Nil {
		return t.header
	}
	return t.rightmost(root)
}

// Next returns the in-order successor of r. The successor of the last node
// is the header; the header has no successor and yields arena.Nil.
func (t *Tree[K]) Next(r arena.Ref) arena.Ref {
	if r == t.header {
		return arena.Nil
	}
	if hi := t.links(r).Hi; hi != arena.Nil {
		return t.leftmost(hi)
	}
	for {
		p := t.links(r).Parent
		if t.links(p).Lo == r {
			return p
		}
		r = p
	}
}

// Prev returns the in-order predecessor of r. The predecessor of the header
// is the last node; the first node has no predecessor and yields arena.Nil.
func (t *Tree[K]) Prev(r arena.Ref) arena.Ref {
	if r == t.header {
		if t.Empty() {
			return arena.Nil
		}
		return t.Last()
	}
	if lo := t.links(r).Lo; lo != arena.Nil {
		return t.rightmost(lo)
	}
	for {
		p := t.links(r).Parent
		if p == t.header {
			return arena.Nil
		}
		if t.links(p).Hi == r {
			return p
		}
		r = p
	}
}
