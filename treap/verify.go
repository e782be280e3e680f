package treap

import (
	"github.com/pkg/errors"

	"github.com/cbehopkins/bimap/arena"
)

// ErrCorrupt is wrapped by every error Verify reports.
var ErrCorrupt = errors.New("treap invariant violated")

// Verify walks the whole tree and checks the ordering, heap and parent-link
// invariants. It returns nil for a well-formed tree.
func (t *Tree[K]) Verify() error {
	h := t.links(t.header)
	if h.Parent != arena.Nil || h.Hi != arena.Nil {
		return errors.Wrapf(ErrCorrupt, "header %d has parent %d and hi %d", t.header, h.Parent, h.Hi)
	}

	// lo and hi are the nearest ancestors bounding the node's key from
	// below and above.
	type frame struct {
		node, parent, lo, hi arena.Ref
	}
	root := t.Root()
	if root == arena.Nil {
		return nil
	}
	stack := []frame{{node: root, parent: t.header, lo: arena.Nil, hi: arena.Nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		l := t.links(f.node)
		if l.Parent != f.parent {
			return errors.Wrapf(ErrCorrupt, "node %d has parent %d, expected %d", f.node, l.Parent, f.parent)
		}
		key := t.nodes.Key(f.node)
		if f.lo != arena.Nil && !t.less(t.nodes.Key(f.lo), key) {
			return errors.Wrapf(ErrCorrupt, "bst property violated: node %d does not order after %d", f.node, f.lo)
		}
		if f.hi != arena.Nil && !t.less(key, t.nodes.Key(f.hi)) {
			return errors.Wrapf(ErrCorrupt, "bst property violated: node %d does not order before %d", f.node, f.hi)
		}
		if f.parent != t.header && t.nodes.Priority(f.parent) < t.nodes.Priority(f.node) {
			return errors.Wrapf(ErrCorrupt, "heap property violated: parent %d priority %d < child %d priority %d",
				f.parent, t.nodes.Priority(f.parent), f.node, t.nodes.Priority(f.node))
		}

		if l.Lo != arena.Nil {
			stack = append(stack, frame{node: l.Lo, parent: f.node, lo: f.lo, hi: f.node})
		}
		if l.Hi != arena.Nil {
			stack = append(stack, frame{node: l.Hi, parent: f.node, lo: f.node, hi: f.hi})
		}
	}
	return nil
}
