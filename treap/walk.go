package treap

import (
	"github.com/cbehopkins/bimap/arena"
)

// TreeCallback is invoked for each node during a traversal. Returning an
// error halts the traversal and the error is handed back to the caller.
type TreeCallback func(r arena.Ref) error

// Walk visits every node in ascending key order.
//
// The traversal keeps its own stack rather than recursing. The callback may
// read the tree but must not modify it.
func (t *Tree[K]) Walk(callback TreeCallback) error {
	stack := make([]arena.Ref, 0, 32)
	cur := t.Root()
	for cur != arena.Nil || len(stack) > 0 {
		for cur != arena.Nil {
			stack = append(stack, cur)
			cur = t.links(cur).Lo
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := callback(node); err != nil {
			return err
		}
		cur = t.links(node).Hi
	}
	return nil
}

// WalkReverse visits every node in descending key order.
func (t *Tree[K]) WalkReverse(callback TreeCallback) error {
	stack := make([]arena.Ref, 0, 32)
	cur := t.Root()
	for cur != arena.Nil || len(stack) > 0 {
		for cur != arena.Nil {
			stack = append(stack, cur)
			cur = t.links(cur).Hi
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := callback(node); err != nil {
			return err
		}
		cur = t.links(node).Lo
	}
	return nil
}

// Count returns the number of nodes in the tree.
func (t *Tree[K]) Count() int {
	count := 0
	_ = t.Walk(func(arena.Ref) error {
		count++
		return nil
	})
	return count
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K]) Height() int {
	type frame struct {
		node  arena.Ref
		depth int
	}
	root := t.Root()
	if root == arena.Nil {
		return 0
	}
	height := 0
	stack := []frame{{root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > height {
			height = f.depth
		}
		l := t.links(f.node)
		if l.Lo != arena.Nil {
			stack = append(stack, frame{l.Lo, f.depth + 1})
		}
		if l.Hi != arena.Nil {
			stack = append(stack, frame{l.Hi, f.depth + 1})
		}
	}
	return height
}
