package treap

import "github.com/cbehopkins/bimap/arena"

// Links are the tree pointers a node carries for one tree. A node that takes
// part in several trees carries one Links per tree.
type Links struct {
	Parent arena.Ref
	Lo     arena.Ref
	Hi     arena.Ref
}

// Unlinked is the linkage of a node that belongs to no tree.
var Unlinked = Links{Parent: arena.Nil, Lo: arena.Nil, Hi: arena.Nil}

// Nodes gives a Tree access to the nodes it orders. A Tree never allocates or
// frees nodes; it only reads keys and priorities and rewrites the Links
// returned for its own tree.
type Nodes[K any] interface {
	// Key returns the key the tree orders the node by.
	Key(r arena.Ref) K
	// Priority returns the heap priority of the node.
	Priority(r arena.Ref) Priority
	// Links returns the node's linkage for this tree. The pointer must stay
	// valid while the node is allocated.
	Links(r arena.Ref) *Links
}

// PriorityProvider is an optional interface that keys can implement to provide
// their own priority value for the treap. This is useful for keys that have
// inherently well-distributed values (like hash values) that can serve as
// priorities, avoiding the need to draw random priorities.
type PriorityProvider interface {
	// Priority returns the priority value to use for this key in the treap.
	Priority() Priority
}

// Source hands out node priorities.
type Source interface {
	Next() Priority
}
