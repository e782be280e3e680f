package bimap

import (
	"github.com/pkg/errors"

	"github.com/cbehopkins/bimap/arena"
)

// cursor is the position shared by both iterator kinds: a pair node of a
// particular bimap state, pinned to the node's generation so that a reused
// slot is never mistaken for the erased pair.
type cursor[L, R any] struct {
	s   *state[L, R]
	ref arena.Ref
	gen uint32
}

func (s *state[L, R]) cursorAt(ref arena.Ref) cursor[L, R] {
	return cursor[L, R]{s: s, ref: ref, gen: s.nodes.Gen(ref)}
}

func (s *state[L, R]) leftAt(ref arena.Ref) LeftIterator[L, R] {
	return LeftIterator[L, R]{s.cursorAt(ref)}
}

func (s *state[L, R]) rightAt(ref arena.Ref) RightIterator[L, R] {
	return RightIterator[L, R]{s.cursorAt(ref)}
}

func (c cursor[L, R]) valid() bool {
	return c.s != nil && c.s.nodes.Live(c.ref) && c.s.nodes.Gen(c.ref) == c.gen
}

func (c cursor[L, R]) check() error {
	if c.s == nil {
		return errors.WithMessage(ErrInvalidIterator, "zero iterator")
	}
	if !c.valid() {
		return errors.Wrapf(ErrStaleIterator, "slot %d", c.ref)
	}
	return nil
}

// checkOwned verifies that c is a live iterator of s.
func (s *state[L, R]) checkOwned(c cursor[L, R]) error {
	if c.s != nil && c.s != s {
		return ErrForeignIterator
	}
	return c.check()
}

// checkErasable verifies that c is a live iterator of s pointing at a pair.
func (s *state[L, R]) checkErasable(c cursor[L, R]) error {
	if err := s.checkOwned(c); err != nil {
		return err
	}
	if c.ref == s.header {
		return ErrEndIterator
	}
	return nil
}

// node returns the pair c points at, panicking on end or stale iterators.
func (c cursor[L, R]) node() *pairNode[L, R] {
	c.mustCheck()
	if c.ref == c.s.header {
		panic(ErrEndIterator)
	}
	return c.s.nodes.Get(c.ref)
}

// mustCheck panics unless c is a live iterator.
func (c cursor[L, R]) mustCheck() {
	if err := c.check(); err != nil {
		panic(err)
	}
}

// moved returns the cursor at ref, which arena.Nil marks as a step across
// either end of the view.
func (c cursor[L, R]) moved(ref arena.Ref, what string) cursor[L, R] {
	if ref == arena.Nil {
		panic(errors.WithMessage(ErrOutOfRange, what))
	}
	return c.s.cursorAt(ref)
}

// LeftIterator is a position in the left view of a Bimap: pairs in ascending
// left key order followed by the end position.
//
// Iterators are values. Two iterators are == when they denote the same
// position of the same bimap. Dereferencing or stepping an iterator that is
// at end, past begin, or whose pair was erased panics with an error wrapping
// ErrInvalidIterator.
type LeftIterator[L, R any] struct {
	cursor[L, R]
}

// Key returns the left key of the pair.
func (it LeftIterator[L, R]) Key() L {
	return it.node().left
}

// Value returns the right key paired with Key.
func (it LeftIterator[L, R]) Value() R {
	return it.node().right
}

// Next returns the iterator to the following left key, or end.
func (it LeftIterator[L, R]) Next() LeftIterator[L, R] {
	it.mustCheck()
	return LeftIterator[L, R]{it.moved(it.s.left.Next(it.ref), "next of end")}
}

// Prev returns the iterator to the preceding left key. Prev of end is the
// last pair.
func (it LeftIterator[L, R]) Prev() LeftIterator[L, R] {
	it.mustCheck()
	return LeftIterator[L, R]{it.moved(it.s.left.Prev(it.ref), "prev of begin")}
}

// Flip returns the right view iterator of the same pair. End flips to end.
func (it LeftIterator[L, R]) Flip() RightIterator[L, R] {
	it.mustCheck()
	return RightIterator[L, R]{it.cursor}
}

// IsEnd reports whether it is the end position.
func (it LeftIterator[L, R]) IsEnd() bool {
	return it.s != nil && it.ref == it.s.header
}

// Valid reports whether it may be used: it was obtained from a bimap and
// its pair has not been erased since.
func (it LeftIterator[L, R]) Valid() bool {
	return it.valid()
}

// RightIterator is a position in the right view of a Bimap. It behaves as
// LeftIterator with the roles of the keys exchanged.
type RightIterator[L, R any] struct {
	cursor[L, R]
}

// Key returns the right key of the pair.
func (it RightIterator[L, R]) Key() R {
	return it.node().right
}

// Value returns the left key paired with Key.
func (it RightIterator[L, R]) Value() L {
	return it.node().left
}

// Next returns the iterator to the following right key, or end.
func (it RightIterator[L, R]) Next() RightIterator[L, R] {
	it.mustCheck()
	return RightIterator[L, R]{it.moved(it.s.right.Next(it.ref), "next of end")}
}

// Prev returns the iterator to the preceding right key. Prev of end is the
// last pair.
func (it RightIterator[L, R]) Prev() RightIterator[L, R] {
	it.mustCheck()
	return RightIterator[L, R]{it.moved(it.s.right.Prev(it.ref), "prev of begin")}
}

// Flip returns the left view iterator of the same pair. End flips to end.
func (it RightIterator[L, R]) Flip() LeftIterator[L, R] {
	it.mustCheck()
	return LeftIterator[L, R]{it.cursor}
}

// IsEnd reports whether it is the end position.
func (it RightIterator[L, R]) IsEnd() bool {
	return it.s != nil && it.ref == it.s.header
}

// Valid reports whether it may be used.
func (it RightIterator[L, R]) Valid() bool {
	return it.valid()
}
