// Package bimap provides an ordered bidirectional map: a one-to-one
// correspondence between left keys and right keys with logarithmic lookup,
// ordered iteration and bound queries from either side.
//
// Each stored pair is a single node that takes part in two treaps, one
// ordered by the left key and one by the right key. Iterators into either
// view can be flipped to the other view of the same pair in constant time.
//
// A Bimap is not safe for concurrent use.
//
// # Usage Example
//
//	m := bimap.NewOrdered[int, string]()
//	m.Insert(1, "one")
//	m.Insert(2, "two")
//
//	r, _ := m.AtLeft(1)      // "one"
//	l, _ := m.AtRight("two") // 2
//
//	for it := m.BeginRight(); !it.IsEnd(); it = it.Next() {
//	    fmt.Println(it.Key(), it.Value())
//	}
package bimap

import (
	"iter"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/cbehopkins/bimap/arena"
	"github.com/cbehopkins/bimap/treap"
)

// state is everything a Bimap owns. Iterators point at the state rather
// than at the Bimap so that Swap can exchange contents in constant time
// while iterators keep following their elements.
type state[L, R any] struct {
	nodes  *arena.Arena[pairNode[L, R]]
	header arena.Ref
	left   *treap.Tree[L]
	right  *treap.Tree[R]
	lessL  func(a, b L) bool
	lessR  func(a, b R) bool
	size   int
	source treap.Source
	logger logrus.FieldLogger
}

// Bimap is an ordered one-to-one map between values of L and values of R.
// Create one with New or NewOrdered; the zero value is not usable.
type Bimap[L, R any] struct {
	s *state[L, R]
}

// New creates an empty Bimap whose left keys are ordered by lessL and whose
// right keys are ordered by lessR. Both must be strict weak orders; keys the
// order cannot tell apart are treated as the same key.
func New[L, R any](lessL func(a, b L) bool, lessR func(a, b R) bool, opts ...Option) *Bimap[L, R] {
	cfg := newConfig(opts)
	s := &state[L, R]{
		// One extra slot for the header.
		nodes:  arena.New[pairNode[L, R]](cfg.capacity + 1),
		lessL:  lessL,
		lessR:  lessR,
		source: cfg.source,
		logger: cfg.logger,
	}
	s.header = s.nodes.Alloc(pairNode[L, R]{links: [2]treap.Links{treap.Unlinked, treap.Unlinked}})
	s.bindTrees()
	return &Bimap[L, R]{s: s}
}

// NewOrdered creates an empty Bimap ordered by the natural order of L and R.
func NewOrdered[L, R constraints.Ordered](opts ...Option) *Bimap[L, R] {
	return New(Less[L], Less[R], opts...)
}

func (s *state[L, R]) bindTrees() {
	s.left = treap.NewTree[L](leftNodes[L, R]{a: s.nodes}, s.lessL, s.header)
	s.right = treap.NewTree[R](rightNodes[L, R]{a: s.nodes}, s.lessR, s.header)
}

func (s *state[L, R]) priorityFor(l L) treap.Priority {
	if pp, ok := any(l).(treap.PriorityProvider); ok {
		return pp.Priority()
	}
	return s.source.Next()
}

// unlink removes a pair from both trees and releases its node.
func (s *state[L, R]) unlink(r arena.Ref) {
	s.left.Unlink(r)
	s.right.Unlink(r)
	if err := s.nodes.Free(r); err != nil {
		panic(errors.Wrap(err, "release pair node"))
	}
	s.size--
}

// Len returns the number of stored pairs.
func (m *Bimap[L, R]) Len() int {
	return m.s.size
}

// Empty reports whether the Bimap holds no pairs.
func (m *Bimap[L, R]) Empty() bool {
	return m.s.size == 0
}

// Insert stores the pair (l, r) and returns an iterator to l. If l is already
// a left key or r is already a right key nothing is stored and EndLeft is
// returned.
func (m *Bimap[L, R]) Insert(l L, r R) LeftIterator[L, R] {
	s := m.s
	if s.left.Find(l) != s.header || s.right.Find(r) != s.header {
		return m.EndLeft()
	}
	ref := s.nodes.Alloc(pairNode[L, R]{
		left:     l,
		right:    r,
		priority: s.priorityFor(l),
		links:    [2]treap.Links{treap.Unlinked, treap.Unlinked},
	})
	s.left.Insert(ref)
	s.right.Insert(ref)
	s.size++
	return s.leftAt(ref)
}

// EraseLeft removes the pair it points at and returns an iterator to the
// next left key. it must be a valid, non-end iterator of m; otherwise an
// error wrapping ErrInvalidIterator is returned and m is unchanged.
//
// Iterators to the erased pair, from either view, become stale; all other
// iterators stay valid.
func (m *Bimap[L, R]) EraseLeft(it LeftIterator[L, R]) (LeftIterator[L, R], error) {
	if err := m.s.checkErasable(it.cursor); err != nil {
		return m.EndLeft(), errors.Wrap(err, "erase left")
	}
	next := m.s.left.Next(it.ref)
	m.s.unlink(it.ref)
	return m.s.leftAt(next), nil
}

// EraseRight is EraseLeft for the right view.
func (m *Bimap[L, R]) EraseRight(it RightIterator[L, R]) (RightIterator[L, R], error) {
	if err := m.s.checkErasable(it.cursor); err != nil {
		return m.EndRight(), errors.Wrap(err, "erase right")
	}
	next := m.s.right.Next(it.ref)
	m.s.unlink(it.ref)
	return m.s.rightAt(next), nil
}

// EraseLeftKey removes the pair with left key l, reporting whether there was
// one.
func (m *Bimap[L, R]) EraseLeftKey(l L) bool {
	ref := m.s.left.Find(l)
	if ref == m.s.header {
		return false
	}
	m.s.unlink(ref)
	return true
}

// EraseRightKey removes the pair with right key r, reporting whether there
// was one.
func (m *Bimap[L, R]) EraseRightKey(r R) bool {
	ref := m.s.right.Find(r)
	if ref == m.s.header {
		return false
	}
	m.s.unlink(ref)
	return true
}

// EraseLeftRange removes every pair in [first, last) of the left view and
// returns last. last must be reachable from first; if it is not, or either
// iterator is invalid, nothing is removed and an error wrapping
// ErrInvalidIterator is returned.
func (m *Bimap[L, R]) EraseLeftRange(first, last LeftIterator[L, R]) (LeftIterator[L, R], error) {
	n, err := m.s.rangeLen(first.cursor, last.cursor, m.s.left.Next)
	if err != nil {
		return m.EndLeft(), errors.Wrap(err, "erase left range")
	}
	for it := first; it != last; {
		it, _ = m.EraseLeft(it)
	}
	m.s.logger.WithField("action", "erase_left_range").WithField("count", n).Debug("erased range")
	return last, nil
}

// EraseRightRange is EraseLeftRange for the right view.
func (m *Bimap[L, R]) EraseRightRange(first, last RightIterator[L, R]) (RightIterator[L, R], error) {
	n, err := m.s.rangeLen(first.cursor, last.cursor, m.s.right.Next)
	if err != nil {
		return m.EndRight(), errors.Wrap(err, "erase right range")
	}
	for it := first; it != last; {
		it, _ = m.EraseRight(it)
	}
	m.s.logger.WithField("action", "erase_right_range").WithField("count", n).Debug("erased range")
	return last, nil
}

// rangeLen counts the elements in [first, last) by stepping with next, and
// checks that both ends are usable iterators of s.
func (s *state[L, R]) rangeLen(first, last cursor[L, R], next func(arena.Ref) arena.Ref) (int, error) {
	for _, c := range []cursor[L, R]{first, last} {
		if err := s.checkOwned(c); err != nil {
			return 0, err
		}
	}
	n := 0
	for ref := first.ref; ref != last.ref; ref = next(ref) {
		if ref == s.header {
			return 0, errors.Wrap(ErrOutOfRange, "last is not reachable from first")
		}
		n++
	}
	return n, nil
}

// FindLeft returns an iterator to left key l, or EndLeft.
func (m *Bimap[L, R]) FindLeft(l L) LeftIterator[L, R] {
	return m.s.leftAt(m.s.left.Find(l))
}

// FindRight returns an iterator to right key r, or EndRight.
func (m *Bimap[L, R]) FindRight(r R) RightIterator[L, R] {
	return m.s.rightAt(m.s.right.Find(r))
}

// AtLeft returns the right key paired with l. The error wraps ErrNotFound
// when l is not stored.
func (m *Bimap[L, R]) AtLeft(l L) (R, error) {
	ref := m.s.left.Find(l)
	if ref == m.s.header {
		var zero R
		return zero, errors.Wrapf(ErrNotFound, "left key %v", l)
	}
	return m.s.nodes.Get(ref).right, nil
}

// AtRight returns the left key paired with r. The error wraps ErrNotFound
// when r is not stored.
func (m *Bimap[L, R]) AtRight(r R) (L, error) {
	ref := m.s.right.Find(r)
	if ref == m.s.header {
		var zero L
		return zero, errors.Wrapf(ErrNotFound, "right key %v", r)
	}
	return m.s.nodes.Get(ref).left, nil
}

// AtLeftOrDefault returns the right key paired with l. If l is not stored,
// the pair (l, zero R) is inserted first; should the zero R already be paired
// with another left key, that pair is erased to make room.
func (m *Bimap[L, R]) AtLeftOrDefault(l L) R {
	s := m.s
	if ref := s.left.Find(l); ref != s.header {
		return s.nodes.Get(ref).right
	}
	var zero R
	if owner := s.right.Find(zero); owner != s.header {
		s.logger.WithFields(logrus.Fields{
			"action":    "at_left_or_default",
			"left":      l,
			"displaced": s.nodes.Get(owner).left,
		}).Debug("default right value taken from another pair")
		s.unlink(owner)
	}
	m.Insert(l, zero)
	return zero
}

// AtRightOrDefault returns the left key paired with r. If r is not stored,
// the pair (zero L, r) is inserted first; should the zero L already be paired
// with another right key, that pair is erased to make room.
func (m *Bimap[L, R]) AtRightOrDefault(r R) L {
	s := m.s
	if ref := s.right.Find(r); ref != s.header {
		return s.nodes.Get(ref).left
	}
	var zero L
	if owner := s.left.Find(zero); owner != s.header {
		s.logger.WithFields(logrus.Fields{
			"action":    "at_right_or_default",
			"right":     r,
			"displaced": s.nodes.Get(owner).right,
		}).Debug("default left value taken from another pair")
		s.unlink(owner)
	}
	m.Insert(zero, r)
	return zero
}

// LowerBoundLeft returns an iterator to the first left key not ordered
// before l, or EndLeft.
func (m *Bimap[L, R]) LowerBoundLeft(l L) LeftIterator[L, R] {
	return m.s.leftAt(m.s.left.LowerBound(l))
}

// UpperBoundLeft returns an iterator to the first left key ordered after l,
// or EndLeft.
func (m *Bimap[L, R]) UpperBoundLeft(l L) LeftIterator[L, R] {
	return m.s.leftAt(m.s.left.UpperBound(l))
}

// LowerBoundRight returns an iterator to the first right key not ordered
// before r, or EndRight.
func (m *Bimap[L, R]) LowerBoundRight(r R) RightIterator[L, R] {
	return m.s.rightAt(m.s.right.LowerBound(r))
}

// UpperBoundRight returns an iterator to the first right key ordered after
// r, or EndRight.
func (m *Bimap[L, R]) UpperBoundRight(r R) RightIterator[L, R] {
	return m.s.rightAt(m.s.right.UpperBound(r))
}

// BeginLeft returns an iterator to the smallest left key.
func (m *Bimap[L, R]) BeginLeft() LeftIterator[L, R] {
	return m.s.leftAt(m.s.left.First())
}

// EndLeft returns the past-the-end iterator of the left view.
func (m *Bimap[L, R]) EndLeft() LeftIterator[L, R] {
	return m.s.leftAt(m.s.header)
}

// BeginRight returns an iterator to the smallest right key.
func (m *Bimap[L, R]) BeginRight() RightIterator[L, R] {
	return m.s.rightAt(m.s.right.First())
}

// EndRight returns the past-the-end iterator of the right view.
func (m *Bimap[L, R]) EndRight() RightIterator[L, R] {
	return m.s.rightAt(m.s.header)
}

// AllLeft yields the pairs in left key order. The loop body may insert and
// erase pairs: after each pair the walk resumes at the first left key
// ordered after the one just yielded, so a pair inserted beyond that key is
// visited and an erased pair is not.
func (m *Bimap[L, R]) AllLeft() iter.Seq2[L, R] {
	return func(yield func(L, R) bool) {
		s := m.s
		for ref := s.left.First(); ref != s.header; {
			p := s.nodes.Get(ref)
			l, r := p.left, p.right
			if !yield(l, r) {
				return
			}
			ref = s.left.UpperBound(l)
		}
	}
}

// AllRight yields the pairs in right key order, right key first. It resumes
// after each pair the same way AllLeft does.
func (m *Bimap[L, R]) AllRight() iter.Seq2[R, L] {
	return func(yield func(R, L) bool) {
		s := m.s
		for ref := s.right.First(); ref != s.header; {
			p := s.nodes.Get(ref)
			r, l := p.right, p.left
			if !yield(r, l) {
				return
			}
			ref = s.right.UpperBound(r)
		}
	}
}

// Equal reports whether m and other hold the same pairs. Keys are compared
// with m's orderings: two pairs match when their left keys are equivalent
// and their right keys are equivalent.
func (m *Bimap[L, R]) Equal(other *Bimap[L, R]) bool {
	a, b := m.s, other.s
	if a == b {
		return true
	}
	if a.size != b.size {
		return false
	}
	ra, rb := a.left.First(), b.left.First()
	for ra != a.header {
		pa, pb := a.nodes.Get(ra), b.nodes.Get(rb)
		if !a.left.Equivalent(pa.left, pb.left) || !a.right.Equivalent(pa.right, pb.right) {
			return false
		}
		ra, rb = a.left.Next(ra), b.left.Next(rb)
	}
	return true
}

// Swap exchanges the contents of m and other in constant time. Iterators
// keep pointing at their elements, which now belong to the other Bimap.
func (m *Bimap[L, R]) Swap(other *Bimap[L, R]) {
	m.s, other.s = other.s, m.s
}

// Clone returns a deep copy of m. Every pair keeps its priority, so both
// views of the copy have exactly the shape of m's. The copy's priority
// source continues m's sequence independently when the source can be cloned
// (see treap.CloneSource); a source without a Clone method is shared by m and
// the copy.
func (m *Bimap[L, R]) Clone() *Bimap[L, R] {
	s := m.s
	c := &state[L, R]{
		nodes:  s.nodes.Clone(),
		header: s.header,
		lessL:  s.lessL,
		lessR:  s.lessR,
		size:   s.size,
		source: treap.CloneSource(s.source),
		logger: s.logger,
	}
	c.bindTrees()
	return &Bimap[L, R]{s: c}
}

// Clear removes every pair. Iterators to removed pairs become stale; end
// iterators stay valid.
func (m *Bimap[L, R]) Clear() {
	s := m.s
	var refs []arena.Ref
	_ = s.left.Walk(func(r arena.Ref) error {
		refs = append(refs, r)
		return nil
	})
	for _, r := range refs {
		if err := s.nodes.Free(r); err != nil {
			panic(errors.Wrap(err, "release pair node"))
		}
	}
	s.nodes.Get(s.header).links = [2]treap.Links{treap.Unlinked, treap.Unlinked}
	s.logger.WithField("action", "clear").WithField("count", s.size).Debug("cleared bimap")
	s.size = 0
}

// Verify checks the invariants of both views and the bijection between
// them, returning a description of the first violation found.
func (m *Bimap[L, R]) Verify() error {
	s := m.s
	if err := s.left.Verify(); err != nil {
		return errors.Wrap(err, "left view")
	}
	if err := s.right.Verify(); err != nil {
		return errors.Wrap(err, "right view")
	}
	nl, nr := s.left.Count(), s.right.Count()
	if nl != s.size || nr != s.size {
		return errors.Wrapf(treap.ErrCorrupt, "size %d but left view holds %d and right view %d", s.size, nl, nr)
	}
	if n := s.nodes.Len() - 1; n != s.size {
		return errors.Wrapf(treap.ErrCorrupt, "size %d but %d pair nodes are allocated", s.size, n)
	}
	return s.left.Walk(func(ref arena.Ref) error {
		p := s.nodes.Get(ref)
		if got := s.right.Find(p.right); got != ref {
			return errors.Wrapf(treap.ErrCorrupt, "pair node %d not reachable by its right key", ref)
		}
		return nil
	})
}
