// Package arena provides a slab of fixed-type slots addressed by stable
// integer references.
//
// Slots live in blocks that are never reallocated: the first block holds
// firstBlockCount slots and every following block doubles the previous one,
// so a pointer returned by Get stays valid for as long as its slot is
// allocated, regardless of how many allocations follow. Released slots are
// reused last-in first-out. Every release bumps the slot's generation so a
// holder of an old (Ref, generation) pair can tell that its slot was reused.
package arena

import (
	"math/bits"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSlot  = errors.New("invalid slot index")
	ErrSlotNotFound = errors.New("slot not allocated")
)

// Ref identifies a slot of an Arena.
type Ref int32

// Nil refers to no slot.
const Nil Ref = -1

const (
	firstBlockShift = 4
	firstBlockCount = 1 << firstBlockShift
	maxBlocks       = 31 - firstBlockShift
)

type slot[T any] struct {
	val  T
	gen  uint32
	live bool
}

// Arena manages slots of type T.
type Arena[T any] struct {
	blocks [][]slot[T]
	next   Ref   // first slot never handed out
	free   []Ref // released slots, most recent last
	live   int
}

// New creates an arena with room for at least capacity slots before it
// needs to add a block.
func New[T any](capacity int) *Arena[T] {
	a := &Arena[T]{}
	for a.cap() < capacity && len(a.blocks) < maxBlocks {
		a.grow()
	}
	return a
}

// locate maps a Ref onto its block and the offset within that block.
func locate(r Ref) (int, int) {
	q := uint32(r)>>firstBlockShift + 1
	blk := bits.Len32(q) - 1
	start := firstBlockCount * ((1 << blk) - 1)
	return blk, int(r) - start
}

func (a *Arena[T]) cap() int {
	return firstBlockCount * ((1 << len(a.blocks)) - 1)
}

func (a *Arena[T]) grow() {
	size := firstBlockCount << len(a.blocks)
	a.blocks = append(a.blocks, make([]slot[T], size))
}

func (a *Arena[T]) slot(r Ref) *slot[T] {
	blk, off := locate(r)
	return &a.blocks[blk][off]
}

// Alloc stores v in a free slot and returns its Ref.
func (a *Arena[T]) Alloc(v T) Ref {
	var r Ref
	if n := len(a.free); n > 0 {
		r = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if int(a.next) == a.cap() {
			if len(a.blocks) == maxBlocks {
				panic("arena: out of slots")
			}
			a.grow()
		}
		r = a.next
		a.next++
	}
	s := a.slot(r)
	s.val = v
	s.live = true
	a.live++
	return r
}

// Free releases the slot so it can be handed out again.
func (a *Arena[T]) Free(r Ref) error {
	if r < 0 || r >= a.next {
		return errors.Wrapf(ErrInvalidSlot, "free %d", r)
	}
	s := a.slot(r)
	if !s.live {
		return errors.Wrapf(ErrSlotNotFound, "free %d", r)
	}
	var zero T
	s.val = zero
	s.live = false
	s.gen++
	a.free = append(a.free, r)
	a.live--
	return nil
}

// Get returns a pointer to the value held in slot r. The slot must be
// allocated; the pointer stays valid until the slot is freed.
func (a *Arena[T]) Get(r Ref) *T {
	return &a.slot(r).val
}

// Live reports whether r refers to an allocated slot.
func (a *Arena[T]) Live(r Ref) bool {
	if r < 0 || r >= a.next {
		return false
	}
	return a.slot(r).live
}

// Gen returns the generation of slot r, which changes every time the slot
// is freed.
func (a *Arena[T]) Gen(r Ref) uint32 {
	if r < 0 || r >= a.next {
		return 0
	}
	return a.slot(r).gen
}

// Len returns the number of allocated slots.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every allocated slot in Ref order until fn returns false.
func (a *Arena[T]) Each(fn func(Ref, *T) bool) {
	for r := Ref(0); r < a.next; r++ {
		s := a.slot(r)
		if s.live && !fn(r, &s.val) {
			return
		}
	}
}

// Clone returns an independent arena holding a copy of every slot. Refs and
// generations are preserved; values are copied by assignment.
func (a *Arena[T]) Clone() *Arena[T] {
	c := &Arena[T]{
		blocks: make([][]slot[T], len(a.blocks)),
		next:   a.next,
		free:   append([]Ref(nil), a.free...),
		live:   a.live,
	}
	for i, blk := range a.blocks {
		c.blocks[i] = append([]slot[T](nil), blk...)
	}
	return c
}
