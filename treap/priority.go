package treap

import "math/rand/v2"

// Priority represents the heap priority for a node in the treap.
// Higher priority nodes sit closer to the root.
type Priority uint32

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func() Priority

// Next calls f.
func (f SourceFunc) Next() Priority {
	return f()
}

// RandSource draws uniformly distributed priorities from a PCG generator.
// It is not safe for concurrent use.
type RandSource struct {
	pcg *rand.PCG
	rnd *rand.Rand
}

// NewRandSource returns a source whose sequence is fully determined by seed.
func NewRandSource(seed uint64) *RandSource {
	return newRandSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropySource returns a source seeded from the runtime's entropy, so
// tree shapes differ from run to run.
func NewEntropySource() *RandSource {
	return newRandSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func newRandSource(pcg *rand.PCG) *RandSource {
	return &RandSource{pcg: pcg, rnd: rand.New(pcg)}
}

// Next returns the next priority.
func (s *RandSource) Next() Priority {
	return Priority(s.rnd.Uint32())
}

// Clone returns a source that continues with the same sequence as s from
// its current position, independently of s.
func (s *RandSource) Clone() Source {
	pcg := *s.pcg
	return newRandSource(&pcg)
}

// CloneSource returns an independent copy of src when it supports cloning,
// and src itself otherwise.
func CloneSource(src Source) Source {
	if c, ok := src.(interface{ Clone() Source }); ok {
		return c.Clone()
	}
	return src
}
