package testutil

import (
	"fmt"
	"math/rand/v2"
)

// OpKind names a mutating or querying bimap operation.
type OpKind int

const (
	OpInsert OpKind = iota
	OpEraseLeft
	OpEraseRight
	OpFindLeft
	OpFindRight
	OpLowerBoundLeft
	OpLowerBoundRight
	opKinds
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpEraseLeft:
		return "erase-left"
	case OpEraseRight:
		return "erase-right"
	case OpFindLeft:
		return "find-left"
	case OpFindRight:
		return "find-right"
	case OpLowerBoundLeft:
		return "lower-left"
	case OpLowerBoundRight:
		return "lower-right"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one step of a randomized workload over int keys.
type Op struct {
	Kind  OpKind
	Left  int
	Right int
}

func (o Op) String() string {
	return fmt.Sprintf("%v(%d, %d)", o.Kind, o.Left, o.Right)
}

// RandomOps returns n operations with keys drawn from [0, keySpace). Inserts
// make up roughly half of the workload so that the container both grows and
// shrinks. The same seed always yields the same workload.
func RandomOps(seed uint64, n, keySpace int) []Op {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	ops := make([]Op, n)
	for i := range ops {
		kind := OpInsert
		if rng.IntN(2) == 1 {
			kind = OpKind(1 + rng.IntN(int(opKinds)-1))
		}
		ops[i] = Op{
			Kind:  kind,
			Left:  rng.IntN(keySpace),
			Right: rng.IntN(keySpace),
		}
	}
	return ops
}
