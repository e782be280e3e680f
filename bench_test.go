package bimap

import (
	"testing"

	"github.com/cbehopkins/bimap/internal/testutil"
)

const benchSize = 1 << 14

func benchKeys() []int {
	keys := make([]int, benchSize)
	for i := range keys {
		keys[i] = (i * 7919) % benchSize
	}
	return keys
}

func BenchmarkInsert(b *testing.B) {
	keys := benchKeys()
	b.ReportAllocs()
	for b.Loop() {
		m := NewOrdered[int, int](WithSeed(1), WithCapacity(benchSize))
		for _, k := range keys {
			m.Insert(k, -k)
		}
	}
}

func BenchmarkModelInsert(b *testing.B) {
	keys := benchKeys()
	b.ReportAllocs()
	for b.Loop() {
		m := testutil.NewModel(intLess, intLess)
		for _, k := range keys {
			m.Insert(k, -k)
		}
	}
}

func BenchmarkFindBothSides(b *testing.B) {
	keys := benchKeys()
	m := NewOrdered[int, int](WithSeed(1))
	for _, k := range keys {
		m.Insert(k, -k)
	}
	i := 0
	for b.Loop() {
		k := keys[i%benchSize]
		if m.FindLeft(k).IsEnd() || m.FindRight(-k).IsEnd() {
			b.Fatalf("key %d missing", k)
		}
		i++
	}
}

func BenchmarkEraseInsert(b *testing.B) {
	keys := benchKeys()
	m := NewOrdered[int, int](WithSeed(1))
	for _, k := range keys {
		m.Insert(k, -k)
	}
	i := 0
	for b.Loop() {
		k := keys[i%benchSize]
		m.EraseLeftKey(k)
		m.Insert(k, -k)
		i++
	}
}
