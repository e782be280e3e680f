package script

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{
		"":        Lexical,
		"lexical": Lexical,
		"NUMERIC": Numeric,
		"fold":    Fold,
	} {
		got, err := ParseOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrder("random")
	assert.True(t, errors.Is(err, ErrUnknownOrder))
}

func TestOrderLess(t *testing.T) {
	keys := func(o Order, in ...string) []string {
		out := append([]string(nil), in...)
		sort.SliceStable(out, func(i, j int) bool { return o.Less()(out[i], out[j]) })
		return out
	}
	assert.Equal(t, []string{"10", "9", "B", "a"}, keys(Lexical, "9", "10", "a", "B"))
	assert.Equal(t, []string{"-1.5", "9", "10", "a", "b"}, keys(Numeric, "b", "10", "a", "9", "-1.5"))
	assert.Equal(t, []string{"a", "B", "c"}, keys(Fold, "c", "B", "a"))

	assert.False(t, Numeric.Less()("1", "1.0"), "equal numbers are equivalent")
	assert.False(t, Numeric.Less()("1.0", "1"))
	assert.False(t, Fold.Less()("ABC", "abc"))
}

func TestNumericOrderTreatsNaNAsText(t *testing.T) {
	less := Numeric.Less()
	assert.True(t, less("1", "NaN"))
	assert.False(t, less("NaN", "1"))
	assert.True(t, less("NaN", "nan"), "NaN spellings order lexically")

	lines, err := runScript(t, Config{LeftOrder: Numeric}, "insert NaN x\ninsert 1 a\ninsert 2 b\nsize\nlower-left 1.5\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "ok", "ok", "3", "2 b"}, lines)
}
