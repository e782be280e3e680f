package script

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kballard/go-shellquote"

	"github.com/cbehopkins/bimap"
)

type strMap = bimap.Bimap[string, string]

type command struct {
	arity int
	run   func(m *strMap, args []string) string
}

var commands = map[string]command{
	"insert": {2, func(m *strMap, a []string) string {
		if m.Insert(a[0], a[1]).IsEnd() {
			return "conflict"
		}
		return "ok"
	}},
	"erase-left": {1, func(m *strMap, a []string) string {
		return erased(m.EraseLeftKey(a[0]))
	}},
	"erase-right": {1, func(m *strMap, a []string) string {
		return erased(m.EraseRightKey(a[0]))
	}},
	"erase-left-range": {2, func(m *strMap, a []string) string {
		n := m.Len()
		if _, err := m.EraseLeftRange(m.LowerBoundLeft(a[0]), m.LowerBoundLeft(a[1])); err != nil {
			return failure(err)
		}
		return fmt.Sprintf("erased %d", n-m.Len())
	}},
	"erase-right-range": {2, func(m *strMap, a []string) string {
		n := m.Len()
		if _, err := m.EraseRightRange(m.LowerBoundRight(a[0]), m.LowerBoundRight(a[1])); err != nil {
			return failure(err)
		}
		return fmt.Sprintf("erased %d", n-m.Len())
	}},
	"find-left": {1, func(m *strMap, a []string) string {
		it := m.FindLeft(a[0])
		if it.IsEnd() {
			return "absent"
		}
		return shellquote.Join(it.Key(), it.Value())
	}},
	"find-right": {1, func(m *strMap, a []string) string {
		it := m.FindRight(a[0])
		if it.IsEnd() {
			return "absent"
		}
		return shellquote.Join(it.Value(), it.Key())
	}},
	"at-left": {1, func(m *strMap, a []string) string {
		r, err := m.AtLeft(a[0])
		if err != nil {
			return failure(err)
		}
		return shellquote.Join(r)
	}},
	"at-right": {1, func(m *strMap, a []string) string {
		l, err := m.AtRight(a[0])
		if err != nil {
			return failure(err)
		}
		return shellquote.Join(l)
	}},
	"at-left-or-default": {1, func(m *strMap, a []string) string {
		return shellquote.Join(m.AtLeftOrDefault(a[0]))
	}},
	"at-right-or-default": {1, func(m *strMap, a []string) string {
		return shellquote.Join(m.AtRightOrDefault(a[0]))
	}},
	"lower-left": {1, func(m *strMap, a []string) string {
		return leftPos(m.LowerBoundLeft(a[0]))
	}},
	"upper-left": {1, func(m *strMap, a []string) string {
		return leftPos(m.UpperBoundLeft(a[0]))
	}},
	"lower-right": {1, func(m *strMap, a []string) string {
		return leftPos(m.LowerBoundRight(a[0]).Flip())
	}},
	"upper-right": {1, func(m *strMap, a []string) string {
		return leftPos(m.UpperBoundRight(a[0]).Flip())
	}},
	"size": {0, func(m *strMap, _ []string) string {
		return strconv.Itoa(m.Len())
	}},
	"dump-left": {0, func(m *strMap, _ []string) string {
		return dump([]string{"Left", "Right"}, func(add func(a, b string)) {
			for l, r := range m.AllLeft() {
				add(l, r)
			}
		})
	}},
	"dump-right": {0, func(m *strMap, _ []string) string {
		return dump([]string{"Right", "Left"}, func(add func(a, b string)) {
			for r, l := range m.AllRight() {
				add(r, l)
			}
		})
	}},
	"check": {0, func(m *strMap, _ []string) string {
		if err := m.Verify(); err != nil {
			return failure(err)
		}
		return "ok"
	}},
	"clear": {0, func(m *strMap, _ []string) string {
		m.Clear()
		return "ok"
	}},
}

func erased(ok bool) string {
	if ok {
		return "erased"
	}
	return "absent"
}

func failure(err error) string {
	return "error: " + err.Error()
}

// leftPos prints the pair at it as quoted "left right", or end.
func leftPos(it bimap.LeftIterator[string, string]) string {
	if it.IsEnd() {
		return "end"
	}
	return shellquote.Join(it.Key(), it.Value())
}

func dump(header []string, rows func(add func(a, b string))) string {
	var buf bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.AppendHeader(table.Row{header[0], header[1]})
	n := 0
	rows(func(a, b string) {
		t.AppendRow(table.Row{a, b})
		n++
	})
	t.AppendFooter(table.Row{"Pairs", n})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return buf.String()
}
