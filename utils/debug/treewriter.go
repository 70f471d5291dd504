// Package debug produces human readable dumps of style trees for logs and
// debug reports.
package debug

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"themec/tree"
)

type TreeWriter struct {
	w *strings.Builder
	// Sorted orders map keys naturally instead of document order, which
	// makes dumps of different runs easy to diff.
	Sorted bool
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Value writes v under label, one line per leaf.
func (tw *TreeWriter) Value(depth int, label string, v tree.Value) {
	switch v.Kind() {
	case tree.KindMap:
		tw.Line(depth, "%s: {%d}", label, v.Len())
		m := v.Map()
		keys := m.Keys()
		if tw.Sorted {
			slices.SortFunc(keys, func(a, b string) int {
				switch {
				case a == b:
					return 0
				case natural.Less(a, b):
					return -1
				}
				return 1
			})
		}
		for _, k := range keys {
			child, _ := m.Get(k)
			tw.Value(depth+1, k, child)
		}
	case tree.KindList:
		tw.Line(depth, "%s: [%d]", label, v.Len())
		for i, item := range v.Items() {
			tw.Value(depth+1, "["+strconv.Itoa(i)+"]", item)
		}
	case tree.KindString:
		tw.TextBlock(depth, label, mustStr(v))
	case tree.KindRef:
		p, _ := v.RefPath()
		tw.Line(depth, "%s: -> %s", label, p)
	case tree.KindBool:
		b, _ := v.Bool()
		tw.Line(depth, "%s: %t", label, b)
	case tree.KindNumber:
		s, _ := v.Scalar()
		tw.Line(depth, "%s: %s", label, s)
	default:
		tw.Line(depth, "%s: null", label)
	}
}

// Dump returns textual representation of the whole tree.
func Dump(v tree.Value, sorted bool) string {
	tw := NewTreeWriter()
	tw.Sorted = sorted
	tw.Value(0, "root", v)
	return tw.String()
}

func mustStr(v tree.Value) string {
	s, _ := v.Str()
	return s
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
