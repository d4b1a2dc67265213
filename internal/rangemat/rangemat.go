// Package rangemat implements spec component J: materializing the
// platform Range object the renderer needs from a pair of caret
// positions, and extracting the plain text a selection spans.
package rangemat

import (
	"strings"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/walk"
)

// Endpoint is one side of a materialized range: a container node plus a
// child-indexed offset into it, the shape every host Range API expects.
// Text endpoints carry the text leaf itself with a codepoint offset;
// atomic endpoints are translated to (atomic.Parent(), indexOf(atomic)[+1]).
type Endpoint struct {
	Node   domnode.Node
	Offset int
}

// Range is the materialized pair, always [Start, End] in document order.
type Range struct {
	Start Endpoint
	End   Endpoint
}

// Materialize implements §4.J: orders anchor/focus by compare(), then
// translates any atomic endpoint to a parent-indexed offset.
func Materialize(root domnode.Node, anchor, focus position.Position) Range {
	a, b := anchor, focus
	if position.Compare(root, a, b) > 0 {
		a, b = b, a
	}
	return Range{Start: translate(a), End: translate(b)}
}

func translate(p position.Position) Endpoint {
	if domnode.IsAtomic(p.Leaf) {
		parent := p.Leaf.Parent()
		idx := parent.ChildIndex(p.Leaf)
		if p.Offset == 1 {
			idx++
		}
		return Endpoint{Node: parent, Offset: idx}
	}
	return Endpoint{Node: p.Leaf, Offset: p.Offset}
}

// GetText implements §6.2's getText: the plain text spanned by [start,
// end], walking the logical leaf sequence the way the teacher's
// print-to-source walker accumulates a text buffer while visiting nodes.
func GetText(root domnode.Node, start, end position.Position) string {
	if position.Compare(root, start, end) > 0 {
		start, end = end, start
	}
	if start.Leaf.Same(end.Leaf) {
		if domnode.IsText(start.Leaf) {
			return sliceRunes(start.Leaf.Text(), start.Offset, end.Offset)
		}
		return ""
	}

	var b strings.Builder
	leaf := start.Leaf
	first := true
	for leaf != nil {
		if domnode.IsText(leaf) {
			text := leaf.Text()
			switch {
			case first:
				b.WriteString(sliceRunes(text, start.Offset, runeLen(text)))
			case leaf.Same(end.Leaf):
				b.WriteString(sliceRunes(text, 0, end.Offset))
			default:
				b.WriteString(text)
			}
		} else if domnode.IsAtomic(leaf) {
			if leaf.TagName() == "BR" {
				b.WriteByte('\n')
			}
		}
		if leaf.Same(end.Leaf) {
			break
		}
		leaf = walk.New(root, leaf, walk.Forward).Next()
		first = false
	}
	return b.String()
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func sliceRunes(s string, start, end int) string {
	if start >= end {
		return ""
	}
	rs := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	return string(rs[start:end])
}
