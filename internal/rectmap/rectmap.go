// Package rectmap implements spec component D: converting a caret
// Position into the one or more viewport rectangles the renderer draws a
// caret or highlight at.
package rectmap

import (
	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/position"
)

// DefaultMinCursorHeight is the lower bound applied to zero- or
// small-height atomic rectangles (spec Design Notes: "kept explicit
// (≈16–20 px) ... surface as a configuration knob rather than bake it in").
const DefaultMinCursorHeight = 18.0

type Options struct {
	MinCursorHeight float64
}

func DefaultOptions() Options {
	return Options{MinCursorHeight: DefaultMinCursorHeight}
}

// RectsOf is the pure function rectsOf(P) of §4.D. h may be nil; when
// given, every zero-height rect dropped from the host's layout is
// recorded as a Warning diagnostic.
func RectsOf(host domnode.LayoutHost, p position.Position, opts Options, h *diag.Handler) []domnode.Rect {
	if domnode.IsText(p.Leaf) {
		return dropZeroHeight(host.TextRects(p.Leaf, p.Offset, p.Offset), p.Leaf, h)
	}
	return []domnode.Rect{atomicCaretRect(host, p, opts)}
}

// atomicCaretRect implements the atomic half of §4.D: the element's
// bounding rect, symmetrically expanded to the minimum cursor height if
// necessary, collapsed to a zero-width rect at its left or right edge.
func atomicCaretRect(host domnode.LayoutHost, p position.Position, opts Options) domnode.Rect {
	b := host.BoundingRect(p.Leaf)
	minH := opts.MinCursorHeight
	if minH <= 0 {
		minH = DefaultMinCursorHeight
	}
	if b.Height() < minH {
		pad := (minH - b.Height()) / 2
		b.Top -= pad
		b.Bottom += pad
	}
	x := b.Left
	if p.Offset == 1 {
		x = b.Right
	}
	return domnode.Rect{Top: b.Top, Bottom: b.Bottom, Left: x, Right: x}
}

func dropZeroHeight(rs []domnode.Rect, leaf domnode.Node, h *diag.Handler) []domnode.Rect {
	out := rs[:0:0]
	for _, r := range rs {
		if r.Empty() {
			if h != nil {
				h.Warn(diag.WarnZeroHeightRect, leaf, "dropped zero-height rect from layout")
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
