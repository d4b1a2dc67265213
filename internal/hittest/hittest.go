// Package hittest implements spec component H: converting a viewport
// point into a caret Position, honoring the atomic half-split rule.
package hittest

import (
	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/position"
)

// PositionFromPoint implements §4.H. It never returns an invalid
// position; ok is false when the host's caret-from-point service found
// nothing under the point, or when what it found resolves to no
// addressable leaf. h may be nil; when given, an empty
// caret-from-point result is recorded as a Warning diagnostic.
func PositionFromPoint(host domnode.LayoutHost, root domnode.Node, x, y float64, h *diag.Handler) (position.Position, bool) {
	n, offset, ok := host.CaretFromPoint(x, y)
	if !ok || n == nil {
		if h != nil {
			h.Warn(diag.WarnCaretFromPointEmpty, nil, "caret-from-point found nothing at (%.1f, %.1f)", x, y)
		}
		return position.Position{}, false
	}

	if atomic := nearestAtomicAncestor(root, n); atomic != nil {
		return position.Position{Leaf: atomic, Offset: sideOfCenter(host, atomic, x)}, true
	}

	if domnode.IsContainer(n) {
		child := n.ChildAt(clamp(offset, 0, n.ChildCount()-1))
		if child == nil {
			return position.Position{}, false
		}
		leaf := firstAddressableUnder(child)
		if leaf == nil {
			return position.Position{}, false
		}
		if domnode.IsAtomic(leaf) {
			return position.Position{Leaf: leaf, Offset: sideOfCenter(host, leaf, x)}, true
		}
		// Re-query for a precise text offset, the way a second,
		// more specific caret-from-point call would against the
		// resolved leaf.
		n2, off2, ok2 := host.CaretFromPoint(x, y)
		if ok2 && domnode.IsText(n2) && n2.Same(leaf) {
			return position.Position{Leaf: n2, Offset: off2}, true
		}
		return position.Position{Leaf: leaf, Offset: 0}, true
	}

	if domnode.IsText(n) {
		return position.Position{Leaf: n, Offset: offset}, true
	}

	return position.Position{}, false
}

func sideOfCenter(host domnode.LayoutHost, atomic domnode.Node, x float64) int {
	if x < host.BoundingRect(atomic).HCenter() {
		return 0
	}
	return 1
}

func nearestAtomicAncestor(root, n domnode.Node) domnode.Node {
	cur := n
	for cur != nil {
		if domnode.IsAtomic(cur) {
			return cur
		}
		if cur.Same(root) {
			return nil
		}
		cur = cur.Parent()
	}
	return nil
}

func firstAddressableUnder(n domnode.Node) domnode.Node {
	if domnode.IsAddressable(n) {
		return n
	}
	if !domnode.IsContainer(n) {
		return nil
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if leaf := firstAddressableUnder(c); leaf != nil {
			return leaf
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
