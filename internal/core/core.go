// Package core is the top-level facade described in spec §6: attach/detach,
// selection operations, and position/rect queries, wiring together every
// other internal package the way the teacher's transform.Transform wires
// together scoping, preprocessing, and the AST walk behind one entry point.
package core

import (
	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/hittest"
	"github.com/inkline/editorcore/internal/movement"
	"github.com/inkline/editorcore/internal/normalizeddoc"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/rangemat"
	"github.com/inkline/editorcore/internal/rectmap"
	"github.com/inkline/editorcore/internal/selection"
	"github.com/inkline/editorcore/internal/walk"
)

// Handle is the opaque handle §6.1 returns from Attach. It owns the
// selection state exclusively, per the concurrency model in §5; the editor
// root DOM is only read after attach, never mutated by the core again.
type Handle struct {
	root  domnode.Node
	host  domnode.LayoutHost
	sel   selection.Selection
	diag  *diag.Handler
	rectO rectmap.Options
}

// SelectionSnapshot is the value type returned by GetSelection (§6.2).
type SelectionSnapshot struct {
	Anchor      position.Position
	Focus       position.Position
	IsCollapsed bool
	Direction   int
}

// Attach implements §6.1: normalize the document once, seed an empty
// (collapsed, at-document-start) selection, and return a handle.
func Attach(host domnode.LayoutHost, root domnode.Node) *Handle {
	h := &Handle{root: root, host: host, diag: diag.NewHandler(), rectO: rectmap.DefaultOptions()}
	normalizeddoc.Normalize(host, root, h.diag)

	if leaf := walk.FirstLeaf(root, walk.Forward); leaf != nil {
		h.sel = selection.Collapse(position.Position{Leaf: leaf, Offset: 0})
	}
	return h
}

// Detach implements §6.1: drop references. No DOM changes beyond what
// Attach already made.
func (h *Handle) Detach() {
	h.root = nil
	h.host = nil
	h.diag = nil
}

// Diagnostics exposes the handler accumulated since Attach, for hosts that
// want to surface warnings/errors in their own UI or logs.
func (h *Handle) Diagnostics() *diag.Handler { return h.diag }

func (h *Handle) GetSelection() SelectionSnapshot {
	return SelectionSnapshot{
		Anchor:      h.sel.Anchor(),
		Focus:       h.sel.Focus(),
		IsCollapsed: h.sel.IsCollapsed(),
		Direction:   h.sel.Direction(h.root),
	}
}

// SetSelection implements §6.2: inputs are normalized; a nil focus
// collapses the selection to anchor.
func (h *Handle) SetSelection(anchor position.Position, focus *position.Position) {
	a := position.Normalize(h.host, h.root, anchor, h.diag)
	if focus == nil {
		h.sel = selection.Collapse(a)
		return
	}
	f := position.Normalize(h.host, h.root, *focus, h.diag)
	h.sel = selection.SetBaseAndExtent(a, f)
}

func (h *Handle) Collapse(p position.Position) {
	h.sel = selection.Collapse(position.Normalize(h.host, h.root, p, h.diag))
}

func (h *Handle) CollapseToStart() { h.sel = h.sel.CollapseToStart(h.root) }
func (h *Handle) CollapseToEnd()   { h.sel = h.sel.CollapseToEnd(h.root) }

func (h *Handle) Extend(p position.Position) {
	h.sel = h.sel.Extend(position.Normalize(h.host, h.root, p, h.diag))
}

// Modify implements §6.2's modify: move or extend the selection by one
// movement unit in one direction.
func (h *Handle) Modify(typ selection.ModifyType, dir movement.Direction, unit movement.Unit) {
	h.sel = h.sel.Modify(h.host, h.root, typ, dir, unit, h.rectO, h.diag)
}

func (h *Handle) Contains(p position.Position) bool {
	return h.sel.Contains(h.root, p)
}

// GetText implements §6.2: materialize via (J).
func (h *Handle) GetText() string {
	if h.sel.IsCollapsed() {
		return ""
	}
	start, end := h.sel.Bounds(h.root)
	return rangemat.GetText(h.root, start, end)
}

// Range returns the materialized platform Range for the current selection
// (§4.J), for renderers that need a concrete endpoint pair.
func (h *Handle) Range() rangemat.Range {
	return rangemat.Materialize(h.root, h.sel.Anchor(), h.sel.Focus())
}

// PositionFromPoint implements §6.3.
func (h *Handle) PositionFromPoint(x, y float64) (position.Position, bool) {
	return hittest.PositionFromPoint(h.host, h.root, x, y, h.diag)
}

// RectsForPosition implements §6.3.
func (h *Handle) RectsForPosition(p position.Position) []domnode.Rect {
	return rectmap.RectsOf(h.host, p, h.rectO, h.diag)
}

// RectsForSelection implements §6.3: one rect per visual line fragment, in
// document order, across the current selection's span.
func (h *Handle) RectsForSelection() []domnode.Rect {
	if h.sel.IsCollapsed() {
		return nil
	}
	start, end := h.sel.Bounds(h.root)
	return rectsForRange(h.root, h.host, start, end)
}

func rectsForRange(root domnode.Node, host domnode.LayoutHost, start, end position.Position) []domnode.Rect {
	var out []domnode.Rect
	leaf := start.Leaf
	for leaf != nil {
		if domnode.IsAtomic(leaf) {
			out = append(out, host.BoundingRect(leaf))
		} else {
			from, to := 0, position.RuneLen(leaf)
			if leaf.Same(start.Leaf) {
				from = start.Offset
			}
			if leaf.Same(end.Leaf) {
				to = end.Offset
			}
			out = append(out, host.TextRects(leaf, from, to)...)
		}
		if leaf.Same(end.Leaf) {
			break
		}
		leaf = walk.New(root, leaf, walk.Forward).Next()
	}
	return out
}
