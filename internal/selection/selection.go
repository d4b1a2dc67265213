// Package selection implements spec component G: the immutable caret/range
// state (anchor, focus, goalX) and the modify() operation that advances it
// through the movement engine.
package selection

import (
	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/movement"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/rectmap"
)

// Selection is an immutable value: every mutating method returns a new
// Selection rather than modifying the receiver, mirroring how the teacher's
// AST transforms thread state through return values instead of in place.
type Selection struct {
	anchor   position.Position
	focus    position.Position
	goalX    float64
	hasGoalX bool
}

// Collapse creates a caret (zero-length selection) at p.
func Collapse(p position.Position) Selection {
	return Selection{anchor: p, focus: p}
}

// SetBaseAndExtent creates a selection spanning [anchor, focus) in whatever
// order the caller supplies; Direction() reports which way it runs.
func SetBaseAndExtent(anchor, focus position.Position) Selection {
	return Selection{anchor: anchor, focus: focus}
}

func (s Selection) Anchor() position.Position { return s.anchor }
func (s Selection) Focus() position.Position  { return s.focus }
func (s Selection) IsCollapsed() bool         { return s.anchor == s.focus }

// Direction reports the document-order relationship of focus to anchor:
// -1 backward, 0 collapsed, +1 forward.
func (s Selection) Direction(root domnode.Node) int {
	return position.Compare(root, s.focus, s.anchor)
}

// Bounds returns the (start, end) pair in document order regardless of
// which end is the anchor and which is the focus.
func (s Selection) Bounds(root domnode.Node) (position.Position, position.Position) {
	if position.Compare(root, s.anchor, s.focus) <= 0 {
		return s.anchor, s.focus
	}
	return s.focus, s.anchor
}

// Contains reports whether p falls within [start, end) of the selection,
// per §4.G; a collapsed selection contains nothing.
func (s Selection) Contains(root domnode.Node, p position.Position) bool {
	if s.IsCollapsed() {
		return false
	}
	start, end := s.Bounds(root)
	return position.Compare(root, start, p) <= 0 && position.Compare(root, p, end) < 0
}

// Extend moves the focus to p, keeping the anchor fixed.
func (s Selection) Extend(p position.Position) Selection {
	return Selection{anchor: s.anchor, focus: p}
}

// CollapseToStart collapses to the earlier of anchor/focus in document order.
func (s Selection) CollapseToStart(root domnode.Node) Selection {
	start, _ := s.Bounds(root)
	return Collapse(start)
}

// CollapseToEnd collapses to the later of anchor/focus in document order.
func (s Selection) CollapseToEnd(root domnode.Node) Selection {
	_, end := s.Bounds(root)
	return Collapse(end)
}

// ModifyType selects whether Modify moves the caret or extends the range,
// matching the host Selection API's move/extend distinction (§6.1).
type ModifyType int

const (
	Move ModifyType = iota
	Extend
)

// Modify implements §4.G's modify(type, direction, unit): it calls the
// movement engine from the selection's focus and, depending on typ, either
// collapses to the result or extends the range to it. Goal-X survives
// across consecutive Line moves and is reset by every other unit.
func (s Selection) Modify(host domnode.LayoutHost, root domnode.Node, typ ModifyType, dir movement.Direction, unit movement.Unit, opts rectmap.Options, h *diag.Handler) Selection {
	res := movement.NextPosition(host, root, s.focus, unit, dir, s.goalX, s.hasGoalX, opts, h)
	if !res.Ok {
		return s
	}

	next := s
	next.hasGoalX = res.HasGX
	next.goalX = res.GoalX

	switch typ {
	case Move:
		next.anchor = res.Pos
		next.focus = res.Pos
	case Extend:
		next.focus = res.Pos
	}
	return next
}
