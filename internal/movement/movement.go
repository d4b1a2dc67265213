// Package movement implements spec component F: the single operation
// nextPosition(root, from, unit, direction) that drives every directional
// command, plus the Goal-X bookkeeping that makes consecutive line moves
// track a consistent horizontal column.
package movement

import (
	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/hittest"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/rectmap"
	"github.com/inkline/editorcore/internal/visualwalk"
	"github.com/inkline/editorcore/internal/walk"
)

type Unit int

const (
	Character Unit = iota
	Line
	LineBoundary
	DocumentBoundary
)

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) toWalk() walk.Direction {
	if d == Forward {
		return walk.Forward
	}
	return walk.Backward
}

// Result is the outcome of one nextPosition call: Ok is false when no
// movement is possible (the caller leaves the selection unchanged), and
// GoalX carries the Goal-X value the caller should persist (only
// meaningful, and only preserved, for Line).
type Result struct {
	Pos   position.Position
	Ok    bool
	GoalX float64
	HasGX bool
}

// NextPosition implements §4.F. goalX/hasGoalX is the selection's current
// Goal-X, lazily set for the Line unit and reset for every other unit. h
// may be nil; when given, every silently-dropped layout rect or clamped
// offset encountered while resolving the move is recorded as a
// diagnostic.
func NextPosition(host domnode.LayoutHost, root domnode.Node, from position.Position, unit Unit, dir Direction, goalX float64, hasGoalX bool, opts rectmap.Options, h *diag.Handler) Result {
	switch unit {
	case Character:
		return character(host, root, from, dir, h)
	case Line:
		return line(host, root, from, dir, goalX, hasGoalX, opts, h)
	case LineBoundary:
		return lineBoundary(host, root, from, dir, opts, h)
	case DocumentBoundary:
		return documentBoundary(root, from, dir)
	default:
		return Result{}
	}
}

func character(host domnode.LayoutHost, root domnode.Node, from position.Position, dir Direction, h *diag.Handler) Result {
	next, ok := characterStep(host, root, from, dir, h)
	if !ok {
		return Result{}
	}
	// BR transparency (§4.F, §8 invariant 5): retry once in the same
	// direction if the move landed on a BR, stepping past the BR to the
	// neighbouring leaf.
	if next.Leaf.TagName() == "BR" {
		next2, ok2 := afterAtomic(host, root, next.Leaf, dir)
		if !ok2 {
			return Result{}
		}
		next = next2
	}
	return Result{Pos: next, Ok: true}
}

func characterStep(host domnode.LayoutHost, root domnode.Node, from position.Position, dir Direction, h *diag.Handler) (position.Position, bool) {
	if domnode.IsAtomic(from.Leaf) {
		if dir == Forward {
			if from.Offset == 0 {
				return position.Position{Leaf: from.Leaf, Offset: 1}, true
			}
			return afterAtomic(host, root, from.Leaf, Forward)
		}
		if from.Offset == 1 {
			return position.Position{Leaf: from.Leaf, Offset: 0}, true
		}
		return afterAtomic(host, root, from.Leaf, Backward)
	}

	// Crossing into a text leaf of another block is a caret step of its
	// own: land on the near edge of that leaf.
	blockOf := func(n domnode.Node) domnode.Node {
		for n = n.Parent(); n != nil && !n.Same(root) && !domnode.IsBlock(host, n); n = n.Parent() {
		}
		return n
	}
	atEdge := dir == Forward && from.Offset == position.RuneLen(from.Leaf) || dir == Backward && from.Offset == 0
	if nb := walk.New(root, from.Leaf, dir.toWalk()).Next(); atEdge && domnode.IsText(nb) && !blockOf(nb).Same(blockOf(from.Leaf)) {
		if dir == Forward {
			return position.Position{Leaf: nb, Offset: 0}, true
		}
		return position.Position{Leaf: nb, Offset: position.RuneLen(nb)}, true
	}

	delta := 1
	if dir == Backward {
		delta = -1
	}
	candidate := position.Position{Leaf: from.Leaf, Offset: from.Offset + delta}
	normalized := position.Normalize(host, root, candidate, h)
	if normalized == from {
		return position.Position{}, false
	}
	return normalized, true
}

// afterAtomic steps past an atomic leaf to the next addressable leaf,
// landing at its start (forward) or end (backward).
func afterAtomic(host domnode.LayoutHost, root domnode.Node, atomic domnode.Node, dir Direction) (position.Position, bool) {
	leaf := walk.New(root, atomic, dir.toWalk()).Next()
	if leaf == nil {
		return position.Position{}, false
	}
	if domnode.IsAtomic(leaf) {
		if dir == Forward {
			return position.Position{Leaf: leaf, Offset: 0}, true
		}
		return position.Position{Leaf: leaf, Offset: 1}, true
	}
	if dir == Forward {
		return position.Position{Leaf: leaf, Offset: 0}, true
	}
	return position.Position{Leaf: leaf, Offset: position.RuneLen(leaf)}, true
}

func line(host domnode.LayoutHost, root domnode.Node, from position.Position, dir Direction, goalX float64, hasGoalX bool, opts rectmap.Options, h *diag.Handler) Result {
	if !hasGoalX {
		rs := rectmap.RectsOf(host, from, opts, h)
		if len(rs) > 0 {
			goalX = rs[0].Left
		}
	}

	stream := visualwalk.New(host, root, from, dir.toWalk(), h)
	var lineRects []visualwalk.Record
	for {
		rec, ok := stream.Next()
		if !ok {
			break
		}
		if rec.LineOffset == 0 {
			continue
		}
		if abs(rec.LineOffset) > 1 {
			break
		}
		lineRects = append(lineRects, rec)
	}
	if len(lineRects) == 0 {
		return Result{}
	}

	best := lineRects[0]
	bestDist := horizontalDistance(best.Rect, goalX)
	for _, r := range lineRects[1:] {
		d := horizontalDistance(r.Rect, goalX)
		if d < bestDist {
			bestDist = d
			best = r
		}
	}

	pos, ok := hittest.PositionFromPoint(host, root, goalX, best.Rect.VCenter(), h)
	if !ok {
		return Result{}
	}
	return Result{Pos: pos, Ok: true, GoalX: goalX, HasGX: true}
}

// horizontalDistance scores a rect the way §4.F specifies: zero (or
// negative) if the rect horizontally contains x, else the distance to
// the rect's center.
func horizontalDistance(r domnode.Rect, x float64) float64 {
	if x >= r.Left && x <= r.Right {
		return -1
	}
	return abs(r.HCenter() - x)
}

func lineBoundary(host domnode.LayoutHost, root domnode.Node, from position.Position, dir Direction, opts rectmap.Options, h *diag.Handler) Result {
	if domnode.IsAtomic(from.Leaf) {
		target := 1
		if dir == Backward {
			target = 0
		}
		if from.Offset != target {
			return Result{Pos: position.Position{Leaf: from.Leaf, Offset: target}, Ok: true}
		}
	}

	stream := visualwalk.New(host, root, from, dir.toWalk(), h)
	var last visualwalk.Record
	found := false
	for {
		rec, ok := stream.Next()
		if !ok {
			break
		}
		if rec.LineOffset != 0 {
			break
		}
		last = rec
		found = true
	}
	if !found {
		return Result{}
	}

	x := last.Rect.Right
	if dir == Backward {
		x = last.Rect.Left
	}
	pos, ok := hittest.PositionFromPoint(host, root, x, last.Rect.VCenter(), h)
	if !ok {
		return Result{}
	}
	if pos.Offset == from.Offset && pos.Leaf.Same(from.Leaf) {
		return Result{}
	}
	return Result{Pos: pos, Ok: true}
}

func documentBoundary(root domnode.Node, from position.Position, dir Direction) Result {
	// Backward lands at the start of the document, forward at its end.
	leaf := walk.FirstLeaf(root, dir.toWalk().Reverse())
	if leaf == nil {
		return Result{}
	}
	var pos position.Position
	if domnode.IsAtomic(leaf) {
		offset := 0
		if dir == Forward {
			offset = 1
		}
		pos = position.Position{Leaf: leaf, Offset: offset}
	} else {
		offset := 0
		if dir == Forward {
			offset = position.RuneLen(leaf)
		}
		pos = position.Position{Leaf: leaf, Offset: offset}
	}
	if pos.Offset == from.Offset && pos.Leaf.Same(from.Leaf) {
		return Result{}
	}
	return Result{Pos: pos, Ok: true}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
