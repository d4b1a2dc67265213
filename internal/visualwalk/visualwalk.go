// Package visualwalk implements spec component E, the rect walker: a
// single-use stream of (leaf, rect, lineOffset, atLineStart) records
// built by stitching the logical tree walker (internal/walk) to
// per-leaf layout rectangles and grouping them into visual lines by
// vertical overlap.
//
// It is written as a pull iterator rather than a materialized slice
// (Design Notes: "expose these as small internal generators/iterators; do
// not materialize full lists except where the algorithm explicitly needs
// it"); Movement's line unit is the one caller that does collect a full
// line's worth of records.
package visualwalk

import (
	"math"

	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/walk"
)

// OverlapThreshold is the vertical-overlap ratio below which a rect is
// considered to belong to a new visual line. The source varied between
// 0.4 and 0.5 at different call sites; Design Notes picks 0.5 and holds
// to it everywhere.
const OverlapThreshold = 0.5

// Record is one emitted rect, tagged with which leaf it came from and
// its position relative to the starting visual line.
type Record struct {
	Leaf        domnode.Node
	Rect        domnode.Rect
	LineOffset  int
	AtLineStart bool
}

type pending struct {
	leaf domnode.Node
	rect domnode.Rect
}

// Stream is the single-use iterator itself.
type Stream struct {
	host domnode.LayoutHost
	root domnode.Node
	dir  walk.Direction
	w    *walk.Walker
	diag *diag.Handler

	started bool
	from    position.Position

	queue []pending

	anchor    *domnode.Rect
	lineOff   int
	haveFirst bool
}

// New starts a rect walk from a position, in the given direction. The
// starting leaf contributes exactly two sub-ranges per §4.E step 2: a
// zero-width cursor rect anchoring the starting line, then the partial
// tail (forward) or head (backward) of the leaf. h may be nil; when
// given, every zero-height rect dropped from the stream is recorded as a
// Warning diagnostic.
func New(host domnode.LayoutHost, root domnode.Node, from position.Position, dir walk.Direction, h *diag.Handler) *Stream {
	return &Stream{
		host: host,
		root: root,
		dir:  dir,
		w:    walk.New(root, from.Leaf, dir),
		from: from,
		diag: h,
	}
}

// Next returns the next record in the stream, or ok == false once the
// walker is exhausted. Zero-height rects are dropped silently, never
// emitted, per §4.E's closing rule.
func (s *Stream) Next() (Record, bool) {
	for {
		for len(s.queue) == 0 {
			if !s.fill() {
				return Record{}, false
			}
		}
		p := s.queue[0]
		s.queue = s.queue[1:]
		if p.rect.Empty() {
			if s.diag != nil {
				s.diag.Warn(diag.WarnZeroHeightRect, p.leaf, "dropped zero-height rect from layout")
			}
			continue
		}
		rec, skip := s.evaluate(p)
		if skip {
			continue
		}
		return rec, true
	}
}

func (s *Stream) fill() bool {
	if !s.started {
		s.started = true
		zero := caretRect(s.host, s.from)
		tail := partialRects(s.host, s.from, s.dir)
		s.queue = append(s.queue, pending{leaf: s.from.Leaf, rect: zero})
		for _, r := range tail {
			s.queue = append(s.queue, pending{leaf: s.from.Leaf, rect: r})
		}
		return true
	}
	leaf := s.w.Next()
	if leaf == nil {
		return false
	}
	rects := fullRects(s.host, leaf)
	if s.dir == walk.Backward {
		reverseRects(rects)
	}
	for _, r := range rects {
		s.queue = append(s.queue, pending{leaf: leaf, rect: r})
	}
	return true
}

// evaluate implements §4.E step 4: compare against lineAnchorRect,
// filtering same-line regressions before counting a new line.
func (s *Stream) evaluate(p pending) (Record, bool) {
	if s.anchor == nil {
		s.anchor = &p.rect
		return Record{Leaf: p.leaf, Rect: p.rect, LineOffset: 0, AtLineStart: true}, false
	}

	ratio := verticalOverlapRatio(*s.anchor, p.rect)
	if ratio < OverlapThreshold {
		if isRegression(s.dir, *s.anchor, p.rect) {
			return Record{}, true
		}
		s.anchor = &p.rect
		if s.dir == walk.Forward {
			s.lineOff++
		} else {
			s.lineOff--
		}
		return Record{Leaf: p.leaf, Rect: p.rect, LineOffset: s.lineOff, AtLineStart: true}, false
	}
	return Record{Leaf: p.leaf, Rect: p.rect, LineOffset: s.lineOff, AtLineStart: false}, false
}

func isRegression(dir walk.Direction, anchor, rect domnode.Rect) bool {
	if dir == walk.Forward {
		return rect.Bottom <= anchor.Bottom
	}
	return rect.Top >= anchor.Top
}

func verticalOverlapRatio(a, b domnode.Rect) float64 {
	top := math.Max(a.Top, b.Top)
	bottom := math.Min(a.Bottom, b.Bottom)
	overlap := math.Max(0, bottom-top)
	minH := math.Min(a.Height(), b.Height())
	if minH <= 0 {
		return 0
	}
	return overlap / minH
}

func caretRect(host domnode.LayoutHost, p position.Position) domnode.Rect {
	if domnode.IsText(p.Leaf) {
		return first(host.TextRects(p.Leaf, p.Offset, p.Offset))
	}
	b := host.BoundingRect(p.Leaf)
	x := b.Left
	if p.Offset == 1 {
		x = b.Right
	}
	return domnode.Rect{Top: b.Top, Bottom: b.Bottom, Left: x, Right: x}
}

func partialRects(host domnode.LayoutHost, p position.Position, dir walk.Direction) []domnode.Rect {
	if domnode.IsAtomic(p.Leaf) {
		return []domnode.Rect{host.BoundingRect(p.Leaf)}
	}
	length := position.RuneLen(p.Leaf)
	if dir == walk.Forward {
		return host.TextRects(p.Leaf, p.Offset, length)
	}
	return host.TextRects(p.Leaf, 0, p.Offset)
}

func fullRects(host domnode.LayoutHost, leaf domnode.Node) []domnode.Rect {
	if domnode.IsAtomic(leaf) {
		return []domnode.Rect{host.BoundingRect(leaf)}
	}
	return host.TextRects(leaf, 0, position.RuneLen(leaf))
}

func first(rs []domnode.Rect) domnode.Rect {
	if len(rs) == 0 {
		return domnode.Rect{}
	}
	return rs[0]
}

func reverseRects(rs []domnode.Rect) {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
}
