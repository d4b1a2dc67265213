// Package position implements the caret position algebra of spec
// component C: the Position value type, validation, normalization across
// inline/atomic boundaries, and document-order comparison.
package position

import (
	"unicode/utf8"

	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/walk"
)

// Position addresses a caret location: a gap at Offset inside Leaf. For a
// text leaf, Offset is a codepoint gap in [0, RuneLen(leaf)]; for an
// atomic leaf, Offset is 0 ("before") or 1 ("after").
type Position struct {
	Leaf   domnode.Node
	Offset int
}

func (p Position) IsZero() bool { return p.Leaf == nil }

// RuneLen returns the codepoint length of a text leaf's content.
func RuneLen(n domnode.Node) int {
	return utf8.RuneCountInString(n.Text())
}

// Valid implements the validation rule of §4.C: a text position with an
// in-range offset, or an atomic position with offset 0 or 1.
func Valid(p Position) bool {
	if p.Leaf == nil {
		return false
	}
	if domnode.IsText(p.Leaf) {
		return p.Offset >= 0 && p.Offset <= RuneLen(p.Leaf)
	}
	if domnode.IsAtomic(p.Leaf) {
		return p.Offset == 0 || p.Offset == 1
	}
	return false
}

// lastDescendant descends via LastChild, stopping at the first atomic or
// text leaf encountered (the walker's stop condition), used to resolve a
// container offset that exceeds its child count.
func lastDescendant(n domnode.Node) domnode.Node {
	cur := n
	for domnode.IsElement(cur) && !domnode.IsAtomic(cur) {
		lc := cur.LastChild()
		if lc == nil {
			break
		}
		cur = lc
	}
	return cur
}

func firstDescendant(n domnode.Node) domnode.Node {
	cur := n
	for domnode.IsElement(cur) && !domnode.IsAtomic(cur) {
		fc := cur.FirstChild()
		if fc == nil {
			break
		}
		cur = fc
	}
	return cur
}

// Normalize implements §4.C's normalization algorithm: any (n, k), with n
// possibly a container and k possibly out of range, is walked down to a
// valid addressable position. It is written as a bounded loop rather than
// recursion (Design Notes: "Normalization by recursion ... implementations
// should use iteration to avoid stack depth issues").
func Normalize(host domnode.LayoutHost, root domnode.Node, p Position, h *diag.Handler) Position {
	for guard := 0; guard < maxNormalizeSteps; guard++ {
		if p.Leaf == nil {
			return p
		}

		if domnode.IsElement(p.Leaf) && !domnode.IsAtomic(p.Leaf) {
			count := p.Leaf.ChildCount()
			if p.Offset < count {
				p = Position{Leaf: firstDescendant(p.Leaf.ChildAt(p.Offset)), Offset: 0}
				continue
			}
			last := lastDescendant(p.Leaf)
			if domnode.IsText(last) {
				p = Position{Leaf: last, Offset: RuneLen(last)}
			} else if domnode.IsAtomic(last) {
				p = Position{Leaf: last, Offset: 1}
			} else {
				// An empty container: nothing addressable inside it.
				// Fall back to the nearest addressable leaf before it.
				if prev := walk.New(root, p.Leaf, walk.Backward).Next(); prev != nil {
					p = endOf(prev)
				} else if next := walk.New(root, p.Leaf, walk.Forward).Next(); next != nil {
					p = startOf(next)
				} else {
					return p
				}
			}
			continue
		}

		if domnode.IsAtomic(p.Leaf) {
			if p.Offset != 0 && p.Offset != 1 {
				if h != nil {
					h.Warn(diag.WarnAtomicOffsetClamped, p.Leaf, "clamped out-of-range atomic offset %d to 1", p.Offset)
				}
				p.Offset = 1
			}
			return p
		}

		// Text leaf.
		length := RuneLen(p.Leaf)
		switch {
		case p.Offset < 0:
			prev := walk.New(root, p.Leaf, walk.Backward).Next()
			if prev == nil {
				p.Offset = 0
				return p
			}
			if domnode.IsAtomic(prev) {
				return Position{Leaf: prev, Offset: 1}
			}
			p = Position{Leaf: prev, Offset: p.Offset + RuneLen(prev)}
			continue
		case p.Offset > length:
			next := walk.New(root, p.Leaf, walk.Forward).Next()
			if next == nil {
				p.Offset = length
				return p
			}
			if domnode.IsAtomic(next) {
				return Position{Leaf: next, Offset: 0}
			}
			p = Position{Leaf: next, Offset: p.Offset - length}
			continue
		default:
			return canonicalizeBoundary(host, root, p, length)
		}
	}
	return p
}

const maxNormalizeSteps = 10000

func startOf(n domnode.Node) Position {
	if domnode.IsAtomic(n) {
		return Position{Leaf: n, Offset: 0}
	}
	return Position{Leaf: n, Offset: 0}
}

func endOf(n domnode.Node) Position {
	if domnode.IsAtomic(n) {
		return Position{Leaf: n, Offset: 1}
	}
	return Position{Leaf: n, Offset: RuneLen(n)}
}

// canonicalizeBoundary implements the boundary-adjacency rules of §4.C.
// p.Offset must already equal length(p.Leaf).
func canonicalizeBoundary(host domnode.LayoutHost, root domnode.Node, p Position, length int) Position {
	if p.Offset != length {
		return p
	}
	next := walk.New(root, p.Leaf, walk.Forward).Next()
	if next == nil {
		return p
	}

	// Rule 1: an inline atomic immediately following is entered at its start.
	if domnode.IsAtomic(next) && domnode.IsInline(host, next) {
		return Position{Leaf: next, Offset: 0}
	}
	if !domnode.IsText(next) {
		return p
	}

	curWrapper := inlineParent(host, p.Leaf)
	nextWrapper := inlineParent(host, next)

	switch {
	case curWrapper != nil && nextWrapper != nil && !curWrapper.Same(nextWrapper):
		// Rule 2: mark-to-mark boundary, stay on the left.
		return p
	case curWrapper == nil && nextWrapper != nil:
		// Rule 3: plain text entering a styled run.
		return Position{Leaf: next, Offset: 0}
	default:
		// Rule 4: plain-to-plain, or block-separated.
		return p
	}
}

// inlineParent returns n's parent when that parent is an inline element
// (an inline-format wrapper such as <b> or <em>), or nil when n sits
// directly inside a block.
func inlineParent(host domnode.LayoutHost, n domnode.Node) domnode.Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	if domnode.IsInline(host, p) {
		return p
	}
	return nil
}
