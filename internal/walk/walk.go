// Package walk implements the logical tree walker of spec component B: a
// single-use iterator that yields addressable leaves in document order
// (or its reverse), descending into containers but never into atomic
// leaves, and never yielding the root itself.
//
// The shape follows the teacher's own recursive doc walker (see
// transform.walk in the withastro/compiler history this module grew out
// of) generalized from "visit every node" to "step one node at a time in
// either direction", the way a DOM Range or Selection implementation
// must.
package walk

import "github.com/inkline/editorcore/internal/domnode"

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// stepStop reports whether step() must not descend into n's children:
// true for atomic leaves (never descended into) and text nodes (no
// addressable children of their own).
func stepStop(n domnode.Node) bool {
	return domnode.IsAtomic(n) || domnode.IsText(n)
}

// step advances one tree node from n in the given direction, treating
// root as the traversal boundary. It returns every node kind, including
// non-addressable containers; callers filter with domnode.IsAddressable.
func step(root, n domnode.Node, dir Direction) domnode.Node {
	if dir == Forward {
		return stepForward(root, n)
	}
	return stepBackward(root, n)
}

func stepForward(root, n domnode.Node) domnode.Node {
	if !stepStop(n) {
		if fc := n.FirstChild(); fc != nil {
			return fc
		}
	}
	cur := n
	for cur != nil && !cur.Same(root) {
		if sib := cur.NextSibling(); sib != nil {
			return sib
		}
		cur = cur.Parent()
	}
	return nil
}

func stepBackward(root, n domnode.Node) domnode.Node {
	sib := n.PrevSibling()
	if n.Same(root) {
		// A backward walk that starts at root begins from its last child.
		sib = n.LastChild()
		if sib == nil {
			return nil
		}
	}
	if sib != nil {
		cur := sib
		for !stepStop(cur) {
			lc := cur.LastChild()
			if lc == nil {
				break
			}
			cur = lc
		}
		return cur
	}
	p := n.Parent()
	if p == nil || p.Same(root) {
		return nil
	}
	return p
}

// Walker is a single-use iterator over addressable leaves, matching the
// lifecycle note in spec §3: "The tree walker and rect walker are
// single-use iterators instantiated per operation."
type Walker struct {
	root domnode.Node
	cur  domnode.Node
	dir  Direction
}

// New starts a walker positioned at start; the first call to Next()
// returns the first addressable leaf strictly after (or before, when
// dir == Backward) start in document order. start itself is never
// returned even if it is addressable — callers that want to include the
// starting leaf check it themselves before iterating.
func New(root, start domnode.Node, dir Direction) *Walker {
	return &Walker{root: root, cur: start, dir: dir}
}

// Next returns the next addressable leaf, or nil once the root boundary
// is reached.
func (w *Walker) Next() domnode.Node {
	for {
		if w.cur == nil {
			return nil
		}
		n := step(w.root, w.cur, w.dir)
		if n == nil {
			w.cur = nil
			return nil
		}
		w.cur = n
		if domnode.IsAddressable(n) {
			return n
		}
	}
}

// FirstLeaf returns the first (Forward) or last (Backward) addressable
// leaf under root, per §4.F's documentboundary unit.
func FirstLeaf(root domnode.Node, dir Direction) domnode.Node {
	w := New(root, root, dir)
	return w.Next()
}
