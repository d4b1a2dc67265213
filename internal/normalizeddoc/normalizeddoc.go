// Package normalizeddoc implements spec component I: the one-shot,
// idempotent whitespace normalization pass run once at attach. After it
// runs, the editor root's text node boundaries are stable for the rest of
// the session (§4.I).
package normalizeddoc

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
)

// runOfWhitespace mirrors the teacher's use of a compiled pattern for
// whitespace collapse rather than a hand-rolled scanner; regexp2 gives
// access to the same \s class semantics used elsewhere in the pack.
var runOfWhitespace = regexp2.MustCompile(`\s+`, regexp2.None)

// Normalize runs the three passes of §4.I over root, in place: collapse
// interior whitespace runs to a single space, trim whitespace adjacent to
// block boundaries, then merge adjacent text siblings left over from the
// trim pass. h may be nil; when given, every whitespace collapse and every
// text merge is recorded as an Info diagnostic. Trims at block boundaries
// are not recorded.
func Normalize(host domnode.LayoutHost, root domnode.Node, h *diag.Handler) {
	collapseWhitespace(root, h)
	trimAtBlockBoundaries(host, root)
	mergeAdjacentText(root, h)
}

func collapseWhitespace(n domnode.Node, h *diag.Handler) {
	if domnode.IsText(n) {
		collapsed, err := runOfWhitespace.Replace(n.Text(), " ", -1, -1)
		if err == nil && collapsed != n.Text() {
			n.SetText(collapsed)
			if h != nil {
				h.Info(diag.InfoWhitespaceCollapsed, n, "collapsed whitespace run in text leaf")
			}
		}
		return
	}
	if domnode.IsAtomic(n) {
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collapseWhitespace(c, h)
	}
}

// trimAtBlockBoundaries implements: "Trim leading/trailing whitespace from
// text nodes immediately inside a block boundary (leftmost child of a
// block, rightmost child of a block, and text nodes adjacent to a block
// sibling)."
func trimAtBlockBoundaries(host domnode.LayoutHost, n domnode.Node) {
	if domnode.IsText(n) {
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if domnode.IsText(c) {
			trimOne(host, c)
		} else {
			trimAtBlockBoundaries(host, c)
		}
	}
}

func trimOne(host domnode.LayoutHost, t domnode.Node) {
	text := t.Text()
	if leftBoundary(host, t) {
		text = strings.TrimLeft(text, " \t\n\r")
	}
	if rightBoundary(host, t) {
		text = strings.TrimRight(text, " \t\n\r")
	}
	if text != t.Text() {
		t.SetText(text)
	}
}

func leftBoundary(host domnode.LayoutHost, t domnode.Node) bool {
	if prev := t.PrevSibling(); prev != nil {
		return domnode.IsBlock(host, prev)
	}
	parent := t.Parent()
	return parent != nil && domnode.IsBlock(host, parent)
}

func rightBoundary(host domnode.LayoutHost, t domnode.Node) bool {
	if next := t.NextSibling(); next != nil {
		return domnode.IsBlock(host, next)
	}
	parent := t.Parent()
	return parent != nil && domnode.IsBlock(host, parent)
}

// mergeAdjacentText folds runs of sibling text nodes left fragmented by the
// trim pass (or already present in the source markup) into one node each.
func mergeAdjacentText(n domnode.Node, h *diag.Handler) {
	if domnode.IsText(n) {
		return
	}
	c := n.FirstChild()
	for c != nil {
		next := c.NextSibling()
		if domnode.IsText(c) && next != nil && domnode.IsText(next) {
			c.SetText(c.Text() + next.Text())
			n.RemoveChild(next)
			if h != nil {
				h.Info(diag.InfoTextNodesMerged, c, "merged adjacent text siblings")
			}
			continue // re-examine c against its new NextSibling
		}
		if domnode.IsElement(c) {
			mergeAdjacentText(c, h)
		}
		c = next
	}
}
