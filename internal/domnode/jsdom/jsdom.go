//go:build js && wasm

// Package jsdom adapts the live browser DOM, reached via syscall/js, to the
// domnode.Node and domnode.LayoutHost interfaces. It is the only package in
// this module that talks to a real browser; everything else is plain Go
// tested against internal/domnode/htmlnode and internal/test_utils.GridLayout.
package jsdom

import (
	"syscall/js"

	"github.com/inkline/editorcore/internal/domnode"
)

// Node wraps a live DOM node value.
type Node struct {
	v js.Value
}

// Wrap adapts a raw js.Value DOM node. Returns nil for null/undefined, the
// same convention the core uses for "no such node".
func Wrap(v js.Value) *Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Node{v: v}
}

// Raw exposes the underlying js.Value for callers (the WASM entrypoint)
// that need to pass it back across the boundary.
func (n *Node) Raw() js.Value { return n.v }

const (
	domTextNode    = 3
	domElementNode = 1
)

func (n *Node) Kind() domnode.Kind {
	if n.v.Get("nodeType").Int() == domTextNode {
		return domnode.KindText
	}
	return domnode.KindElement
}

func (n *Node) TagName() string {
	if n.Kind() != domnode.KindElement {
		return ""
	}
	return n.v.Get("tagName").String()
}

func (n *Node) HasClass(token string) bool {
	if n.Kind() != domnode.KindElement {
		return false
	}
	return n.v.Get("classList").Call("contains", token).Bool()
}

func (n *Node) Text() string {
	if n.Kind() != domnode.KindText {
		return ""
	}
	return n.v.Get("textContent").String()
}

func (n *Node) SetText(s string) {
	if n.Kind() != domnode.KindText {
		return
	}
	n.v.Set("textContent", s)
}

func wrapProp(v js.Value, prop string) *Node {
	return Wrap(v.Get(prop))
}

func (n *Node) Parent() domnode.Node      { return asNode(wrapProp(n.v, "parentNode")) }
func (n *Node) FirstChild() domnode.Node  { return asNode(wrapProp(n.v, "firstChild")) }
func (n *Node) LastChild() domnode.Node   { return asNode(wrapProp(n.v, "lastChild")) }
func (n *Node) NextSibling() domnode.Node { return asNode(wrapProp(n.v, "nextSibling")) }
func (n *Node) PrevSibling() domnode.Node { return asNode(wrapProp(n.v, "previousSibling")) }

// asNode converts a possibly-nil *Node to a domnode.Node interface value
// that is truly nil (a nil *Node boxed in an interface is not == nil).
func asNode(n *Node) domnode.Node {
	if n == nil {
		return nil
	}
	return n
}

func (n *Node) ChildCount() int {
	return n.v.Get("childNodes").Get("length").Int()
}

func (n *Node) ChildAt(i int) domnode.Node {
	if i < 0 || i >= n.ChildCount() {
		return nil
	}
	return asNode(Wrap(n.v.Get("childNodes").Index(i)))
}

func (n *Node) ChildIndex(child domnode.Node) int {
	c, ok := child.(*Node)
	if !ok {
		return -1
	}
	count := n.ChildCount()
	for i := 0; i < count; i++ {
		if n.v.Get("childNodes").Index(i).Equal(c.v) {
			return i
		}
	}
	return -1
}

func (n *Node) AppendChild(child domnode.Node) {
	if c, ok := child.(*Node); ok {
		n.v.Call("appendChild", c.v)
	}
}

func (n *Node) RemoveChild(child domnode.Node) {
	if c, ok := child.(*Node); ok {
		n.v.Call("removeChild", c.v)
	}
}

func (n *Node) InsertBefore(newChild, ref domnode.Node) {
	c, ok := newChild.(*Node)
	if !ok {
		return
	}
	var refVal js.Value
	if r, ok := ref.(*Node); ok {
		refVal = r.v
	} else {
		refVal = js.Null()
	}
	n.v.Call("insertBefore", c.v, refVal)
}

func (n *Node) Same(other domnode.Node) bool {
	o, ok := other.(*Node)
	if !ok {
		return false
	}
	return n.v.Equal(o.v)
}

func (n *Node) Valid() bool {
	return n.v.Get("isConnected").Bool()
}

// Host adapts window.getComputedStyle, Range.getClientRects, and
// document.caretPositionFromPoint/caretRangeFromPoint to LayoutHost.
type Host struct {
	doc js.Value
}

func NewHost(doc js.Value) *Host {
	return &Host{doc: doc}
}

func (h *Host) IsBlock(n domnode.Node) bool {
	el, ok := n.(*Node)
	if !ok {
		return false
	}
	display := js.Global().Call("getComputedStyle", el.v).Get("display").String()
	return display != "inline" && display != "inline-block" && display != ""
}

func (h *Host) TextRects(n domnode.Node, start, end int) []domnode.Rect {
	t, ok := n.(*Node)
	if !ok {
		return nil
	}
	r := h.doc.Call("createRange")
	r.Call("setStart", t.v, start)
	r.Call("setEnd", t.v, end)
	rects := r.Call("getClientRects")
	out := make([]domnode.Rect, 0, rects.Get("length").Int())
	for i := 0; i < rects.Get("length").Int(); i++ {
		out = append(out, jsRectToRect(rects.Index(i)))
	}
	return out
}

func (h *Host) BoundingRect(n domnode.Node) domnode.Rect {
	el, ok := n.(*Node)
	if !ok {
		return domnode.Rect{}
	}
	return jsRectToRect(el.v.Call("getBoundingClientRect"))
}

func (h *Host) CaretFromPoint(x, y float64) (domnode.Node, int, bool) {
	if fn := h.doc.Get("caretPositionFromPoint"); !fn.IsUndefined() {
		pos := h.doc.Call("caretPositionFromPoint", x, y)
		if pos.IsNull() || pos.IsUndefined() {
			return nil, 0, false
		}
		node := asNode(Wrap(pos.Get("offsetNode")))
		if node == nil {
			return nil, 0, false
		}
		return node, pos.Get("offset").Int(), true
	}
	if fn := h.doc.Get("caretRangeFromPoint"); !fn.IsUndefined() {
		r := h.doc.Call("caretRangeFromPoint", x, y)
		if r.IsNull() || r.IsUndefined() {
			return nil, 0, false
		}
		node := asNode(Wrap(r.Get("startContainer")))
		if node == nil {
			return nil, 0, false
		}
		return node, r.Get("startOffset").Int(), true
	}
	return nil, 0, false
}

func jsRectToRect(r js.Value) domnode.Rect {
	return domnode.Rect{
		Top:    r.Get("top").Float(),
		Left:   r.Get("left").Float(),
		Bottom: r.Get("bottom").Float(),
		Right:  r.Get("right").Float(),
	}
}
