// Package htmlnode adapts a golang.org/x/net/html tree to the
// domnode.Node contract. It has no dependency on syscall/js and is the
// adapter used by this module's tests and by the cmd/editorcore-trace
// tool: test fixtures are authored as HTML strings, parsed with
// golang.org/x/net/html the same way a browser's DOMParser would, and
// walked with exactly the same core code that runs atop the real DOM in
// cmd/editorcore-wasm.
package htmlnode

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/inkline/editorcore/internal/domnode"
)

// Node wraps a *html.Node. Two Node values wrapping the same *html.Node
// are Same regardless of identity.
type Node struct {
	n *html.Node
}

// Wrap returns a domnode.Node view over n, or nil if n is nil.
func Wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

func unwrap(n domnode.Node) *html.Node {
	if n == nil {
		return nil
	}
	hn, ok := n.(*Node)
	if !ok || hn == nil {
		return nil
	}
	return hn.n
}

// Raw exposes the underlying *html.Node for adapters (such as the layout
// test double) that need to key auxiliary data off node identity.
func (w *Node) Raw() *html.Node { return w.n }

func (w *Node) Kind() domnode.Kind {
	if w.n.Type == html.TextNode {
		return domnode.KindText
	}
	return domnode.KindElement
}

func (w *Node) TagName() string {
	if w.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(w.n.Data)
}

func (w *Node) HasClass(token string) bool {
	for _, a := range w.n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == token {
				return true
			}
		}
	}
	return false
}

func (w *Node) Text() string {
	if w.n.Type != html.TextNode {
		return ""
	}
	return w.n.Data
}

func (w *Node) SetText(s string) {
	if w.n.Type == html.TextNode {
		w.n.Data = s
	}
}

func (w *Node) Parent() domnode.Node      { return Wrap(w.n.Parent) }
func (w *Node) FirstChild() domnode.Node  { return Wrap(w.n.FirstChild) }
func (w *Node) LastChild() domnode.Node   { return Wrap(w.n.LastChild) }
func (w *Node) NextSibling() domnode.Node { return Wrap(w.n.NextSibling) }
func (w *Node) PrevSibling() domnode.Node { return Wrap(w.n.PrevSibling) }

func (w *Node) ChildCount() int {
	count := 0
	for c := w.n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func (w *Node) ChildAt(i int) domnode.Node {
	if i < 0 {
		return nil
	}
	idx := 0
	for c := w.n.FirstChild; c != nil; c = c.NextSibling {
		if idx == i {
			return Wrap(c)
		}
		idx++
	}
	return nil
}

func (w *Node) ChildIndex(child domnode.Node) int {
	target := unwrap(child)
	if target == nil {
		return -1
	}
	idx := 0
	for c := w.n.FirstChild; c != nil; c = c.NextSibling {
		if c == target {
			return idx
		}
		idx++
	}
	return -1
}

func (w *Node) AppendChild(child domnode.Node) {
	c := unwrap(child)
	// Like DOM appendChild, a child still attached elsewhere is moved.
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	w.n.AppendChild(c)
}

func (w *Node) RemoveChild(child domnode.Node) {
	w.n.RemoveChild(unwrap(child))
}

func (w *Node) InsertBefore(newChild, ref domnode.Node) {
	w.n.InsertBefore(unwrap(newChild), unwrap(ref))
}

func (w *Node) Same(other domnode.Node) bool {
	return unwrap(other) == w.n
}

// Valid always reports true: a parsed-once html.Node tree used in tests
// is never mutated behind the core's back.
func (w *Node) Valid() bool { return w.n != nil }

// Parse parses an HTML fragment and returns the editor root, suitable for
// attach(): a synthetic DIV element whose children are the fragment's
// top-level nodes. Markup is run through golang.org/x/net/html.ParseFragment
// against a synthetic <body> context, which is how this adapter supports
// bare inline markup such as "<span>Hello</span>" in test fixtures.
func Parse(markup string) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return Wrap(root), nil
}
