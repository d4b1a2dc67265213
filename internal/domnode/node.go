// Package domnode defines the tree contract the caret core walks. It does
// not itself parse or own a DOM: two adapters implement Node over a real
// concern each — internal/domnode/jsdom wraps the live browser DOM via
// syscall/js, internal/domnode/htmlnode wraps a golang.org/x/net/html tree
// for headless tests and tooling. Every other package in this module is
// written against the Node and LayoutHost interfaces only, the same way
// the teacher's transform package is written against *astro.Node rather
// than against any one parser's concrete tree.
package domnode

// Kind discriminates text nodes from element nodes. Whether an element is
// an atomic leaf or a container is decided by IsAtomic, not by Kind.
type Kind int

const (
	KindText Kind = iota
	KindElement
)

// Node is a structural view of one DOM node. It intentionally carries no
// layout information — see LayoutHost for that collaborator.
type Node interface {
	Kind() Kind

	// TagName returns the upper-cased tag name for an element node ("BR",
	// "SPAN", ...), and the empty string for a text node.
	TagName() string

	// HasClass reports whether an element carries the given class token.
	// Always false for text nodes.
	HasClass(token string) bool

	// Text returns a text node's character data. Always "" for elements.
	Text() string
	SetText(s string)

	Parent() Node
	FirstChild() Node
	LastChild() Node
	NextSibling() Node
	PrevSibling() Node

	ChildCount() int
	ChildAt(i int) Node
	// ChildIndex returns the index of child among this node's children, or
	// -1 if child is not a direct child.
	ChildIndex(child Node) int

	AppendChild(child Node)
	RemoveChild(child Node)
	InsertBefore(newChild, ref Node)

	// Same reports identity, not structural equality. Two Node values
	// addressing the same underlying DOM node must compare Same, even if
	// they are distinct interface values.
	Same(other Node) bool

	// Valid reports whether the node is still reachable from a document
	// (i.e. has not been detached by a mutation the core didn't perform).
	Valid() bool
}

// Rect is an axis-aligned rectangle in viewport coordinates, the shape
// every layout query in this module returns.
type Rect struct {
	Top, Left, Bottom, Right float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Empty() bool { return r.Height() <= 0 }

func (r Rect) HCenter() float64 { return (r.Left + r.Right) / 2 }
func (r Rect) VCenter() float64 { return (r.Top + r.Bottom) / 2 }

// LayoutHost is the host layout engine collaborator described in spec §1
// and §5: the core reads from it, synchronously, but never owns it.
type LayoutHost interface {
	// IsBlock reports whether n's computed display does not include the
	// "inline" token. Per invariant 5, a detached node is treated as
	// inline, so implementations should return false rather than error.
	IsBlock(n Node) bool

	// TextRects returns the client rectangles of the [start, end) range
	// inside a text node, in codepoint offsets. start == end asks for a
	// zero-width cursor rect at that gap.
	TextRects(n Node, start, end int) []Rect

	// BoundingRect returns an atomic element's bounding rectangle.
	BoundingRect(n Node) Rect

	// CaretFromPoint hit-tests a viewport coordinate the way the host's
	// caret-from-point service would: ok is false when the host has
	// nothing under the point.
	CaretFromPoint(x, y float64) (n Node, offset int, ok bool)
}
