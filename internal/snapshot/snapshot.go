// Package snapshot renders a debug-friendly JSON view of the editor root
// and of diagnostics, modeled on the teacher's print-to-json walker:
// recurse over the tree, build a plain value type per node, marshal it.
// It exists for the trace CLI and for test fixtures, never on the hot
// path of any core operation.
package snapshot

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/iancoleman/strcase"

	"github.com/inkline/editorcore/internal/diag"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/position"
)

// Node is the JSON-facing mirror of a domnode.Node subtree.
type Node struct {
	Type        string `json:"type"`
	Tag         string `json:"tag,omitzero"`
	Text        string `json:"text,omitzero"`
	Atomic      bool   `json:"atomic,omitzero"`
	Block       bool   `json:"block,omitzero"`
	Addressable bool   `json:"addressable,omitzero"`
	Children    []Node `json:"children,omitzero"`
}

// Build walks n (and, when host is non-nil, annotates block/inline via the
// host layout) into a serializable Node tree.
func Build(host domnode.LayoutHost, n domnode.Node) Node {
	if domnode.IsText(n) {
		return Node{Type: "text", Text: n.Text(), Addressable: domnode.IsAddressable(n)}
	}
	out := Node{
		Type:        "element",
		Tag:         n.TagName(),
		Atomic:      domnode.IsAtomic(n),
		Addressable: domnode.IsAddressable(n),
	}
	if host != nil {
		out.Block = domnode.IsBlock(host, n)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out.Children = append(out.Children, Build(host, c))
	}
	return out
}

// MarshalTree renders root as indented JSON.
func MarshalTree(host domnode.LayoutHost, root domnode.Node) ([]byte, error) {
	tree := Build(host, root)
	return json.Marshal(&tree, json.Deterministic(true), jsontext.WithIndent("  "))
}

// Position is the JSON-facing mirror of a position.Position, identifying
// the leaf by its document-order child-index path rather than by pointer
// so it survives round-tripping through a trace log.
type Position struct {
	Path   []int  `json:"path"`
	Offset int    `json:"offset"`
	Label  string `json:"label"`
}

// BuildPosition captures p relative to root. Label is a lowerCamelCase
// debug handle built from the leaf's tag (or "text" for text leaves)
// followed by "Leaf", such as "textLeaf", the way a host might name DOM
// debug ids.
func BuildPosition(root domnode.Node, p position.Position) Position {
	path := childIndexPath(root, p.Leaf)
	name := p.Leaf.TagName()
	if name == "" {
		name = "text"
	}
	return Position{
		Path:   path,
		Offset: p.Offset,
		Label:  strcase.ToLowerCamel(name) + "Leaf",
	}
}

func childIndexPath(root, n domnode.Node) []int {
	var path []int
	cur := n
	for cur != nil && !cur.Same(root) {
		parent := cur.Parent()
		if parent == nil {
			break
		}
		path = append(path, parent.ChildIndex(cur))
		cur = parent
	}
	reverse(path)
	return path
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Diagnostics is the JSON-facing mirror of a diag.Handler's messages.
type Diagnostics struct {
	Messages []DiagnosticEntry `json:"messages"`
}

type DiagnosticEntry struct {
	Severity string `json:"severity"`
	Code     int    `json:"code"`
	Text     string `json:"text"`
}

// MarshalDiagnostics renders the handler's accumulated messages as JSON,
// dropping the opaque Handle field (not meaningfully serializable).
func MarshalDiagnostics(h *diag.Handler) ([]byte, error) {
	msgs := h.Messages()
	out := Diagnostics{Messages: make([]DiagnosticEntry, len(msgs))}
	for i, m := range msgs {
		out.Messages[i] = DiagnosticEntry{
			Severity: m.Severity.String(),
			Code:     int(m.Code),
			Text:     m.Text,
		}
	}
	return json.Marshal(&out, json.Deterministic(true), jsontext.WithIndent("  "))
}
