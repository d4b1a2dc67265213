package rangemat_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/rangemat"
	"github.com/inkline/editorcore/internal/walk"
)

func findText(t *testing.T, root domnode.Node, want string) domnode.Node {
	t.Helper()
	w := walk.New(root, root, walk.Forward)
	for l := w.Next(); l != nil; l = w.Next() {
		if domnode.IsText(l) && l.Text() == want {
			return l
		}
	}
	t.Fatalf("no text leaf %q", want)
	return nil
}

func findAtomic(t *testing.T, root domnode.Node, tag string) domnode.Node {
	t.Helper()
	w := walk.New(root, root, walk.Forward)
	for l := w.Next(); l != nil; l = w.Next() {
		if domnode.IsAtomic(l) && l.TagName() == tag {
			return l
		}
	}
	t.Fatalf("no atomic leaf %q", tag)
	return nil
}

func TestMaterializeOrdersByDocumentPosition(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	leaf := findText(t, root, "Hello World")

	anchor := position.Position{Leaf: leaf, Offset: 8}
	focus := position.Position{Leaf: leaf, Offset: 2}

	r := rangemat.Materialize(root, anchor, focus)
	assert.Assert(t, r.Start.Node.Same(leaf))
	assert.Equal(t, r.Start.Offset, 2)
	assert.Equal(t, r.End.Offset, 8)
}

func TestMaterializeTranslatesAtomicEndpoint(t *testing.T) {
	root, err := htmlnode.Parse(`<p>A</p><hr class="atomic-component"/><p>B</p>`)
	assert.NilError(t, err)
	hr := findAtomic(t, root, "HR")

	r := rangemat.Materialize(root,
		position.Position{Leaf: hr, Offset: 0},
		position.Position{Leaf: hr, Offset: 1},
	)
	assert.Assert(t, r.Start.Node.Same(hr.Parent()))
	assert.Assert(t, r.End.Node.Same(hr.Parent()))
	assert.Equal(t, r.End.Offset, r.Start.Offset+1)
}

func TestGetTextWithinSingleLeaf(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	leaf := findText(t, root, "Hello World")

	got := rangemat.GetText(root,
		position.Position{Leaf: leaf, Offset: 0},
		position.Position{Leaf: leaf, Offset: 5},
	)
	assert.Equal(t, got, "Hello")
}

func TestGetTextAcrossElementsInsertsNewlineForBR(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello<br/>World</p>`)
	assert.NilError(t, err)
	hello := findText(t, root, "Hello")
	world := findText(t, root, "World")

	got := rangemat.GetText(root,
		position.Position{Leaf: hello, Offset: 0},
		position.Position{Leaf: world, Offset: 5},
	)
	assert.Equal(t, got, "Hello\nWorld")
}

func TestGetTextEmptyWhenCollapsed(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	leaf := findText(t, root, "Hello World")
	p := position.Position{Leaf: leaf, Offset: 3}

	got := rangemat.GetText(root, p, p)
	assert.Equal(t, got, "")
}
