package core_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/inkline/editorcore/internal/core"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/movement"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/selection"
	"github.com/inkline/editorcore/internal/test_utils"
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

func TestAttachSeedsCollapsedSelectionAtDocumentStart(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)

	h := core.Attach(host, root)
	snap := h.GetSelection()
	assert.Assert(t, snap.IsCollapsed)
	assert.Equal(t, snap.Focus.Offset, 0)
}

func TestAttachNormalizesWhitespaceOnce(t *testing.T) {
	root, err := htmlnode.Parse("<p>  Hello   World  </p>")
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)

	core.Attach(host, root)
	leaf := findText(t, root, "Hello World")
	assert.Assert(t, leaf != nil)
}

func TestSetSelectionAndGetText(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	h := core.Attach(host, root)

	leaf := findText(t, root, "Hello World")
	anchor := position.Position{Leaf: leaf, Offset: 0}
	focus := position.Position{Leaf: leaf, Offset: 5}
	h.SetSelection(anchor, &focus)

	assert.Equal(t, h.GetText(), "Hello")
}

func TestCollapseToStartAndEnd(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	h := core.Attach(host, root)

	leaf := findText(t, root, "Hello World")
	anchor := position.Position{Leaf: leaf, Offset: 2}
	focus := position.Position{Leaf: leaf, Offset: 8}
	h.SetSelection(anchor, &focus)

	h.CollapseToStart()
	assert.Assert(t, h.GetSelection().IsCollapsed)
	assert.Equal(t, h.GetSelection().Focus.Offset, 2)

	h.SetSelection(anchor, &focus)
	h.CollapseToEnd()
	assert.Equal(t, h.GetSelection().Focus.Offset, 8)
}

func TestModifyMovesFocusForward(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	h := core.Attach(host, root)

	h.Modify(selection.Move, movement.Forward, movement.Character)
	snap := h.GetSelection()
	assert.Equal(t, snap.Focus.Offset, 1)
}

func TestRangeMaterializesForSelection(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	h := core.Attach(host, root)

	leaf := findText(t, root, "Hello World")
	anchor := position.Position{Leaf: leaf, Offset: 2}
	focus := position.Position{Leaf: leaf, Offset: 8}
	h.SetSelection(anchor, &focus)

	r := h.Range()
	assert.Equal(t, r.Start.Offset, 2)
	assert.Equal(t, r.End.Offset, 8)
}

func TestPositionFromPointRoundTripsThroughRects(t *testing.T) {
	root, err := htmlnode.Parse(`<span>Hello</span>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	h := core.Attach(host, root)

	leaf := findText(t, root, "Hello")
	p := position.Position{Leaf: leaf, Offset: 2}
	rects := h.RectsForPosition(p)
	assert.Assert(t, len(rects) > 0)

	got, ok := h.PositionFromPoint(rects[0].HCenter(), rects[0].VCenter())
	assert.Assert(t, ok)
	assert.Assert(t, got.Leaf.Same(p.Leaf))
	assert.Equal(t, got.Offset, p.Offset)
}

func TestDetachClearsState(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	h := core.Attach(host, root)

	h.Detach()
	assert.Assert(t, h.Diagnostics() == nil)
}
