package selection_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/movement"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/rectmap"
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

// Invariant 2: collapse is idempotent, and collapsing a non-collapsed
// selection to its start keeps the earlier endpoint (here the anchor).
func TestCollapseIdempotent(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	leaf := findText(t, root, "Hello World")
	p := position.Position{Leaf: leaf, Offset: 3}

	s := selection.Collapse(p)
	s2 := s.Extend(position.Position{Leaf: leaf, Offset: 8})
	assert.Assert(t, !s2.IsCollapsed())

	s3 := s2.CollapseToStart(root)
	assert.Assert(t, s3.IsCollapsed())
	assert.Equal(t, s3.Focus().Offset, 3)

	s4 := selection.Collapse(s3.Focus())
	assert.Assert(t, s3.Anchor().Leaf.Same(s4.Anchor().Leaf))
	assert.Equal(t, s3.Anchor().Offset, s4.Anchor().Offset)
	assert.Assert(t, s3.Focus().Leaf.Same(s4.Focus().Leaf))
	assert.Equal(t, s3.Focus().Offset, s4.Focus().Offset)
}

// Invariant 8: a collapsed selection contains nothing.
func TestContainsOnCollapsedIsFalse(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	leaf := findText(t, root, "Hello World")
	s := selection.Collapse(position.Position{Leaf: leaf, Offset: 3})
	assert.Assert(t, !s.Contains(root, position.Position{Leaf: leaf, Offset: 3}))
}

func TestContainsWithinRange(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello World</p>`)
	assert.NilError(t, err)
	leaf := findText(t, root, "Hello World")
	s := selection.SetBaseAndExtent(
		position.Position{Leaf: leaf, Offset: 2},
		position.Position{Leaf: leaf, Offset: 8},
	)
	assert.Assert(t, s.Contains(root, position.Position{Leaf: leaf, Offset: 5}))
	assert.Assert(t, !s.Contains(root, position.Position{Leaf: leaf, Offset: 1}))
	assert.Assert(t, !s.Contains(root, position.Position{Leaf: leaf, Offset: 8}))
}

func TestModifyMoveCollapsesToFocus(t *testing.T) {
	root, err := htmlnode.Parse(`<span>Hello</span>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Hello")

	s := selection.Collapse(position.Position{Leaf: leaf, Offset: 0})
	s = s.Modify(host, root, selection.Move, movement.Forward, movement.Character, rectmap.DefaultOptions(), nil)
	assert.Assert(t, s.IsCollapsed())
	assert.Equal(t, s.Focus().Offset, 1)
	assert.Equal(t, s.Anchor().Offset, 1)
}

func TestModifyExtendKeepsAnchor(t *testing.T) {
	root, err := htmlnode.Parse(`<span>Hello</span>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Hello")

	s := selection.Collapse(position.Position{Leaf: leaf, Offset: 0})
	s = s.Modify(host, root, selection.Extend, movement.Forward, movement.Character, rectmap.DefaultOptions(), nil)
	assert.Equal(t, s.Anchor().Offset, 0)
	assert.Equal(t, s.Focus().Offset, 1)
	assert.Assert(t, !s.IsCollapsed())
}

func TestModifyNoMovementIsNoOp(t *testing.T) {
	root, err := htmlnode.Parse(`<span>Hello</span>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Hello")

	s := selection.Collapse(position.Position{Leaf: leaf, Offset: 5})
	next := s.Modify(host, root, selection.Move, movement.Forward, movement.Character, rectmap.DefaultOptions(), nil)
	assert.Assert(t, s.Focus().Leaf.Same(next.Focus().Leaf))
	assert.Equal(t, s.Focus().Offset, next.Focus().Offset)
}
