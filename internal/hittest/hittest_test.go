package hittest_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/hittest"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/rectmap"
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

// Invariant 4: round-trip rects <-> positions for a visible text position.
func TestRoundTripRectsToPosition(t *testing.T) {
	root, err := htmlnode.Parse(`<span>Hello</span>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Hello")

	want := position.Position{Leaf: leaf, Offset: 2}
	rs := rectmap.RectsOf(host, want, rectmap.DefaultOptions(), nil)
	assert.Assert(t, len(rs) > 0)

	got, ok := hittest.PositionFromPoint(host, root, rs[0].HCenter(), rs[0].VCenter(), nil)
	assert.Assert(t, ok)
	assert.Assert(t, got.Leaf.Same(want.Leaf))
	assert.Equal(t, got.Offset, want.Offset)
}

func TestPositionFromPointOnAtomicAppliesHalfSplit(t *testing.T) {
	root, err := htmlnode.Parse(`<hr class="atomic-component"/>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	hr := findAtomic(t, root, "HR")
	b := host.BoundingRect(hr)

	left, ok := hittest.PositionFromPoint(host, root, b.Left, b.VCenter(), nil)
	assert.Assert(t, ok)
	assert.Equal(t, left.Offset, 0)

	right, ok := hittest.PositionFromPoint(host, root, b.Right-0.001, b.VCenter(), nil)
	assert.Assert(t, ok)
	assert.Equal(t, right.Offset, 1)
}

func TestPositionFromPointNoHit(t *testing.T) {
	root, err := htmlnode.Parse(`<span>Hello</span>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)

	_, ok := hittest.PositionFromPoint(host, root, -9999, -9999, nil)
	assert.Assert(t, !ok)
}
