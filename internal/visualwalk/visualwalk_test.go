package visualwalk_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/test_utils"
	"github.com/inkline/editorcore/internal/visualwalk"
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

func TestStreamStartsAtLineZero(t *testing.T) {
	root, err := htmlnode.Parse(`<div>Line 1</div><div>Line 2</div>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Line 1")

	s := visualwalk.New(host, root, position.Position{Leaf: leaf, Offset: 0}, walk.Forward, nil)
	rec, ok := s.Next()
	assert.Assert(t, ok)
	assert.Equal(t, rec.LineOffset, 0)
	assert.Assert(t, rec.AtLineStart)
}

func TestStreamDetectsLineTransition(t *testing.T) {
	root, err := htmlnode.Parse(`<div>Line 1</div><div>Line 2</div>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Line 1")

	s := visualwalk.New(host, root, position.Position{Leaf: leaf, Offset: 0}, walk.Forward, nil)
	sawLine1 := false
	for {
		rec, ok := s.Next()
		if !ok {
			break
		}
		if rec.LineOffset == 0 {
			sawLine1 = true
			continue
		}
		if rec.LineOffset == 1 {
			assert.Equal(t, rec.Leaf.Text(), "Line 2")
			return
		}
	}
	assert.Assert(t, sawLine1, "expected to see the starting line before a transition")
	t.Fatal("never observed a lineOffset == 1 record")
}

func TestStreamBackwardDecreasesLineOffset(t *testing.T) {
	root, err := htmlnode.Parse(`<div>Line 1</div><div>Line 2</div>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)
	leaf := findText(t, root, "Line 2")

	s := visualwalk.New(host, root, position.Position{Leaf: leaf, Offset: 0}, walk.Backward, nil)
	for {
		rec, ok := s.Next()
		if !ok {
			t.Fatal("never observed a lineOffset == -1 record")
		}
		if rec.LineOffset == -1 {
			assert.Equal(t, rec.Leaf.Text(), "Line 1")
			return
		}
	}
}
