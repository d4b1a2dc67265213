package walk_test

import (
	"testing"

	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/walk"
	"gotest.tools/v3/assert"
)

func parse(t *testing.T, markup string) *htmlnode.Node {
	t.Helper()
	n, err := htmlnode.Parse(markup)
	assert.NilError(t, err)
	return n
}

func TestForwardSkipsContainers(t *testing.T) {
	root := parse(t, `<p><b>Hello</b></p><p>World</p>`)
	w := walk.New(root, root, walk.Forward)

	first := w.Next()
	assert.Assert(t, first != nil)
	assert.Equal(t, first.Text(), "Hello")

	second := w.Next()
	assert.Assert(t, second != nil)
	assert.Equal(t, second.Text(), "World")

	assert.Assert(t, w.Next() == nil)
}

func TestBackwardIsForwardReversed(t *testing.T) {
	root := parse(t, `<p>Hello</p><p>World</p>`)
	fw := walk.New(root, root, walk.Forward)
	var leaves []string
	for l := fw.Next(); l != nil; l = fw.Next() {
		leaves = append(leaves, l.Text())
	}
	assert.DeepEqual(t, leaves, []string{"Hello", "World"})

	last := parse(t, `<p>Hello</p><p>World</p>`) // separate tree, same shape
	bw := walk.New(last, last, walk.Backward)
	var rev []string
	for l := bw.Next(); l != nil; l = bw.Next() {
		rev = append(rev, l.Text())
	}
	assert.DeepEqual(t, rev, []string{"World", "Hello"})
}

func TestAtomicLeavesNeverDescendedInto(t *testing.T) {
	root := parse(t, `<p>A</p><hr class="atomic-component"><p>B</p>`)
	w := walk.New(root, root, walk.Forward)
	var tags []string
	for l := w.Next(); l != nil; l = w.Next() {
		tags = append(tags, l.TagName()+":"+l.Text())
	}
	assert.DeepEqual(t, tags, []string{":A", "HR:", ":B"})
}

func TestFirstLeaf(t *testing.T) {
	root := parse(t, `<p>Start</p><p>End</p>`)
	first := walk.FirstLeaf(root, walk.Forward)
	assert.Equal(t, first.Text(), "Start")
	last := walk.FirstLeaf(root, walk.Backward)
	assert.Equal(t, last.Text(), "End")
}
