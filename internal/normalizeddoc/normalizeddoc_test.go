package normalizeddoc_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/normalizeddoc"
	"github.com/inkline/editorcore/internal/test_utils"
	"github.com/inkline/editorcore/internal/walk"
)

func texts(root domnode.Node) []string {
	var out []string
	w := walk.New(root, root, walk.Forward)
	for l := w.Next(); l != nil; l = w.Next() {
		if domnode.IsText(l) {
			out = append(out, l.Text())
		}
	}
	return out
}

func TestCollapsesWhitespaceRuns(t *testing.T) {
	root, err := htmlnode.Parse("<p>Hello   \n\t  World</p>")
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)

	normalizeddoc.Normalize(host, root, nil)
	assert.DeepEqual(t, texts(root), []string{"Hello World"})
}

func TestTrimsAtBlockBoundary(t *testing.T) {
	root, err := htmlnode.Parse("<p>  Hello World  </p>")
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)

	normalizeddoc.Normalize(host, root, nil)
	assert.DeepEqual(t, texts(root), []string{"Hello World"})
}

func TestDoesNotTrimAcrossInlineBoundary(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello <strong> World</strong></p>`)
	assert.NilError(t, err)
	host := test_utils.NewGridLayout(root, 80)

	normalizeddoc.Normalize(host, root, nil)
	assert.DeepEqual(t, texts(root), []string{"Hello ", " World"})
}

func TestMergesAdjacentTextSiblings(t *testing.T) {
	root, err := htmlnode.Parse(`<p>Hello</p>`)
	assert.NilError(t, err)
	p := root.FirstChild()
	host := test_utils.NewGridLayout(root, 80)

	second, err := htmlnode.Parse(" World")
	assert.NilError(t, err)
	secondText := second.FirstChild()
	assert.Assert(t, secondText != nil)
	p.AppendChild(secondText)

	normalizeddoc.Normalize(host, root, nil)
	assert.DeepEqual(t, texts(root), []string{"Hello World"})
}
