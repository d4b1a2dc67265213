package test_utils

import (
	"strings"

	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/htmlnode"
	"github.com/inkline/editorcore/internal/walk"
)

// defaultBlockTags mirrors a browser's user-agent stylesheet closely
// enough for test fixtures: the handful of tags this module's scenarios
// actually use.
var defaultBlockTags = map[string]bool{
	"DIV": true, "P": true, "TABLE": true, "LI": true, "UL": true, "OL": true,
	"H1": true, "H2": true, "H3": true, "H4": true, "H5": true, "H6": true,
	"HR": true, "BODY": true, "HTML": true,
}

// GridLayout is a deterministic LayoutHost double: it lays out every
// addressable leaf under a root on a fixed-width character grid, wrapping
// to a new visual line every CharsPerLine columns. It exists so that
// movement-engine and rect-walker tests can exercise soft-wrap and
// multi-line behavior without a real layout engine, the same way the
// editor scenarios in gio's widget.Editor tests drive caret movement
// against a synthetic shaped-line table rather than an OS text shaper.
type GridLayout struct {
	CharWidth     float64
	LineHeight    float64
	CharsPerLine  int
	blockOverride map[domnode.Node]bool

	cells map[domnode.Node][]cellRect // per-leaf, per-codepoint-gap rect
}

type cellRect struct {
	col, row int
}

// NewGridLayout lays out root's addressable leaves left to right, top to
// bottom, starting a new visual row whenever appending a leaf's next
// character would exceed charsPerLine columns, and whenever a BR or a
// block-level container boundary is crossed.
func NewGridLayout(root domnode.Node, charsPerLine int) *GridLayout {
	g := &GridLayout{
		CharWidth:     8,
		LineHeight:    20,
		CharsPerLine:  charsPerLine,
		blockOverride: map[domnode.Node]bool{},
		cells:         map[domnode.Node][]cellRect{},
	}
	g.layout(root)
	return g
}

func (g *GridLayout) isBlockDefault(n domnode.Node) bool {
	if v, ok := g.blockOverride[n]; ok {
		return v
	}
	return defaultBlockTags[n.TagName()]
}

// SetBlock overrides the computed display of n for this layout, letting
// a test mark an element block or inline regardless of its tag default.
func (g *GridLayout) SetBlock(n domnode.Node, block bool) {
	g.blockOverride[n] = block
}

func (g *GridLayout) layout(root domnode.Node) {
	col, row := 0, 0
	w := walk.New(root, root, walk.Forward)
	var prevLeaf domnode.Node
	for leaf := w.Next(); leaf != nil; leaf = w.Next() {
		if prevLeaf != nil && g.crossesBlockBoundary(root, prevLeaf, leaf) {
			row++
			col = 0
		}
		if domnode.IsAtomic(leaf) {
			if leaf.TagName() == "BR" {
				g.cells[leaf] = []cellRect{{col: col, row: row}}
				row++
				col = 0
				prevLeaf = leaf
				continue
			}
			if col >= g.CharsPerLine {
				row++
				col = 0
			}
			g.cells[leaf] = []cellRect{{col: col, row: row}}
			col++
			prevLeaf = leaf
			continue
		}
		runes := []rune(leaf.Text())
		cells := make([]cellRect, len(runes)+1)
		for i := range cells {
			if col > g.CharsPerLine {
				row++
				col = 0
			}
			cells[i] = cellRect{col: col, row: row}
			if i < len(runes) {
				col++
			}
		}
		g.cells[leaf] = cells
		prevLeaf = leaf
	}
}

// crossesBlockBoundary approximates "a and b are separated by a block
// element somewhere between them" by checking whether their nearest
// block ancestors (or root itself) differ.
func (g *GridLayout) crossesBlockBoundary(root, a, b domnode.Node) bool {
	return !g.nearestBlockAncestor(root, a).Same(g.nearestBlockAncestor(root, b))
}

func (g *GridLayout) nearestBlockAncestor(root, n domnode.Node) domnode.Node {
	cur := n.Parent()
	for cur != nil {
		if cur.Same(root) || g.isBlockDefault(cur) {
			return cur
		}
		cur = cur.Parent()
	}
	return root
}

func (g *GridLayout) rectAt(col, row int) domnode.Rect {
	x := float64(col) * g.CharWidth
	y := float64(row) * g.LineHeight
	return domnode.Rect{Top: y, Bottom: y + g.LineHeight, Left: x, Right: x}
}

func (g *GridLayout) IsBlock(n domnode.Node) bool {
	if !n.Valid() {
		return false
	}
	return g.isBlockDefault(n)
}

func (g *GridLayout) TextRects(n domnode.Node, start, end int) []domnode.Rect {
	cells, ok := g.cells[n]
	if !ok || start < 0 || end > len(cells)-1 || start > end {
		return nil
	}
	if start == end {
		r := g.rectAt(cells[start].col, cells[start].row)
		return []domnode.Rect{r}
	}
	var out []domnode.Rect
	rowStart := start
	for i := start; i < end; i++ {
		if cells[i].row != cells[rowStart].row {
			out = append(out, g.spanRect(cells, rowStart, i))
			rowStart = i
		}
	}
	out = append(out, g.spanRect(cells, rowStart, end))
	return out
}

func (g *GridLayout) spanRect(cells []cellRect, from, to int) domnode.Rect {
	left := g.rectAt(cells[from].col, cells[from].row)
	right := g.rectAt(cells[to].col, cells[to].row)
	return domnode.Rect{Top: left.Top, Bottom: left.Bottom, Left: left.Left, Right: right.Left}
}

func (g *GridLayout) BoundingRect(n domnode.Node) domnode.Rect {
	cells, ok := g.cells[n]
	if !ok || len(cells) == 0 {
		return domnode.Rect{}
	}
	c := cells[0]
	r := g.rectAt(c.col, c.row)
	r.Right = r.Left + g.CharWidth
	if n.TagName() == "BR" {
		r.Bottom = r.Top
	}
	return r
}

// CaretFromPoint inverts the grid: it finds the leaf whose rect at the
// nearest gap contains or is closest to (x, y).
func (g *GridLayout) CaretFromPoint(x, y float64) (domnode.Node, int, bool) {
	row := int(y / g.LineHeight)
	col := int((x + g.CharWidth/2) / g.CharWidth)

	var best domnode.Node
	bestOffset := 0
	bestDist := -1.0
	for leaf, cells := range g.cells {
		for i, c := range cells {
			if c.row != row {
				continue
			}
			dist := absf(float64(c.col - col))
			if bestDist < 0 || dist < bestDist {
				bestDist = dist
				best = leaf
				bestOffset = i
			}
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestOffset, true
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ParseFixture dedents and parses an HTML fixture into an editor root
// usable with GridLayout and the core.
func ParseFixture(markup string) (*htmlnode.Node, error) {
	return htmlnode.Parse(strings.TrimSpace(Dedent(markup)))
}
